package domain

import "time"

// PlayerPosition is the rod a player handled during a game.
type PlayerPosition string

const (
	PositionAttack  PlayerPosition = "attack"
	PositionDefense PlayerPosition = "defense"
)

// Valid reports whether p is a known position.
func (p PlayerPosition) Valid() bool {
	return p == PositionAttack || p == PositionDefense
}

// Substitute records whether a player came on as a substitute.
type Substitute string

const (
	SubstituteYes   Substitute = "yes"
	SubstituteNo    Substitute = "no"
	SubstituteMaybe Substitute = "maybe"
)

// Valid reports whether s is a known value.
func (s Substitute) Valid() bool {
	switch s {
	case SubstituteYes, SubstituteNo, SubstituteMaybe:
		return true
	}
	return false
}

// Performance represents one player's statistics for one game.
// At most one row exists per (Game, Player).
type Performance struct {
	ID             int64          `json:"id"`
	Game           string         `json:"game"`
	Player         string         `json:"player"`
	TeamColor      Team           `json:"team_color"`
	Role           PlayerPosition `json:"role"`
	Substitute     *Substitute    `json:"substitute"`
	Goals          int            `json:"goals"`
	OwnGoals       int            `json:"own_goals"`
	Assist         int            `json:"assist"`
	Save           int            `json:"save"`
	PossessionTime *int           `json:"possession_time"`
	CreatedAt      time.Time      `json:"created_at"`
}

// NewPerformance returns a performance populated with column defaults.
func NewPerformance() Performance {
	sub := SubstituteNo
	possession := 0
	return Performance{Substitute: &sub, PossessionTime: &possession}
}

// Validate checks field constraints. ID and CreatedAt are server-assigned and ignored.
func (p Performance) Validate() error {
	f := FieldErrors{}
	checkRequired(f, "game", p.Game, 10)
	checkRequired(f, "player", p.Player, 20)
	checkChoice(f, "team_color", string(p.TeamColor), p.TeamColor.Valid())
	checkChoice(f, "role", string(p.Role), p.Role.Valid())
	if p.Substitute != nil {
		checkChoice(f, "substitute", string(*p.Substitute), p.Substitute.Valid())
	}
	checkInt32Range(f, "goals", p.Goals)
	checkInt32Range(f, "own_goals", p.OwnGoals)
	checkInt32Range(f, "assist", p.Assist)
	checkInt32Range(f, "save", p.Save)
	checkOptionalInt32Range(f, "possession_time", p.PossessionTime)
	return f.Err()
}
