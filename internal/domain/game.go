package domain

// Team is one side of a foosball game.
type Team string

const (
	TeamRed  Team = "Red"
	TeamBlue Team = "Blue"
)

// Valid reports whether t is a known team.
func (t Team) Valid() bool {
	return t == TeamRed || t == TeamBlue
}

// Game represents a games row.
type Game struct {
	ID              string  `json:"id"`
	Table           string  `json:"table"`
	GameDate        string  `json:"game_date"`
	DurationSeconds *int    `json:"duration_seconds"`
	ScoreRed        int     `json:"score_red"`
	ScoreBlue       int     `json:"score_blue"`
	WinnerTeam      Team    `json:"winner_team"`
	Location        string  `json:"location"`
	Season          string  `json:"season"`
	BallType        *string `json:"ball_type"`
	Music           *string `json:"music"`
	Referent        *string `json:"referent"`
	Attendance      *int    `json:"attendance"`
	RecordedBy      string  `json:"recorded_by"`
	Rating          *int    `json:"rating"`
}

// Validate checks field constraints. Existence of the table is checked by the service.
func (g Game) Validate() error {
	f := FieldErrors{}
	checkRequired(f, "id", g.ID, 10)
	checkRequired(f, "table", g.Table, 3)
	checkMaxLen(f, "game_date", g.GameDate, 50)
	checkOptionalInt32Range(f, "duration_seconds", g.DurationSeconds)
	checkInt32Range(f, "score_red", g.ScoreRed)
	checkInt32Range(f, "score_blue", g.ScoreBlue)
	checkChoice(f, "winner_team", string(g.WinnerTeam), g.WinnerTeam.Valid())
	checkMaxLen(f, "location", g.Location, 100)
	checkMaxLen(f, "season", g.Season, 20)
	checkOptionalMaxLen(f, "ball_type", g.BallType, 20)
	checkOptionalMaxLen(f, "music", g.Music, 50)
	checkOptionalMaxLen(f, "referent", g.Referent, 20)
	checkMaxLen(f, "recorded_by", g.RecordedBy, 20)
	checkOptionalInt32Range(f, "attendance", g.Attendance)
	checkOptionalInt32Range(f, "rating", g.Rating)
	return f.Err()
}
