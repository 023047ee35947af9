package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// MinPasswordLength is the shortest accepted player password.
const MinPasswordLength = 6

// Role is a player's league role.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Date is a calendar day, serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate truncates t to its UTC calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.DateOnly))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("parse date: %w", err)
	}
	d.Time = t
	return nil
}

// Player represents a players row. The password hash never leaves the server.
type Player struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Age              *int   `json:"age"`
	Email            string `json:"email"`
	Role             Role   `json:"role"`
	RegistrationDate Date   `json:"registration_date"`
	PasswordHash     string `json:"-"`
}

// PlayerWrite holds the writable player fields accepted on create and update.
// Password is nil when the client did not send one.
type PlayerWrite struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Age      *int    `json:"age"`
	Email    string  `json:"email"`
	Role     Role    `json:"role"`
	Password *string `json:"password"`
}

// NewPlayerWrite returns a PlayerWrite populated with column defaults.
func NewPlayerWrite() PlayerWrite {
	return PlayerWrite{Role: RoleUser}
}

// Write returns the writable projection of p, for partial updates.
func (p *Player) Write() PlayerWrite {
	return PlayerWrite{
		ID:    p.ID,
		Name:  p.Name,
		Age:   p.Age,
		Email: p.Email,
		Role:  p.Role,
	}
}

// Validate checks field constraints. requirePassword is set on create.
func (w PlayerWrite) Validate(requirePassword bool) error {
	f := FieldErrors{}
	checkRequired(f, "id", w.ID, 20)
	checkRequired(f, "name", w.Name, 128)
	if err := ValidateEmail(w.Email); err != nil {
		f.Add("email", err.Error())
	}
	if w.Email != "" {
		checkMaxLen(f, "email", w.Email, 50)
	}
	if w.Age != nil && *w.Age < 0 {
		f.Add("age", "Ensure this value is greater than or equal to 0.")
	} else {
		checkOptionalInt32Range(f, "age", w.Age)
	}
	checkChoice(f, "role", string(w.Role), w.Role.Valid())

	switch {
	case w.Password == nil:
		if requirePassword {
			f.Add("password", msgRequired)
		}
	case len([]rune(*w.Password)) < MinPasswordLength:
		f.Add("password", fmt.Sprintf("Ensure this field has at least %d characters.", MinPasswordLength))
	}
	return f.Err()
}
