package domain

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Field validation messages, shared by every entity.
const (
	msgRequired     = "This field is required."
	msgInvalidEmail = "Enter a valid email address."
	msgNullChar     = "Null characters are not allowed."
)

// ValidateEmail checks if an email address is valid. The error text is
// suitable as a field message.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New(msgRequired)
	}
	if !emailRegex.MatchString(email) {
		return errors.New(msgInvalidEmail)
	}
	return nil
}

func checkRequired(f FieldErrors, field, value string, max int) {
	if value == "" {
		f.Add(field, msgRequired)
		return
	}
	checkMaxLen(f, field, value, max)
}

// checkMaxLen also rejects NUL, which Postgres text columns cannot store.
func checkMaxLen(f FieldErrors, field, value string, max int) {
	if strings.ContainsRune(value, 0) {
		f.Add(field, msgNullChar)
		return
	}
	if utf8.RuneCountInString(value) > max {
		f.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", max))
	}
}

func checkOptionalMaxLen(f FieldErrors, field string, value *string, max int) {
	if value != nil {
		checkMaxLen(f, field, *value, max)
	}
}

func checkChoice(f FieldErrors, field, value string, valid bool) {
	if value == "" {
		f.Add(field, msgRequired)
		return
	}
	if !valid {
		f.Add(field, fmt.Sprintf("%q is not a valid choice.", value))
	}
}

// checkInt32Range bounds v to an INTEGER column.
func checkInt32Range(f FieldErrors, field string, v int) {
	switch {
	case v > math.MaxInt32:
		f.Add(field, fmt.Sprintf("Ensure this value is less than or equal to %d.", math.MaxInt32))
	case v < math.MinInt32:
		f.Add(field, fmt.Sprintf("Ensure this value is greater than or equal to %d.", math.MinInt32))
	}
}

func checkOptionalInt32Range(f FieldErrors, field string, v *int) {
	if v != nil {
		checkInt32Range(f, field, *v)
	}
}
