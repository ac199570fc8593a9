package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MinNameLength    = 2
	MaxNameLength    = 100
	MinMessageLength = 1
	MaxMessageLength = 5000
	MinTitleLength   = 1
	MaxTitleLength   = 200
	MaxDescLength    = 2000
	MaxSkillsLength  = 5000
	MaxCompanyLength = 200
	MaxHourlyRate    = 100000.0
)

// ValidateLength checks a string's rune count against bounds. A zero bound
// disables that side of the check.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s must be at most %d characters", fieldName, max)
	}
	return nil
}

// ValidateEmail does a structural check, not deliverability: one @, a
// non-empty local part and a dotted domain.
func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email is required")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("invalid email format")
	}
	if !strings.Contains(parts[1], ".") || strings.HasPrefix(parts[1], ".") || strings.HasSuffix(parts[1], ".") {
		return fmt.Errorf("invalid email domain")
	}
	if strings.ContainsAny(email, " \t\n") {
		return fmt.Errorf("email must not contain whitespace")
	}
	return nil
}

// NormalizeEmail returns the canonical form stored in lead records.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
