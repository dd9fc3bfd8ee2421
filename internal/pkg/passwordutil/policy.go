package passwordutil

import "regexp"

const (
	MinLength = 6
	MaxLength = 128
)

var (
	upperRe = regexp.MustCompile(`[A-Z]`)
	lowerRe = regexp.MustCompile(`[a-z]`)
	digitRe = regexp.MustCompile(`[0-9]`)
)

// CheckPolicy evaluates every password rule and returns the full list of
// violations, one message per broken rule. An empty result means the
// candidate passes. Callers must run this before Hash; a failing candidate
// is never hashed.
func CheckPolicy(plaintext string) []string {
	var violations []string
	if len(plaintext) < MinLength {
		violations = append(violations, "must be at least 6 characters long")
	}
	if len(plaintext) > MaxLength {
		violations = append(violations, "must be at most 128 characters long")
	}
	if !upperRe.MatchString(plaintext) {
		violations = append(violations, "must contain at least one uppercase letter")
	}
	if !lowerRe.MatchString(plaintext) {
		violations = append(violations, "must contain at least one lowercase letter")
	}
	if !digitRe.MatchString(plaintext) {
		violations = append(violations, "must contain at least one digit")
	}
	return violations
}
