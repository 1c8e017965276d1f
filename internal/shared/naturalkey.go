package shared

import (
	"strings"

	"golang.org/x/text/cases"
)

// NaturalKey folds s for case-insensitive uniqueness checks using Unicode
// default case folding. A Caser is stateful, so one is built per call.
func NaturalKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// NormalizeEmail lower-cases an email address before it is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
