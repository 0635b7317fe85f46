// Package emailaddr normalizes and validates submitted email addresses.
//
// Validation is deliberately permissive: the goal is to catch typos and junk,
// not to re-implement RFC 5322. The pattern requires something@something.tld
// with at least two characters after the final dot; deliverability is decided
// by the mail host, not here.
package emailaddr

import (
	"regexp"
	"strings"
)

// MaxLength is the longest address accepted, per RFC 5321's practical cap.
const MaxLength = 254

var pattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

// Normalize trims surrounding whitespace and lower-cases the address. The
// normalized form is the datastore's unique key.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Valid reports whether a normalized address is acceptable.
func Valid(email string) bool {
	if email == "" || len(email) > MaxLength {
		return false
	}
	return pattern.MatchString(email)
}
