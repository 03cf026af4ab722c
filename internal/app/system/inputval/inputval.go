// internal/app/system/inputval/inputval.go
// Package inputval holds the request-input validators shared by the auth
// and groups features, plus the strict sanitizer applied to all
// user-supplied text before it is stored.
package inputval

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// emailRe matches the same loose shape the registration flow has always
// accepted: something@something.something, no spaces.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// DefaultPasswordMin is used when config leaves the minimum unset.
const DefaultPasswordMin = 6

// strict strips all HTML from stored text. Chat messages and titles are
// plain text; clients render them verbatim.
var strict = bluemonday.StrictPolicy()

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailRe.MatchString(strings.ToLower(s))
}

// Sanitize strips HTML and trims surrounding whitespace.
func Sanitize(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// RequiredText sanitizes s and reports whether anything is left.
func RequiredText(s string) (string, bool) {
	clean := Sanitize(s)
	return clean, clean != ""
}
