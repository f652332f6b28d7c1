package validate

import (
	"strings"
	"unicode"
)

// SanitizeInput cleans a line typed at the prompt.
// Control characters (including a trailing CR) are removed and the result is trimmed.
func SanitizeInput(s string) string {
	return strings.TrimSpace(StripControlChars(s))
}

// StripControlChars removes all control characters from a string.
func StripControlChars(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if !unicode.IsControl(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
