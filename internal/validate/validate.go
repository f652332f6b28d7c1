// Package validate provides input validation helpers for the mtplates CLI.
package validate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mtplates/mtplates/internal/errors"
)

// MaxNameLength is the maximum length for a city or county name.
const MaxNameLength = 64

// Reasons reported by Name.
const (
	ReasonEmpty     = "empty"
	ReasonDigits    = "contains digits"
	ReasonTooLong   = "too long"
	ReasonNoLetters = "no letters"
)

// Result is the outcome of a name check.
// The zero value is an invalid result with no reason; use Name to build one.
type Result struct {
	Valid  bool
	Reason string
}

// Err converts an invalid result into a validation error for field.
// Valid results return nil.
func (r Result) Err(field, value string) error {
	if r.Valid {
		return nil
	}
	return errors.NewValidationError(field, value, r.Reason)
}

// String returns "valid" or the reason.
func (r Result) String() string {
	if r.Valid {
		return "valid"
	}
	return "invalid: " + r.Reason
}

// Name checks a city or county name.
// After trimming, the name must be non-empty, contain only letters,
// spaces, apostrophes and hyphens, and contain at least one letter.
func Name(candidate string) Result {
	name := strings.TrimSpace(candidate)
	if name == "" {
		return Result{Reason: ReasonEmpty}
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return Result{Reason: ReasonTooLong}
	}

	for _, r := range name {
		if unicode.IsDigit(r) {
			return Result{Reason: ReasonDigits}
		}
	}
	hasLetter := false
	for _, r := range name {
		if !isNameRune(r) {
			return Result{Reason: fmt.Sprintf("contains invalid character %q", r)}
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	if !hasLetter {
		return Result{Reason: ReasonNoLetters}
	}

	return Result{Valid: true}
}

func isNameRune(r rune) bool {
	switch r {
	case ' ', '\'', '’', '-':
		return true
	}
	return unicode.IsLetter(r)
}

// CityName validates a city name and returns a validation error on failure.
func CityName(name string) error {
	return Name(name).Err("city", strings.TrimSpace(name))
}

// CountyName validates a county name and returns a validation error on failure.
func CountyName(name string) error {
	return Name(name).Err("county", strings.TrimSpace(name))
}
