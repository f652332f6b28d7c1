package validate

import (
	"errors"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"

	mterrors "github.com/mtplates/mtplates/internal/errors"
)

// =============================================================================
// Name Tests
// =============================================================================

func TestName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		reason    string
	}{
		// Valid names
		{"simple", "Bozeman", true, ""},
		{"multi_word", "Four Corners", true, ""},
		{"apostrophe", "O'Brien", true, ""},
		{"typographic_apostrophe", "O’Brien", true, ""},
		{"hyphen", "Sedro-Woolley", true, ""},
		{"lowercase_word", "Lewis and Clark", true, ""},
		{"surrounding_space", "  Helena  ", true, ""},
		{"accented", "Coeur d'Alène", true, ""},
		{"max_length", strings.Repeat("a", MaxNameLength), true, ""},

		// Invalid names
		{"empty", "", false, ReasonEmpty},
		{"whitespace_only", "   \t ", false, ReasonEmpty},
		{"digit", "Four9Corners", false, ReasonDigits},
		{"only_digits", "59715", false, ReasonDigits},
		{"too_long", strings.Repeat("a", MaxNameLength+1), false, ReasonTooLong},
		{"comma", "Butte, MT", false, `contains invalid character ','`},
		{"period", "St. Ignatius", false, `contains invalid character '.'`},
		{"at_sign", "Big@Sky", false, `contains invalid character '@'`},
		{"tab_inside", "Big\tSky", false, `contains invalid character '\t'`},
		{"hyphen_only", "-", false, ReasonNoLetters},
		{"apostrophe_only", "'", false, ReasonNoLetters},
		{"punctuation_and_space", "- -", false, ReasonNoLetters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Name(tt.input)
			assert.Equal(t, tt.wantValid, res.Valid)
			assert.Equal(t, tt.reason, res.Reason)
		})
	}
}

func TestNameAcceptedImpliesPolicy(t *testing.T) {
	inputs := []string{
		"Bozeman", "Four Corners", "O'Brien", "a-b c", "Four9Corners",
		"x", " ", "Big Sky!", "Whitefish ", "--", "''", "Miles City",
	}
	for _, in := range inputs {
		if !Name(in).Valid {
			continue
		}
		trimmed := strings.TrimSpace(in)
		assert.NotEmpty(t, trimmed, in)
		assert.True(t, strings.IndexFunc(trimmed, unicode.IsLetter) >= 0, in)
		for _, r := range trimmed {
			assert.False(t, unicode.IsDigit(r), in)
			assert.True(t, unicode.IsLetter(r) || r == ' ' || r == '\'' || r == '’' || r == '-', in)
		}
	}
}

func TestResultErr(t *testing.T) {
	t.Run("valid_is_nil", func(t *testing.T) {
		assert.NoError(t, Name("Bozeman").Err("city", "Bozeman"))
	})

	t.Run("invalid_is_validation_error", func(t *testing.T) {
		err := Name("Four9Corners").Err("city", "Four9Corners")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, mterrors.ErrInvalidName))
		assert.Contains(t, err.Error(), "digits")
	})
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "valid", Name("Helena").String())
	assert.Equal(t, "invalid: empty", Name("").String())
}

func TestCityAndCountyName(t *testing.T) {
	assert.NoError(t, CityName("Great Falls"))
	assert.NoError(t, CountyName("Lewis and Clark"))

	err := CityName(" B0zeman ")
	ue, ok := mterrors.AsUserError(err)
	if assert.True(t, ok) {
		assert.Equal(t, "city", ue.Field)
		assert.Equal(t, "B0zeman", ue.Value)
	}

	err = CountyName("")
	ue, ok = mterrors.AsUserError(err)
	if assert.True(t, ok) {
		assert.Equal(t, "county", ue.Field)
		assert.Equal(t, ReasonEmpty, ue.Reason)
	}
}

// =============================================================================
// Sanitize Tests
// =============================================================================

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Bozeman", "Bozeman"},
		{"crlf", "Bozeman\r\n", "Bozeman"},
		{"padded", "  Big Timber  ", "Big Timber"},
		{"null_byte", "Hel\x00ena", "Helena"},
		{"escape", "\x1b[AHavre", "[AHavre"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeInput(tt.input))
		})
	}
}
