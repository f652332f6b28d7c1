package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtplates/mtplates/internal/counties"
	"github.com/mtplates/mtplates/internal/model"
)

// =============================================================================
// Formatter Tests
// =============================================================================

func TestNewFormatter(t *testing.T) {
	f := NewFormatter()
	assert.NotNil(t, f)
	assert.Equal(t, FormatCLI, f.Format)
	assert.Equal(t, ColorAuto, f.ColorMode)
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatPlain, ParseFormat("plain"))
	assert.Equal(t, FormatCLI, ParseFormat("cli"))
	assert.Equal(t, FormatCLI, ParseFormat("bogus"))
}

func TestParseColorMode(t *testing.T) {
	assert.Equal(t, ColorAlways, ParseColorMode("always"))
	assert.Equal(t, ColorNever, ParseColorMode("never"))
	assert.Equal(t, ColorAuto, ParseColorMode(""))
}

func TestFormatterIsColorEnabled(t *testing.T) {
	t.Run("color_always", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorAlways}
		assert.True(t, f.IsColorEnabled())
	})

	t.Run("color_never", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorNever}
		assert.False(t, f.IsColorEnabled())
	})

	t.Run("plain_overrides_always", func(t *testing.T) {
		f := &Formatter{Format: FormatPlain, ColorMode: ColorAlways}
		assert.False(t, f.IsColorEnabled())
	})

	t.Run("color_auto_non_terminal", func(t *testing.T) {
		var buf bytes.Buffer
		f := &Formatter{
			Writer:    &buf,
			ColorMode: ColorAuto,
		}
		// Buffer is not a terminal
		assert.False(t, f.IsColorEnabled())
	})
}

func TestFormatterPrintf(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	f.Printf("hello %s", "world")
	assert.Equal(t, "hello world", buf.String())
}

func TestFormatterJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	data := map[string]string{"key": "value"}
	err := f.JSON(data)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"key": "value"`)
}

// =============================================================================
// CLIFormatter Tests
// =============================================================================

func newTestCLI() (*CLIFormatter, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewCLIFormatter(&Formatter{Writer: &buf, ColorMode: ColorNever}), &buf
}

var bozeman = model.CityRecord{City: "Bozeman", County: "Gallatin", LicensePrefix: 6}

func TestCLIPrintCity(t *testing.T) {
	c, buf := newTestCLI()
	c.PrintCity(bozeman)
	assert.Equal(t, "Bozeman is in Gallatin County (License Prefix 6)\n", buf.String())
}

func TestCLIPrintAdded(t *testing.T) {
	c, buf := newTestCLI()
	c.PrintAdded(model.CityRecord{City: "Four Corners", County: "Gallatin", LicensePrefix: 6})
	assert.Equal(t, "Added: Four Corners - Gallatin - Prefix: 6\n\n", buf.String())
}

func TestCLIPrintConfirmation(t *testing.T) {
	c, buf := newTestCLI()
	c.PrintConfirmation("Four Corners", "Gallatin")
	assert.Contains(t, buf.String(), "Please confirm your entry:")
	assert.Contains(t, buf.String(), "City: Four Corners\n")
	assert.Contains(t, buf.String(), "County: Gallatin\n")
}

func TestCLIPrintCities(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		c, buf := newTestCLI()
		c.PrintCities(nil)
		assert.Contains(t, buf.String(), "No cities.")
	})

	t.Run("table", func(t *testing.T) {
		c, buf := newTestCLI()
		c.PrintCities([]model.CityRecord{
			bozeman,
			{City: "Missoula", County: "Missoula", LicensePrefix: 4},
		})
		out := buf.String()
		assert.Contains(t, out, "City")
		assert.Contains(t, out, "Bozeman ")
		assert.Contains(t, out, "Missoula")
		assert.Contains(t, out, "2 cities")
	})
}

func TestCLIPrintCounties(t *testing.T) {
	c, buf := newTestCLI()
	c.PrintCounties([]counties.County{{Name: "Silver Bow", Prefix: 1}, {Name: "Gallatin", Prefix: 6}})
	assert.Contains(t, buf.String(), "     1  Silver Bow")
	assert.Contains(t, buf.String(), "     6  Gallatin")
}

func TestCLIMessages(t *testing.T) {
	c, buf := newTestCLI()
	c.Warning("careful")
	c.PrintError("Unknown county: 'gallatin'", "Did you mean 'Gallatin'?")

	out := buf.String()
	assert.Contains(t, out, "⚠ careful")
	assert.Contains(t, out, "✗ Unknown county: 'gallatin'")
	assert.Contains(t, out, "  Did you mean 'Gallatin'?")
}

// =============================================================================
// JSONFormatter Tests
// =============================================================================

func TestJSONPrintLookup(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		var buf bytes.Buffer
		j := NewJSONFormatter(&Formatter{Writer: &buf})
		require.NoError(t, j.PrintLookup("Bozeman", &bozeman))

		var resp LookupResponse
		require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
		assert.Equal(t, "found", resp.Status)
		require.NotNil(t, resp.City)
		assert.Equal(t, 6, resp.City.LicensePrefix)
	})

	t.Run("not_found", func(t *testing.T) {
		var buf bytes.Buffer
		j := NewJSONFormatter(&Formatter{Writer: &buf})
		require.NoError(t, j.PrintLookup("Nowhereville", nil))
		assert.Contains(t, buf.String(), `"status": "not_found"`)
		assert.NotContains(t, buf.String(), `"city"`)
	})
}

func TestJSONPrintCities(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONFormatter(&Formatter{Writer: &buf})
	require.NoError(t, j.PrintCities([]model.CityRecord{bozeman}))

	var resp CitiesResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, 1, resp.TotalCount)
	assert.Equal(t, "Gallatin", resp.Cities[0].County)
}

func TestJSONPrintError(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONFormatter(&Formatter{Writer: &buf})
	require.NoError(t, j.PrintError("user", "Invalid city name", "Use letters only"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "user", resp.Error)
	assert.Equal(t, "Use letters only", resp.Suggestion)
}
