package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mtplates/mtplates/internal/counties"
	"github.com/mtplates/mtplates/internal/model"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorAccent  = lipgloss.Color("#3B82F6") // Blue
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleCity = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleCounty = lipgloss.NewStyle().
			Foreground(colorSuccess)

	stylePrefix = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// CityName formats a city name.
func (c *CLIFormatter) CityName(name string) string {
	return c.render(styleCity, name)
}

// CountyName formats a county name.
func (c *CLIFormatter) CountyName(name string) string {
	return c.render(styleCounty, name)
}

// Prefix formats a plate prefix.
func (c *CLIFormatter) Prefix(prefix int) string {
	return c.render(stylePrefix, strconv.Itoa(prefix))
}

// PrintCity prints a lookup hit:
// "<City> is in <County> County (License Prefix <N>)".
func (c *CLIFormatter) PrintCity(rec model.CityRecord) {
	c.Printf("%s is in %s County (License Prefix %s)\n",
		c.CityName(rec.City), c.CountyName(rec.County), c.Prefix(rec.LicensePrefix))
}

// PrintConfirmation prints the summary shown before a new city is saved.
func (c *CLIFormatter) PrintConfirmation(city, county string) {
	c.Println()
	c.Println("Please confirm your entry:")
	c.Printf("City: %s\n", c.CityName(city))
	c.Printf("County: %s\n", c.CountyName(county))
}

// PrintAdded prints the message shown after a city is saved.
func (c *CLIFormatter) PrintAdded(rec model.CityRecord) {
	c.Printf("%s %s - %s - Prefix: %s\n\n", c.render(styleSuccess, "Added:"),
		c.CityName(rec.City), c.CountyName(rec.County), c.Prefix(rec.LicensePrefix))
}

// PrintCities prints a table of cities.
func (c *CLIFormatter) PrintCities(records []model.CityRecord) {
	if len(records) == 0 {
		c.Muted("No cities.")
		return
	}

	cityWidth, countyWidth := len("City"), len("County")
	for _, r := range records {
		cityWidth = max(cityWidth, len(r.City))
		countyWidth = max(countyWidth, len(r.County))
	}

	header := fmt.Sprintf("%-*s  %-*s  %s", cityWidth, "City", countyWidth, "County", "Prefix")
	c.Println(c.render(styleTitle, header))
	c.Println(c.render(styleMuted, strings.Repeat("─", len(header))))
	for _, r := range records {
		c.Printf("%s  %s  %s\n",
			c.CityName(fmt.Sprintf("%-*s", cityWidth, r.City)),
			c.CountyName(fmt.Sprintf("%-*s", countyWidth, r.County)),
			c.Prefix(r.LicensePrefix))
	}
	c.Muted(fmt.Sprintf("\n%d cities", len(records)))
}

// PrintCounties prints the county prefix table.
func (c *CLIFormatter) PrintCounties(list []counties.County) {
	width := len("County")
	for _, ct := range list {
		width = max(width, len(ct.Name))
	}

	header := fmt.Sprintf("%6s  %s", "Prefix", "County")
	c.Println(c.render(styleTitle, header))
	c.Println(c.render(styleMuted, strings.Repeat("─", 8+width)))
	for _, ct := range list {
		c.Printf("%s  %s\n",
			c.render(stylePrefix, fmt.Sprintf("%6d", ct.Prefix)),
			c.CountyName(ct.Name))
	}
}

// PrintError prints an error with its suggestion on the following line.
func (c *CLIFormatter) PrintError(msg, suggestion string) {
	c.Error(msg)
	if suggestion != "" {
		c.Muted("  " + suggestion)
	}
}
