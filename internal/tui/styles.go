// Package tui provides the full-screen city browser for mtplates.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette for the browser.
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#10B981") // Green
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorActive    = lipgloss.Color("#3B82F6") // Blue
	ColorBorder    = lipgloss.Color("#4B5563") // Dark gray
)

// Base styles for the TUI.
var (
	// StyleTitle is used for the header.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// StyleSubtitle is used for secondary information.
	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StyleCity = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	StyleCounty = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	StylePrefix = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorActive)

	// StyleSelected marks the row under the cursor.
	StyleSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorPrimary)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleHelp is used for help text at the bottom.
	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	// StyleHelpKey is used for keyboard shortcut keys.
	StyleHelpKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	// StyleHelpDesc is used for keyboard shortcut descriptions.
	StyleHelpDesc = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleDetailBox frames the selected city.
	StyleDetailBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 2)
)

// ShareBar renders how much of the total a part is, as a bar of width cells.
func ShareBar(part, total, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if total > 0 {
		filled = part * width / total
	}
	filled = min(max(filled, 0), width)

	filledStyle := lipgloss.NewStyle().Foreground(ColorSecondary)
	emptyStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	return filledStyle.Render(strings.Repeat("█", filled)) + // Full block
		emptyStyle.Render(strings.Repeat("░", width-filled)) // Light shade
}

// HelpBar renders the key bindings.
func HelpBar() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"↑/k", "up"},
		{"↓/j", "down"},
		{"pgup/pgdn", "page"},
		{"g/G", "top/bottom"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		part := StyleHelpKey.Render(k.key) + " " + StyleHelpDesc.Render(k.desc)
		parts = append(parts, part)
	}

	return StyleHelp.Render(strings.Join(parts, "  •  "))
}
