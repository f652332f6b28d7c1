package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mtplates/mtplates/internal/model"
)

// Rows taken by everything except the city list: header, column header,
// detail box and help bar.
const chromeHeight = 10

// defaultPageSize is used until the first WindowSizeMsg arrives.
const defaultPageSize = 10

// BrowseModel is the bubbletea model for the city browser.
type BrowseModel struct {
	// Data
	cities       []model.CityRecord
	countyCounts map[string]int
	title        string

	// UI state
	cursor int
	offset int
	width  int
	height int
}

// BrowseConfig holds configuration for the browser.
type BrowseConfig struct {
	Cities []model.CityRecord
	Title  string
}

// NewBrowseModel creates a new browser model.
func NewBrowseModel(config BrowseConfig) *BrowseModel {
	if config.Title == "" {
		config.Title = "Montana Cities"
	}

	counts := make(map[string]int)
	for _, c := range config.Cities {
		counts[c.County]++
	}

	return &BrowseModel{
		cities:       config.Cities,
		countyCounts: counts,
		title:        config.Title,
	}
}

// Init initializes the model.
func (m *BrowseModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll()
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *BrowseModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "pgup":
		m.move(-m.pageSize())
	case "pgdown":
		m.move(m.pageSize())
	case "home", "g":
		m.move(-len(m.cities))
	case "end", "G":
		m.move(len(m.cities))
	}
	return m, nil
}

func (m *BrowseModel) move(delta int) {
	if len(m.cities) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.cities)-1)
	m.scroll()
}

// scroll keeps the cursor inside the visible window.
func (m *BrowseModel) scroll() {
	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	m.offset = max(min(m.offset, len(m.cities)-page), 0)
}

func (m *BrowseModel) pageSize() int {
	if m.height == 0 {
		return defaultPageSize
	}
	return max(m.height-chromeHeight, 1)
}

// Selected returns the city under the cursor.
func (m *BrowseModel) Selected() (model.CityRecord, bool) {
	if len(m.cities) == 0 {
		return model.CityRecord{}, false
	}
	return m.cities[m.cursor], true
}

// View renders the browser.
func (m *BrowseModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderList())

	var selected *model.CityRecord
	if rec, ok := m.Selected(); ok {
		selected = &rec
	}
	detail := NewDetailComponent(selected, m.countyCounts[selectedCounty(selected)], len(m.cities), m.width)
	sections = append(sections, detail.View())

	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func selectedCounty(rec *model.CityRecord) string {
	if rec == nil {
		return ""
	}
	return rec.County
}

// renderHeader renders the title line.
func (m *BrowseModel) renderHeader() string {
	title := StyleTitle.Render(m.title)
	count := StyleSubtitle.Render(fmt.Sprintf("%d cities", len(m.cities)))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", count) + "\n"
}

// renderList renders the visible window of the city table.
func (m *BrowseModel) renderList() string {
	cityWidth, countyWidth := len("City"), len("County")
	for _, c := range m.cities {
		cityWidth = max(cityWidth, len(c.City))
		countyWidth = max(countyWidth, len(c.County))
	}

	var b strings.Builder
	b.WriteString(StyleSubtitle.Render(fmt.Sprintf("  %-*s  %-*s  %s", cityWidth, "City", countyWidth, "County", "Prefix")))
	b.WriteString("\n")

	end := min(m.offset+m.pageSize(), len(m.cities))
	for i := m.offset; i < end; i++ {
		c := m.cities[i]
		if i == m.cursor {
			row := fmt.Sprintf("> %-*s  %-*s  %6d", cityWidth, c.City, countyWidth, c.County, c.LicensePrefix)
			b.WriteString(StyleSelected.Render(row))
		} else {
			b.WriteString("  ")
			b.WriteString(StyleCity.Render(fmt.Sprintf("%-*s", cityWidth, c.City)))
			b.WriteString("  ")
			b.WriteString(StyleCounty.Render(fmt.Sprintf("%-*s", countyWidth, c.County)))
			b.WriteString("  ")
			b.WriteString(StylePrefix.Render(fmt.Sprintf("%6d", c.LicensePrefix)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Run starts the browser.
func Run(config BrowseConfig) error {
	m := NewBrowseModel(config)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
