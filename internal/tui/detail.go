package tui

import (
	"fmt"
	"strings"

	"github.com/mtplates/mtplates/internal/model"
)

// DetailComponent describes the selected city.
type DetailComponent struct {
	City         *model.CityRecord
	CountyCities int
	TotalCities  int
	Width        int
}

// NewDetailComponent creates a detail component.
// countyCities is how many known cities share the selected city's county.
func NewDetailComponent(city *model.CityRecord, countyCities, totalCities, width int) *DetailComponent {
	return &DetailComponent{
		City:         city,
		CountyCities: countyCities,
		TotalCities:  totalCities,
		Width:        width,
	}
}

// View renders the detail component.
func (d *DetailComponent) View() string {
	box := StyleDetailBox
	if d.Width > 4 {
		box = box.Width(d.Width - 4)
	}

	if d.City == nil {
		return box.Render(StyleSubtitle.Render("No cities to show"))
	}

	var content strings.Builder
	content.WriteString(fmt.Sprintf("%s is in %s County (License Prefix %s)",
		StyleCity.Render(d.City.City),
		StyleCounty.Render(d.City.County),
		StylePrefix.Render(fmt.Sprint(d.City.LicensePrefix))))
	content.WriteString("\n")
	content.WriteString(ShareBar(d.CountyCities, d.TotalCities, 20))
	content.WriteString(" ")
	content.WriteString(StyleSubtitle.Render(fmt.Sprintf("%d of %d known cities in %s County",
		d.CountyCities, d.TotalCities, d.City.County)))

	return box.Render(content.String())
}
