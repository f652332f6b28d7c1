package output

import (
	"github.com/mtplates/mtplates/internal/counties"
	"github.com/mtplates/mtplates/internal/model"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// CityOutput represents a city in JSON output.
type CityOutput struct {
	City          string `json:"city"`
	County        string `json:"county"`
	LicensePrefix int    `json:"license_prefix"`
}

// NewCityOutput creates a CityOutput from a CityRecord.
func NewCityOutput(rec model.CityRecord) *CityOutput {
	return &CityOutput{
		City:          rec.City,
		County:        rec.County,
		LicensePrefix: rec.LicensePrefix,
	}
}

// LookupResponse represents the lookup command output in JSON.
type LookupResponse struct {
	Status string      `json:"status"`
	Query  string      `json:"query"`
	City   *CityOutput `json:"city,omitempty"`
}

// AddResponse represents the add command output in JSON.
type AddResponse struct {
	Status string      `json:"status"`
	City   *CityOutput `json:"city"`
}

// CitiesResponse represents the list command output in JSON.
type CitiesResponse struct {
	Cities     []*CityOutput `json:"cities"`
	TotalCount int           `json:"total_count"`
}

// CountiesResponse represents the counties command output in JSON.
type CountiesResponse struct {
	Counties   []counties.County `json:"counties"`
	TotalCount int               `json:"total_count"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// PrintLookup prints a lookup result. rec is nil on a miss.
func (j *JSONFormatter) PrintLookup(query string, rec *model.CityRecord) error {
	resp := LookupResponse{Status: "not_found", Query: query}
	if rec != nil {
		resp.Status = "found"
		resp.City = NewCityOutput(*rec)
	}
	return j.JSON(resp)
}

// PrintAdded prints the result of adding a city.
func (j *JSONFormatter) PrintAdded(rec model.CityRecord) error {
	return j.JSON(AddResponse{Status: "added", City: NewCityOutput(rec)})
}

// PrintCities prints a city list.
func (j *JSONFormatter) PrintCities(records []model.CityRecord) error {
	out := make([]*CityOutput, len(records))
	for i, r := range records {
		out[i] = NewCityOutput(r)
	}
	return j.JSON(CitiesResponse{Cities: out, TotalCount: len(out)})
}

// PrintCounties prints the county prefix table.
func (j *JSONFormatter) PrintCounties(list []counties.County) error {
	return j.JSON(CountiesResponse{Counties: list, TotalCount: len(list)})
}

// PrintError prints an error.
func (j *JSONFormatter) PrintError(category, message, suggestion string) error {
	return j.JSON(ErrorResponse{
		Status:     "error",
		Error:      category,
		Message:    message,
		Suggestion: suggestion,
	})
}
