package model

import "fmt"

// CityRecord is a city with its county and the county's license plate prefix.
type CityRecord struct {
	City          string `json:"city"`
	County        string `json:"county"`
	LicensePrefix int    `json:"license_prefix"`
}

// String renders the record the way the lookup prompt shows a hit.
func (c CityRecord) String() string {
	return fmt.Sprintf("%s is in %s County (License Prefix %d)", c.City, c.County, c.LicensePrefix)
}
