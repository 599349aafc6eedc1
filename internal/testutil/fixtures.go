package testutil

import (
	"fmt"

	"country-directory-service/internal/domain/countries"
)

// SampleCountry returns a fully populated country with the provided name and code.
func SampleCountry(name, code string) countries.Country {
	return countries.Country{
		Name:        name,
		Code:        code,
		Capital:     "Capital of " + name,
		Region:      "Europe",
		Subregion:   "Western Europe",
		Population:  1000,
		Area:        100,
		Coordinates: &countries.Coordinates{Latitude: 1, Longitude: 2},
		Borders:     []string{},
		Timezones:   []string{"UTC+01:00"},
		Languages:   []string{"English"},
		Currency:    "Euro",
		FlagURL:     "https://flagcdn.com/" + code + ".svg",
	}
}

// NestedCountryJSON renders a minimal nested-shape upstream record.
func NestedCountryJSON(name, cca3, region string, population int64, area float64) string {
	return fmt.Sprintf(`{"name":{"common":%q,"official":%q},"cca3":%q,"capital":["Capital of %s"],"region":%q,"population":%d,"area":%g,"flags":{"svg":"https://flagcdn.com/%s.svg"}}`,
		name, name, cca3, name, region, population, area, cca3)
}
