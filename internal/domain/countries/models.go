package countries

// CapitalUnknown is used when the upstream record carries no capital.
const CapitalUnknown = "N/A"

// Coordinates is the latitude/longitude pair reported upstream.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Country is the normalized country shape served to consumers.
// Both upstream shapes are reconciled into it before leaving the providers layer.
type Country struct {
	Name        string       `json:"name"`
	Code        string       `json:"code,omitempty"`
	Capital     string       `json:"capital"`
	Region      string       `json:"region"`
	Subregion   string       `json:"subregion"`
	Population  int64        `json:"population"`
	Area        float64      `json:"area"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Borders     []string     `json:"borders"`
	Timezones   []string     `json:"timezones"`
	Languages   []string     `json:"languages"`
	Currency    string       `json:"currency"`
	FlagURL     string       `json:"flagUrl"`
}

// PrimaryTimezone returns the first timezone, or "" when none is known.
func (c Country) PrimaryTimezone() string {
	if len(c.Timezones) == 0 {
		return ""
	}
	return c.Timezones[0]
}

// HasCoordinates reports whether the upstream shape supplied a location.
func (c Country) HasCoordinates() bool {
	return c.Coordinates != nil
}
