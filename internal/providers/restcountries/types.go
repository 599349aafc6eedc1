package restcountries

// upstreamShape tags which of the two known raw layouts a record uses.
type upstreamShape int

const (
	shapeUnknown upstreamShape = iota
	// shapeNested is the restcountries v3.1 layout: name.common, capital as a
	// list, currencies/languages keyed by code, flags keyed by format.
	shapeNested
	// shapeFlat is the wrapped-API layout: name, capital, currency and flag
	// already flattened to strings; no coordinates.
	shapeFlat
)

func (s upstreamShape) String() string {
	switch s {
	case shapeNested:
		return "nested"
	case shapeFlat:
		return "flat"
	default:
		return "unknown"
	}
}

// rawCountry is the tagged union produced at the ingestion boundary. Exactly
// one of nested/flat is set, matching shape.
type rawCountry struct {
	shape  upstreamShape
	nested *nestedCountry
	flat   *flatCountry
}

type nestedName struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

type nestedCountry struct {
	Name       nestedName      `json:"name"`
	CCA2       string          `json:"cca2"`
	CCA3       string          `json:"cca3"`
	Capital    capitalField    `json:"capital"`
	Region     string          `json:"region"`
	Subregion  string          `json:"subregion"`
	Population populationField `json:"population"`
	Area       areaField       `json:"area"`
	LatLng     []float64       `json:"latlng"`
	Borders    []string        `json:"borders"`
	Timezones  []string        `json:"timezones"`
	Currencies currencyField   `json:"currencies"`
	Languages  languageField   `json:"languages"`
	Flags      flagField       `json:"flags"`
}

type flatCountry struct {
	Name       string          `json:"name"`
	Code       string          `json:"code"`
	Alpha3Code string          `json:"alpha3Code"`
	Alpha2Code string          `json:"alpha2Code"`
	Capital    capitalField    `json:"capital"`
	Region     string          `json:"region"`
	Subregion  string          `json:"subregion"`
	Population populationField `json:"population"`
	Area       areaField       `json:"area"`
	LatLng     []float64       `json:"latlng"`
	Borders    []string        `json:"borders"`
	Timezones  []string        `json:"timezones"`
	Currency   currencyField   `json:"currency"`
	Currencies currencyField   `json:"currencies"`
	Languages  languageField   `json:"languages"`
	Flag       flagField       `json:"flag"`
	Flags      flagField       `json:"flags"`
}
