package restcountries

import (
	"encoding/json"
	"errors"
	"strings"

	"country-directory-service/internal/domain/countries"
)

var errUnrecognizedName = errors.New("name is neither an object nor a string")

// Normalize maps one raw upstream record, in either supported shape, to a Country.
// It fails with *NormalizationError when the display name cannot be determined
// or the record is structurally unrecognized.
func Normalize(raw json.RawMessage) (countries.Country, error) {
	rc, err := parseRaw(raw)
	if err != nil {
		return countries.Country{}, err
	}

	var c countries.Country
	switch rc.shape {
	case shapeNested:
		c = mapNested(rc.nested)
	case shapeFlat:
		c = mapFlat(rc.flat)
	default:
		return countries.Country{}, &NormalizationError{Field: "name", Err: errUnrecognizedName}
	}

	if c.Name == "" {
		return countries.Country{}, &NormalizationError{Field: "name"}
	}
	return c, nil
}

// parseRaw classifies the record by its name field, then decodes the matching shape.
func parseRaw(raw json.RawMessage) (rawCountry, error) {
	if leadingByte(raw) != '{' {
		return rawCountry{}, &NormalizationError{Field: "record", Err: errors.New("expected a JSON object, got " + describe(raw))}
	}

	var probe struct {
		Name json.RawMessage `json:"name"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return rawCountry{}, &NormalizationError{Field: "record", Err: err}
	}
	if len(probe.Name) == 0 || isNull(probe.Name) {
		return rawCountry{}, &NormalizationError{Field: "name"}
	}

	switch leadingByte(probe.Name) {
	case '{':
		var n nestedCountry
		if err := json.Unmarshal(raw, &n); err != nil {
			return rawCountry{}, decodeError(err)
		}
		return rawCountry{shape: shapeNested, nested: &n}, nil
	case '"':
		var f flatCountry
		if err := json.Unmarshal(raw, &f); err != nil {
			return rawCountry{}, decodeError(err)
		}
		return rawCountry{shape: shapeFlat, flat: &f}, nil
	default:
		return rawCountry{}, &NormalizationError{Field: "name", Err: errUnrecognizedName}
	}
}

func decodeError(err error) error {
	var fErr *fieldError
	if errors.As(err, &fErr) {
		return &NormalizationError{Field: fErr.field, Err: fErr.err}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &NormalizationError{Field: typeErr.Field, Err: err}
	}
	return &NormalizationError{Field: "record", Err: err}
}

func mapNested(n *nestedCountry) countries.Country {
	name := strings.TrimSpace(n.Name.Common)
	if name == "" {
		name = strings.TrimSpace(n.Name.Official)
	}
	return countries.Country{
		Name:        name,
		Code:        firstNonEmpty(n.CCA3, n.CCA2),
		Capital:     capitalOrUnknown(n.Capital),
		Region:      strings.TrimSpace(n.Region),
		Subregion:   strings.TrimSpace(n.Subregion),
		Population:  int64(n.Population),
		Area:        float64(n.Area),
		Coordinates: mapCoordinates(n.LatLng),
		Borders:     emptyIfNil(n.Borders),
		Timezones:   emptyIfNil(n.Timezones),
		Languages:   emptyIfNil(n.Languages.names),
		Currency:    n.Currencies.display,
		FlagURL:     n.Flags.url,
	}
}

func mapFlat(f *flatCountry) countries.Country {
	return countries.Country{
		Name:        strings.TrimSpace(f.Name),
		Code:        firstNonEmpty(f.Code, f.Alpha3Code, f.Alpha2Code),
		Capital:     capitalOrUnknown(f.Capital),
		Region:      strings.TrimSpace(f.Region),
		Subregion:   strings.TrimSpace(f.Subregion),
		Population:  int64(f.Population),
		Area:        float64(f.Area),
		Coordinates: mapCoordinates(f.LatLng),
		Borders:     emptyIfNil(f.Borders),
		Timezones:   emptyIfNil(f.Timezones),
		Languages:   emptyIfNil(f.Languages.names),
		Currency:    firstNonEmpty(f.Currency.display, f.Currencies.display),
		FlagURL:     firstNonEmpty(f.Flags.url, f.Flag.url),
	}
}

func capitalOrUnknown(capital capitalField) string {
	if c := capital.first(); c != "" {
		return c
	}
	return countries.CapitalUnknown
}

func mapCoordinates(latlng []float64) *countries.Coordinates {
	if len(latlng) < 2 {
		return nil
	}
	return &countries.Coordinates{Latitude: latlng[0], Longitude: latlng[1]}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
