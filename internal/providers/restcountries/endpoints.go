package restcountries

import (
	"net/url"
	"strings"
)

// Layout selects the upstream path layout.
type Layout string

const (
	// LayoutRestCountries serves /all, /alpha/{code} and /name/{name} as bare arrays.
	LayoutRestCountries Layout = "restcountries"
	// LayoutWrapped serves /countries and /countries/{name} inside {"data": ...}.
	LayoutWrapped Layout = "wrapped"
)

// ParseLayout maps a config value to a Layout, defaulting to LayoutRestCountries.
func ParseLayout(raw string) Layout {
	switch Layout(strings.ToLower(strings.TrimSpace(raw))) {
	case LayoutWrapped:
		return LayoutWrapped
	default:
		return LayoutRestCountries
	}
}

// Endpoints builds fully qualified upstream URLs. The zero value targets the
// public restcountries v3.1 API.
type Endpoints struct {
	BaseURL string
	Layout  Layout
	// Fields, when set, restricts the list endpoint to these fields (?fields=a,b).
	Fields []string
}

// NewEndpoints returns Endpoints with a trimmed base URL and a resolved layout.
func NewEndpoints(baseURL string, layout Layout, fields ...string) Endpoints {
	e := Endpoints{BaseURL: baseURL, Layout: ParseLayout(string(layout)), Fields: fields}
	e.BaseURL = e.base()
	return e
}

// All returns the list endpoint.
func (e Endpoints) All() string {
	var u string
	if e.layout() == LayoutWrapped {
		u = e.base() + "/countries"
	} else {
		u = e.base() + "/all"
	}
	if len(e.Fields) > 0 {
		u += "?fields=" + url.QueryEscape(strings.Join(e.Fields, ","))
	}
	return u
}

// ByCode returns the single-country endpoint for an alpha-2/alpha-3 code.
func (e Endpoints) ByCode(code string) string {
	if e.layout() == LayoutWrapped {
		return e.base() + "/countries/" + url.PathEscape(code)
	}
	return e.base() + "/alpha/" + url.PathEscape(code)
}

// ByName returns the single-country endpoint for a display name.
func (e Endpoints) ByName(name string) string {
	if e.layout() == LayoutWrapped {
		return e.base() + "/countries/" + url.PathEscape(name)
	}
	return e.base() + "/name/" + url.PathEscape(name)
}

func (e Endpoints) layout() Layout {
	return ParseLayout(string(e.Layout))
}

func (e Endpoints) base() string {
	raw := strings.TrimSpace(e.BaseURL)
	if raw == "" {
		if e.layout() == LayoutWrapped {
			raw = defaultWrappedBaseURL
		} else {
			raw = defaultRestCountriesBaseURL
		}
	}
	return strings.TrimSuffix(raw, "/")
}
