package restcountries

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var errUnsupportedJSON = errors.New("unsupported JSON type")

// leadingByte returns the first non-space byte of a JSON value, or 0 when empty.
func leadingByte(raw []byte) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// capitalField accepts either a JSON string or an array of strings.
type capitalField []string

func (l *capitalField) UnmarshalJSON(raw []byte) error {
	if isNull(raw) {
		*l = nil
		return nil
	}
	switch leadingByte(raw) {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return &fieldError{field: "capital", err: err}
		}
		*l = capitalField{s}
		return nil
	case '[':
		var items []string
		if err := json.Unmarshal(raw, &items); err != nil {
			return &fieldError{field: "capital", err: err}
		}
		*l = items
		return nil
	default:
		return &fieldError{field: "capital", err: errUnsupportedJSON}
	}
}

// first returns the first non-blank entry.
func (l capitalField) first() string {
	for _, s := range l {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

var errNonFinite = errors.New("number is not finite")

// parseNumber accepts a JSON number or a numeric string ("38,005,238").
// Null and blank strings read as zero; NaN and infinities are rejected.
func parseNumber(field string, raw []byte) (float64, error) {
	if isNull(raw) {
		return 0, nil
	}
	var v float64
	if leadingByte(raw) == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, &fieldError{field: field, err: err}
		}
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
		if s == "" {
			return 0, nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, &fieldError{field: field, err: err}
		}
		v = parsed
	} else if err := json.Unmarshal(raw, &v); err != nil {
		return 0, &fieldError{field: field, err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &fieldError{field: field, err: errNonFinite}
	}
	return v, nil
}

// populationField is a head count clamped to [0, MaxInt64].
type populationField int64

func (p *populationField) UnmarshalJSON(raw []byte) error {
	v, err := parseNumber("population", raw)
	if err != nil {
		return err
	}
	switch {
	case v <= 0:
		*p = 0
	case v >= math.MaxInt64:
		*p = math.MaxInt64
	default:
		*p = populationField(v)
	}
	return nil
}

// areaField is a surface in km² clamped to be non-negative.
type areaField float64

func (a *areaField) UnmarshalJSON(raw []byte) error {
	v, err := parseNumber("area", raw)
	if err != nil {
		return err
	}
	*a = areaField(math.Max(v, 0))
	return nil
}

// objectEntry is one member of a JSON object, in document order.
type objectEntry struct {
	key   string
	value json.RawMessage
}

// orderedEntries walks a JSON object and returns its members in the order the
// upstream wrote them.
func orderedEntries(raw []byte) ([]objectEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil {
		return nil, err
	} else if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errUnsupportedJSON
	}
	var entries []objectEntry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errUnsupportedJSON
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		entries = append(entries, objectEntry{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}

type currencyEntry struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// currencyField accepts a code→{name,symbol} mapping or a direct display string.
type currencyField struct {
	display string
}

func (c *currencyField) UnmarshalJSON(raw []byte) error {
	if isNull(raw) {
		return nil
	}
	switch leadingByte(raw) {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return &fieldError{field: "currency", err: err}
		}
		c.display = strings.TrimSpace(s)
		return nil
	case '{':
		entries, err := orderedEntries(raw)
		if err != nil {
			return &fieldError{field: "currency", err: err}
		}
		for _, e := range entries {
			var entry currencyEntry
			if err := json.Unmarshal(e.value, &entry); err != nil {
				return &fieldError{field: "currency", err: err}
			}
			if name := strings.TrimSpace(entry.Name); name != "" && c.display == "" {
				c.display = name
			}
		}
		return nil
	default:
		return &fieldError{field: "currency", err: errUnsupportedJSON}
	}
}

// languageField accepts a code→name mapping or a list of names.
type languageField struct {
	names []string
}

func (l *languageField) UnmarshalJSON(raw []byte) error {
	if isNull(raw) {
		return nil
	}
	switch leadingByte(raw) {
	case '[':
		var names []string
		if err := json.Unmarshal(raw, &names); err != nil {
			return &fieldError{field: "languages", err: err}
		}
		l.names = names
		return nil
	case '{':
		entries, err := orderedEntries(raw)
		if err != nil {
			return &fieldError{field: "languages", err: err}
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			var name string
			if err := json.Unmarshal(e.value, &name); err != nil {
				return &fieldError{field: "languages", err: err}
			}
			names = append(names, name)
		}
		l.names = names
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return &fieldError{field: "languages", err: err}
		}
		if s = strings.TrimSpace(s); s != "" {
			l.names = []string{s}
		}
		return nil
	default:
		return &fieldError{field: "languages", err: errUnsupportedJSON}
	}
}

// flagField accepts a mapping of image formats to URLs or a single URL string.
type flagField struct {
	url string
}

// Vector first; "alt" carries description text rather than an image.
var flagPreference = []string{"svg", "png"}

func (f *flagField) UnmarshalJSON(raw []byte) error {
	if isNull(raw) {
		return nil
	}
	switch leadingByte(raw) {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return &fieldError{field: "flags", err: err}
		}
		f.url = strings.TrimSpace(s)
		return nil
	case '{':
		entries, err := orderedEntries(raw)
		if err != nil {
			return &fieldError{field: "flags", err: err}
		}
		formats := make(map[string]string, len(entries))
		var fallback string
		for _, e := range entries {
			var u string
			if err := json.Unmarshal(e.value, &u); err != nil {
				return &fieldError{field: "flags", err: err}
			}
			u = strings.TrimSpace(u)
			formats[e.key] = u
			if fallback == "" && e.key != "alt" {
				fallback = u
			}
		}
		for _, key := range flagPreference {
			if u := formats[key]; u != "" {
				f.url = u
				return nil
			}
		}
		f.url = fallback
		return nil
	default:
		return &fieldError{field: "flags", err: errUnsupportedJSON}
	}
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func describe(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 32 {
		trimmed = trimmed[:32]
	}
	return fmt.Sprintf("%q", trimmed)
}
