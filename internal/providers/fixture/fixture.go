package fixture

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"country-directory-service/internal/providers"
)

//go:embed data/*.json
var files embed.FS

// Fetcher serves canned upstream bodies for local development and tests. It
// answers both path layouts: /all, /alpha/{code}, /name/{name} with the
// nested-shape data, and /countries, /countries/{name} with the wrapped
// flat-shape data.
type Fetcher struct {
	nested []map[string]json.RawMessage
	flat   []map[string]json.RawMessage
}

var _ providers.Fetcher = (*Fetcher)(nil)

// New loads the embedded fixture data.
func New() (*Fetcher, error) {
	nested, err := loadArray("data/nested.json")
	if err != nil {
		return nil, err
	}
	flat, err := loadWrapped("data/flat.json")
	if err != nil {
		return nil, err
	}
	return &Fetcher{nested: nested, flat: flat}, nil
}

// FetchJSON resolves url against the fixture data. Unknown paths fail with *providers.FixtureMissError.
func (f *Fetcher) FetchJSON(ctx context.Context, rawURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) == 0 {
		return nil, &providers.FixtureMissError{Path: u.Path}
	}
	last := segments[len(segments)-1]

	switch {
	case last == "all":
		return json.Marshal(f.nested)
	case last == "countries":
		return json.Marshal(map[string]any{"success": true, "data": f.flat})
	case len(segments) >= 2:
		key, _ := url.PathUnescape(last)
		switch segments[len(segments)-2] {
		case "alpha":
			return json.Marshal(filter(f.nested, matchesCode(key)))
		case "name":
			return json.Marshal(filter(f.nested, matchesName(key)))
		case "countries":
			matches := filter(f.flat, func(r map[string]json.RawMessage) bool {
				return matchesName(key)(r) || matchesCode(key)(r)
			})
			if len(matches) == 0 {
				return []byte(`{"success":false,"data":null}`), nil
			}
			return json.Marshal(map[string]any{"success": true, "data": matches[0]})
		}
	}
	return nil, &providers.FixtureMissError{Path: u.Path}
}

func loadArray(path string) ([]map[string]json.RawMessage, error) {
	body, err := files.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []map[string]json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return records, nil
}

func loadWrapped(path string) ([]map[string]json.RawMessage, error) {
	body, err := files.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var wrapper struct {
		Data []map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return wrapper.Data, nil
}

func filter(records []map[string]json.RawMessage, keep func(map[string]json.RawMessage) bool) []map[string]json.RawMessage {
	out := make([]map[string]json.RawMessage, 0)
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func matchesCode(code string) func(map[string]json.RawMessage) bool {
	return func(r map[string]json.RawMessage) bool {
		for _, field := range []string{"cca2", "cca3", "code"} {
			if strings.EqualFold(stringField(r, field), code) && code != "" {
				return true
			}
		}
		return false
	}
}

// matchesName mirrors the upstream /name endpoint: case-insensitive substring match.
func matchesName(name string) func(map[string]json.RawMessage) bool {
	needle := strings.ToLower(strings.TrimSpace(name))
	return func(r map[string]json.RawMessage) bool {
		if needle == "" {
			return false
		}
		candidates := []string{stringField(r, "name")}
		var nested struct {
			Common   string `json:"common"`
			Official string `json:"official"`
		}
		if err := json.Unmarshal(r["name"], &nested); err == nil {
			candidates = append(candidates, nested.Common, nested.Official)
		}
		for _, c := range candidates {
			if c != "" && strings.Contains(strings.ToLower(c), needle) {
				return true
			}
		}
		return false
	}
}

func stringField(r map[string]json.RawMessage, key string) string {
	var s string
	if err := json.Unmarshal(r[key], &s); err != nil {
		return ""
	}
	return s
}
