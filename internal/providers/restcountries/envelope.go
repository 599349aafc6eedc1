package restcountries

import (
	"bytes"
	"encoding/json"
	"errors"
)

// maxEnvelopeDepth bounds how many {"data": ...} wrappers are peeled off.
const maxEnvelopeDepth = 2

// DecodeList splits an upstream body into raw country records. It accepts a
// bare array, a bare object, or either wrapped as {"data": ...}. A null or
// empty body yields no records.
func DecodeList(body []byte) ([]json.RawMessage, error) {
	return decodeList(body, 0)
}

// DecodeOne returns the first raw record of body, or ErrEmptyResult.
func DecodeOne(body []byte) (json.RawMessage, error) {
	items, err := DecodeList(body)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyResult
	}
	return items[0], nil
}

func decodeList(body []byte, depth int) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || isNull(trimmed) {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, &NormalizationError{Field: "body", Err: err}
		}
		return items, nil
	case '{':
		if depth < maxEnvelopeDepth {
			if inner, ok, err := unwrapEnvelope(trimmed); err != nil {
				return nil, err
			} else if ok {
				return decodeList(inner, depth+1)
			}
		}
		if !json.Valid(trimmed) {
			return nil, &NormalizationError{Field: "body", Err: errors.New("invalid JSON object")}
		}
		return []json.RawMessage{json.RawMessage(trimmed)}, nil
	default:
		return nil, &NormalizationError{Field: "body", Err: errors.New("expected array or object, got " + describe(trimmed))}
	}
}

// unwrapEnvelope reports whether obj is a {"data": ...} wrapper rather than a
// country record. A record always carries a name, a wrapper never does.
func unwrapEnvelope(obj []byte) (json.RawMessage, bool, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(obj, &fields); err != nil {
		return nil, false, &NormalizationError{Field: "body", Err: err}
	}
	data, hasData := fields["data"]
	if _, hasName := fields["name"]; !hasData || hasName {
		return nil, false, nil
	}
	return data, true, nil
}
