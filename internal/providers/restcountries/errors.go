package restcountries

import (
	"errors"
	"fmt"
)

// ErrEmptyResult is returned by DecodeOne when the upstream matched nothing.
var ErrEmptyResult = errors.New("restcountries: empty result")

// NormalizationError reports a raw payload that could not be mapped to a Country.
// Field names the offending input field ("name", "body", "record", ...).
type NormalizationError struct {
	Field string
	Err   error
}

func (e *NormalizationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("restcountries: cannot normalize %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("restcountries: missing or invalid %s", e.Field)
}

func (e *NormalizationError) Unwrap() error {
	return e.Err
}

// AsNormalizationError attempts to unwrap an error into a NormalizationError.
func AsNormalizationError(err error) (*NormalizationError, bool) {
	var nErr *NormalizationError
	if errors.As(err, &nErr) {
		return nErr, true
	}
	return nil, false
}

// fieldError is returned by the tolerant field decoders so the caller can
// attribute a decode failure to the right field.
type fieldError struct {
	field string
	err   error
}

func (e *fieldError) Error() string {
	return e.field + ": " + e.err.Error()
}

func (e *fieldError) Unwrap() error {
	return e.err
}
