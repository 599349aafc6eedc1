package countries

import (
	"errors"
	"fmt"

	"country-directory-service/internal/providers"
	"country-directory-service/internal/providers/restcountries"
	"country-directory-service/internal/transport"
)

// Query failure reasons.
const (
	ReasonUpstream        = "upstream"
	ReasonNormalization   = "normalization"
	ReasonNotFound        = "not-found"
	ReasonInvalidArgument = "invalid-argument"
)

// ErrNotFound matches any QueryError with Reason not-found.
var ErrNotFound = errors.New("country not found")

// ErrInvalidArgument matches any QueryError with Reason invalid-argument.
var ErrInvalidArgument = errors.New("invalid argument")

// QueryError is the single error type returned by Service operations.
type QueryError struct {
	Op     string
	Reason string
	Cause  error
}

func (e *QueryError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Cause)
}

func (e *QueryError) Unwrap() error {
	return e.Cause
}

func (e *QueryError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Reason == ReasonNotFound
	case ErrInvalidArgument:
		return e.Reason == ReasonInvalidArgument
	}
	return false
}

// AsQueryError attempts to unwrap an error into a QueryError.
func AsQueryError(err error) (*QueryError, bool) {
	var qErr *QueryError
	if errors.As(err, &qErr) {
		return qErr, true
	}
	return nil, false
}

// classify maps a fetch or decode failure onto a query reason.
func classify(err error) string {
	switch {
	case errors.Is(err, restcountries.ErrEmptyResult), transport.IsNotFound(err):
		return ReasonNotFound
	}
	if _, ok := providers.AsFixtureMissError(err); ok {
		return ReasonNotFound
	}
	if _, ok := restcountries.AsNormalizationError(err); ok {
		return ReasonNormalization
	}
	return ReasonUpstream
}
