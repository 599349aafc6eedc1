package providers

import (
	"errors"
	"fmt"
)

// ErrFetcherUnavailable is returned when a decorator has nothing to delegate to.
var ErrFetcherUnavailable = errors.New("providers: fetcher unavailable")

// FixtureMissError reports a URL the fixture fetcher has no canned body for.
type FixtureMissError struct {
	Path string
}

func (e *FixtureMissError) Error() string {
	return fmt.Sprintf("fixture: no data for %s", e.Path)
}

// AsFixtureMissError attempts to unwrap an error into a FixtureMissError.
func AsFixtureMissError(err error) (*FixtureMissError, bool) {
	var fErr *FixtureMissError
	if errors.As(err, &fErr) {
		return fErr, true
	}
	return nil, false
}
