package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// Reasons carried by TransportError.
const (
	ReasonExhaustedRetries = "exhausted-retries"
	ReasonCanceled         = "canceled"
)

var (
	// ErrExhaustedRetries matches a TransportError that used its whole attempt budget.
	ErrExhaustedRetries = errors.New("transport: exhausted retries")
	// ErrBodyTooLarge is the attempt error for responses over the configured cap.
	ErrBodyTooLarge = errors.New("transport: response body too large")
)

// TransportError is the only error FetchJSON returns. LastCause holds the
// failure of the final attempt.
type TransportError struct {
	Reason    string
	Attempts  int
	URL       string
	LastCause error
}

func (e *TransportError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = ReasonExhaustedRetries
	}
	msg := fmt.Sprintf("transport: %s after %d attempt(s) fetching %s", reason, e.Attempts, e.URL)
	if e.LastCause != nil {
		msg += ": " + e.LastCause.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.LastCause
}

// Is lets errors.Is(err, ErrExhaustedRetries) match without losing the cause chain.
func (e *TransportError) Is(target error) bool {
	return target == ErrExhaustedRetries && e.Reason == ReasonExhaustedRetries
}

// StatusError describes a non-2xx upstream response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// AsTransportError attempts to unwrap an error into a TransportError.
func AsTransportError(err error) (*TransportError, bool) {
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr, true
	}
	return nil, false
}

// StatusCode returns the HTTP status of the last failed attempt, if it got a response.
func StatusCode(err error) (int, bool) {
	var sErr *StatusError
	if errors.As(err, &sErr) {
		return sErr.StatusCode, true
	}
	return 0, false
}

// IsNotFound reports whether the last attempt was answered with 404.
func IsNotFound(err error) bool {
	code, ok := StatusCode(err)
	return ok && code == http.StatusNotFound
}
