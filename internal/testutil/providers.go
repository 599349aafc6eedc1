package testutil

import (
	"context"
	"fmt"
	"sync"

	"country-directory-service/internal/providers"
)

var _ providers.Fetcher = (*StubFetcher)(nil)

// StubFetcher serves canned bodies keyed by URL and records every call.
// URLs present in Errors fail with that error. Unknown URLs also fail.
type StubFetcher struct {
	Bodies map[string]string
	Errors map[string]error
	Notify chan string

	mu    sync.Mutex
	calls []string
}

func (s *StubFetcher) FetchJSON(ctx context.Context, url string) ([]byte, error) {
	s.mu.Lock()
	s.calls = append(s.calls, url)
	s.mu.Unlock()
	if s.Notify != nil {
		select {
		case s.Notify <- url:
		default:
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := s.Errors[url]; ok {
		return nil, err
	}
	body, ok := s.Bodies[url]
	if !ok {
		return nil, fmt.Errorf("stub fetcher: no body for %s", url)
	}
	return []byte(body), nil
}

// Calls returns the URLs fetched so far in order.
func (s *StubFetcher) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// ErrFetcher always returns Err.
type ErrFetcher struct {
	Err error
}

func (f ErrFetcher) FetchJSON(context.Context, string) ([]byte, error) {
	return nil, f.Err
}
