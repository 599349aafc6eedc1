package providers

import "context"

// Fetcher retrieves the raw JSON body for a fully qualified upstream URL.
// transport.Client is the production implementation; decorators in this
// package wrap it.
type Fetcher interface {
	FetchJSON(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

// FetchJSON calls f(ctx, url).
func (f FetcherFunc) FetchJSON(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}
