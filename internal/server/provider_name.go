package server

import (
	"fmt"
	"strings"

	"country-directory-service/internal/providers"
)

type namedFetcher interface {
	Name() string
}

// upstreamName labels logs and metrics. A fetcher's own Name wins, then the
// configured provider, then the concrete type.
func upstreamName(raw string, fetcher providers.Fetcher) string {
	if n, ok := fetcher.(namedFetcher); ok && n.Name() != "" {
		return strings.ToLower(n.Name())
	}
	if raw != "" {
		return strings.ToLower(raw)
	}
	if fetcher != nil {
		return strings.ToLower(fmt.Sprintf("%T", fetcher))
	}
	return "upstream"
}
