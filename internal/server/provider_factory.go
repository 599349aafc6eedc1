package server

import (
	"log/slog"

	"country-directory-service/internal/config"
	"country-directory-service/internal/metrics"
	"country-directory-service/internal/providers"
)

// fetcherFactory assembles the upstream fetcher with shared wrappers (rate limit).
// Retries live in the transport client.
type fetcherFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newFetcherFactory(logger *slog.Logger, metrics *metrics.Recorder) fetcherFactory {
	return fetcherFactory{logger: logger, metrics: metrics}
}

func (f fetcherFactory) build(cfg config.Config) providers.Fetcher {
	return f.wrap(cfg, selectFetcher(cfg, f.logger, f.metrics))
}

func (f fetcherFactory) wrap(cfg config.Config, base providers.Fetcher) providers.Fetcher {
	return providers.NewRateLimitedFetcher(base, cfg.Upstream.RateLimit, cfg.Upstream.RateBurst, upstreamName(cfg.Provider, base), f.logger, f.metrics)
}
