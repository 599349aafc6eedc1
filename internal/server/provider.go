package server

import (
	"log/slog"

	"country-directory-service/internal/config"
	"country-directory-service/internal/logging"
	"country-directory-service/internal/metrics"
	"country-directory-service/internal/providers"
	"country-directory-service/internal/providers/fixture"
	"country-directory-service/internal/providers/restcountries"
	"country-directory-service/internal/transport"
)

// selectFetcher returns the base fetcher for cfg.Provider. Unknown providers and
// a fixture that fails to load fall back to the live client.
func selectFetcher(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) providers.Fetcher {
	switch cfg.Provider {
	case config.ProviderFixture:
		f, err := fixture.New()
		if err == nil {
			return f
		}
		logging.Error(logger, "fixture data failed to load, using live upstream", err)
	case config.ProviderRestCountries, "":
	default:
		logging.Warn(logger, "unknown provider, using live upstream", slog.String("provider", cfg.Provider))
	}
	return newTransportClient(cfg.Upstream, logger, recorder)
}

func newTransportClient(cfg config.UpstreamConfig, logger *slog.Logger, recorder *metrics.Recorder) *transport.Client {
	return transport.NewClient(transportConfig(cfg, logger, recorder))
}

func transportConfig(cfg config.UpstreamConfig, logger *slog.Logger, recorder *metrics.Recorder) transport.Config {
	policy, err := transport.BackOffPolicy(cfg.BackOff, cfg.RetryDelay, cfg.MaxRetryDelay)
	if err != nil {
		logging.Warn(logger, "unknown backoff policy, using constant delay", slog.String("backoff", cfg.BackOff))
	}
	return transport.Config{
		Name:           restcountries.UpstreamName,
		MaxAttempts:    cfg.MaxAttempts,
		RetryDelay:     cfg.RetryDelay,
		BackOff:        policy,
		AttemptTimeout: cfg.AttemptTimeout,
		Logger:         logger,
		Recorder:       recorder,
	}
}

// endpointsFor builds upstream URLs from the configured layout and base.
func endpointsFor(cfg config.UpstreamConfig) restcountries.Endpoints {
	return restcountries.NewEndpoints(cfg.BaseURL, restcountries.ParseLayout(cfg.Layout), cfg.Fields...)
}
