package config

import "time"

const (
	envPort            = "PORT"
	envProvider        = "PROVIDER"
	envUpstreamBaseURL = "UPSTREAM_BASE_URL"
	envUpstreamLayout  = "UPSTREAM_LAYOUT"
	envUpstreamFields  = "UPSTREAM_FIELDS"
	envMaxAttempts     = "UPSTREAM_MAX_ATTEMPTS"
	envRetryDelay      = "UPSTREAM_RETRY_DELAY"
	envAttemptTimeout  = "UPSTREAM_ATTEMPT_TIMEOUT"
	envRateLimit       = "UPSTREAM_RATE_LIMIT"
	envRateBurst       = "UPSTREAM_RATE_BURST"
	envBackOff         = "UPSTREAM_BACKOFF"
	envMaxRetryDelay   = "UPSTREAM_MAX_RETRY_DELAY"
	envCORSOrigins     = "CORS_ALLOWED_ORIGINS"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"

	// ProviderRestCountries fetches from the live upstream.
	ProviderRestCountries = "restcountries"
	// ProviderFixture serves embedded sample data.
	ProviderFixture = "fixture"

	// LayoutRestCountries and LayoutWrapped mirror restcountries.Layout values.
	LayoutRestCountries = "restcountries"
	LayoutWrapped       = "wrapped"

	// BackOffConstant waits RetryDelay between attempts; BackOffExponential
	// starts at RetryDelay and grows up to MaxRetryDelay.
	BackOffConstant    = "constant"
	BackOffExponential = "exponential"

	defaultPort           = "4000"
	defaultProvider       = ProviderRestCountries
	defaultLayout         = LayoutRestCountries
	defaultMaxAttempts    = 3
	defaultRetryDelay     = time.Second
	defaultMaxRetryDelay  = 10 * time.Second
	defaultBackOff        = BackOffConstant
	defaultAttemptTimeout = 10 * time.Second
	defaultRateBurst      = 1
	defaultCORSOrigins    = "*"
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultMetricsPort    = "9090"
	defaultServiceName    = "country-directory-service"
)
