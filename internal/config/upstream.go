package config

import (
	"strings"
	"time"
)

// UpstreamConfig controls how we talk to the country data API.
type UpstreamConfig struct {
	// BaseURL overrides the layout's public default when set.
	BaseURL string `validate:"omitempty,url"`
	Layout  string `validate:"oneof=restcountries wrapped"`
	// Fields restricts the list endpoint payload (restcountries ?fields=).
	Fields         []string
	MaxAttempts    int           `validate:"min=1,max=10"`
	RetryDelay     time.Duration `validate:"gte=0"`
	AttemptTimeout time.Duration `validate:"gt=0"`
	BackOff        string        `validate:"oneof=constant exponential"`
	// MaxRetryDelay caps the exponential policy; ignored for constant.
	MaxRetryDelay time.Duration `validate:"gte=0"`
	// RateLimit is requests per second; 0 disables limiting.
	RateLimit float64 `validate:"gte=0"`
	RateBurst int     `validate:"min=1"`
}

func loadUpstream() UpstreamConfig {
	return UpstreamConfig{
		BaseURL:        envOrDefault(envUpstreamBaseURL, ""),
		Layout:         envOrDefault(envUpstreamLayout, defaultLayout),
		Fields:         listEnvOrDefault(envUpstreamFields, ""),
		MaxAttempts:    intEnvOrDefault(envMaxAttempts, defaultMaxAttempts),
		RetryDelay:     durationEnvOrDefault(envRetryDelay, defaultRetryDelay),
		AttemptTimeout: durationEnvOrDefault(envAttemptTimeout, defaultAttemptTimeout),
		RateLimit:      floatEnvOrDefault(envRateLimit, 0),
		RateBurst:      intEnvOrDefault(envRateBurst, defaultRateBurst),
		BackOff:        strings.ToLower(envOrDefault(envBackOff, defaultBackOff)),
		MaxRetryDelay:  durationEnvOrDefault(envMaxRetryDelay, defaultMaxRetryDelay),
	}
}
