package transport

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

func resolveMaxAttempts(n int) int {
	if n <= 0 {
		return defaultMaxAttempts
	}
	return n
}

func resolveBackOff(factory func() backoff.BackOff, delay time.Duration) func() backoff.BackOff {
	if factory != nil {
		return factory
	}
	if delay <= 0 {
		delay = defaultRetryDelay
	}
	return func() backoff.BackOff {
		return backoff.NewConstantBackOff(delay)
	}
}

// Names accepted by BackOffPolicy.
const (
	PolicyConstant    = "constant"
	PolicyExponential = "exponential"
)

// BackOffPolicy maps a configured policy name to a Config.BackOff factory.
// Constant (or empty) returns nil so the client falls back to a fixed
// RetryDelay pause.
func BackOffPolicy(name string, delay, maxDelay time.Duration) (func() backoff.BackOff, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyConstant:
		return nil, nil
	case PolicyExponential:
		return ExponentialBackOff(resolveDuration(delay, defaultRetryDelay), maxDelay), nil
	default:
		return nil, fmt.Errorf("transport: unknown backoff policy %q", name)
	}
}

// ExponentialBackOff returns a factory for a jittered exponential policy
// starting at initial and capped at maxInterval between attempts. A cap below
// initial is raised to initial.
func ExponentialBackOff(initial, maxInterval time.Duration) func() backoff.BackOff {
	if maxInterval < initial {
		maxInterval = initial
	}
	return func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = initial
		b.MaxInterval = maxInterval
		b.MaxElapsedTime = 0
		return b
	}
}

func resolveDuration(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

func resolveMaxBody(n int64) int64 {
	if n <= 0 {
		return defaultMaxBodyBytes
	}
	return n
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
