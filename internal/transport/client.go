package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"country-directory-service/internal/logging"
	"country-directory-service/internal/metrics"
)

// Config controls how the client reaches an upstream JSON API.
type Config struct {
	// Name labels logs and metrics for this upstream.
	Name       string
	HTTPClient *http.Client
	// MaxAttempts bounds the number of requests per FetchJSON call.
	MaxAttempts int
	// RetryDelay is the fixed pause between attempts when BackOff is nil.
	RetryDelay time.Duration
	// BackOff builds a fresh delay policy per call. Returning backoff.Stop ends retries early.
	BackOff        func() backoff.BackOff
	AttemptTimeout time.Duration
	MaxBodyBytes   int64
	UserAgent      string
	Logger         *slog.Logger
	Recorder       *metrics.Recorder
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues GET requests with bounded, sequential retries.
// It keeps no state between calls.
type Client struct {
	name           string
	httpClient     httpDoer
	maxAttempts    int
	newBackOff     func() backoff.BackOff
	attemptTimeout time.Duration
	maxBodyBytes   int64
	userAgent      string
	logger         *slog.Logger
	recorder       *metrics.Recorder
	sleep          func(ctx context.Context, d time.Duration) error
	now            func() time.Time
}

// NewClient constructs a transport client; zero config values fall back to defaults.
func NewClient(cfg Config) *Client {
	return &Client{
		name:           orDefault(cfg.Name, defaultName),
		httpClient:     resolveHTTPClient(cfg.HTTPClient),
		maxAttempts:    resolveMaxAttempts(cfg.MaxAttempts),
		newBackOff:     resolveBackOff(cfg.BackOff, cfg.RetryDelay),
		attemptTimeout: resolveDuration(cfg.AttemptTimeout, defaultAttemptTimeout),
		maxBodyBytes:   resolveMaxBody(cfg.MaxBodyBytes),
		userAgent:      orDefault(cfg.UserAgent, defaultUserAgent),
		logger:         cfg.Logger,
		recorder:       cfg.Recorder,
		sleep:          sleepContext,
		now:            time.Now,
	}
}

// Name returns the upstream label used in logs and metrics.
func (c *Client) Name() string {
	return c.name
}

// FetchJSON performs GET url and returns the raw body of the first 2xx response.
// Non-2xx statuses and network failures are retried; after the last attempt a
// *TransportError is returned.
func (c *Client) FetchJSON(ctx context.Context, url string) ([]byte, error) {
	policy := c.newBackOff()
	policy.Reset()

	var lastErr error
	attempt := 0
	for attempt < c.maxAttempts {
		attempt++

		body, err := c.do(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		c.logWarn(ctx, "upstream attempt failed",
			slog.Int(logging.FieldAttempt, attempt),
			slog.Int(logging.FieldMaxAttempts, c.maxAttempts),
			slog.String(logging.FieldURL, url),
			slog.Any(logging.FieldError, err),
		)

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, c.canceled(attempt, url, ctxErr)
		}
		if attempt == c.maxAttempts {
			break
		}

		delay := policy.NextBackOff()
		if delay == backoff.Stop {
			break
		}
		if err := c.sleep(ctx, delay); err != nil {
			return nil, c.canceled(attempt, url, err)
		}
	}

	c.logWarn(ctx, "upstream fetch failed",
		slog.Int("attempts", attempt),
		slog.String(logging.FieldURL, url),
		slog.Any(logging.FieldError, lastErr),
	)
	return nil, &TransportError{
		Reason:    ReasonExhaustedRetries,
		Attempts:  attempt,
		URL:       url,
		LastCause: lastErr,
	}
}

func (c *Client) do(ctx context.Context, url string) (body []byte, err error) {
	start := c.now()
	defer func() {
		c.recorder.RecordUpstreamAttempt(c.name, c.now().Sub(start), err)
	}()

	attemptCtx := ctx
	if c.attemptTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, c.attemptTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorSnippetBytes))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, ErrBodyTooLarge
	}
	return body, nil
}

func (c *Client) canceled(attempts int, url string, cause error) *TransportError {
	return &TransportError{
		Reason:    ReasonCanceled,
		Attempts:  attempts,
		URL:       url,
		LastCause: cause,
	}
}

func (c *Client) logWarn(ctx context.Context, msg string, attrs ...slog.Attr) {
	logger := logging.FromContext(ctx, c.logger)
	if logger != nil {
		logger.LogAttrs(ctx, slog.LevelWarn, msg, append(attrs, slog.String(logging.FieldUpstream, c.name))...)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
