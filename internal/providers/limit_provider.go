package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"country-directory-service/internal/metrics"
)

// rateLimitedFetcher wraps a Fetcher and enforces an upstream request rate.
type rateLimitedFetcher struct {
	next     Fetcher
	limiter  *rate.Limiter
	upstream string
	logger   *slog.Logger
	recorder *metrics.Recorder
	now      func() time.Time
}

// NewRateLimitedFetcher returns a Fetcher allowing perSecond requests with the given burst.
// Calls block until a token is available or ctx is done. A non-positive rate disables limiting.
func NewRateLimitedFetcher(next Fetcher, perSecond float64, burst int, upstream string, logger *slog.Logger, recorder *metrics.Recorder) Fetcher {
	if perSecond <= 0 {
		if next == nil {
			return FetcherFunc(func(context.Context, string) ([]byte, error) { return nil, ErrFetcherUnavailable })
		}
		return next
	}
	if burst <= 0 {
		burst = 1
	}
	return &rateLimitedFetcher{
		next:     next,
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
		upstream: upstream,
		logger:   logger,
		recorder: recorder,
		now:      time.Now,
	}
}

func (f *rateLimitedFetcher) FetchJSON(ctx context.Context, url string) ([]byte, error) {
	if f == nil || f.next == nil {
		return nil, ErrFetcherUnavailable
	}

	start := f.now()
	if err := f.limiter.Wait(ctx); err != nil {
		logWithUpstream(ctx, f.logger, slog.LevelWarn, f.upstream, "rate-limited fetch canceled", "error", err)
		return nil, err
	}
	if waited := f.now().Sub(start); waited > time.Millisecond {
		f.recorder.RecordThrottle(f.upstream, waited)
		logWithUpstream(ctx, f.logger, slog.LevelDebug, f.upstream, "rate-limited fetch delayed", "wait_ms", waited.Milliseconds())
	}
	return f.next.FetchJSON(ctx, url)
}
