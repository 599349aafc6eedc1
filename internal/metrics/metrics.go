package metrics

import (
	"strconv"
	"sync"
	"time"
)

type upstreamStats struct {
	calls           int
	errors          int
	throttled       int
	lastThrottle    time.Duration
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about upstream calls and
// forwards them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu      sync.Mutex
	stats   map[string]*upstreamStats
	queries map[string]int
	http    map[string]int
	otel    *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:   make(map[string]*upstreamStats),
		queries: make(map[string]int),
		http:    make(map[string]int),
		otel:    otel,
	}
}

// RecordUpstreamAttempt counts one transport attempt and stores its latency.
func (r *Recorder) RecordUpstreamAttempt(upstream string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(upstream)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordUpstreamAttempt(upstream, duration, err)
	}
}

// RecordThrottle tracks time spent waiting on the upstream rate limiter.
func (r *Recorder) RecordThrottle(upstream string, wait time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(upstream)
	stats.throttled++
	if wait > 0 {
		stats.lastThrottle = wait
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordThrottle(upstream, wait)
	}
}

// RecordQuery counts a façade operation by outcome ("ok" or an error reason).
func (r *Recorder) RecordQuery(operation, outcome string, duration time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.queries[operation+"/"+outcome]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordQuery(operation, outcome, duration)
	}
}

// Queries returns how many times operation finished with outcome.
func (r *Recorder) Queries(operation, outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.queries[operation+"/"+outcome]
}

// UpstreamCalls returns the total attempts recorded for an upstream.
func (r *Recorder) UpstreamCalls(upstream string) int {
	return r.Snapshot(upstream).Calls
}

// UpstreamErrors returns the total failed attempts recorded for an upstream.
func (r *Recorder) UpstreamErrors(upstream string) int {
	return r.Snapshot(upstream).Errors
}

// Snapshot is a point-in-time copy of the stats for one upstream.
type Snapshot struct {
	Calls           int
	Errors          int
	Throttled       int
	LastThrottle    time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(upstream string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[upstream]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		Throttled:       stats.throttled,
		LastThrottle:    stats.lastThrottle,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.http[httpKey(method, path, status)]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordHTTPRequest(method, path, status, duration)
	}
}

// HTTPRequests returns how many requests matched method, route and status.
func (r *Recorder) HTTPRequests(method, path string, status int) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.http[httpKey(method, path, status)]
}

func httpKey(method, path string, status int) string {
	return method + " " + path + " " + strconv.Itoa(status)
}

func (r *Recorder) ensureStatsLocked(upstream string) *upstreamStats {
	stats, ok := r.stats[upstream]
	if !ok {
		stats = &upstreamStats{}
		r.stats[upstream] = stats
	}
	return stats
}
