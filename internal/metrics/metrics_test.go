package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRecorderTracksUpstreamAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordUpstreamAttempt("restcountries", 10*time.Millisecond, nil)
	rec.RecordUpstreamAttempt("restcountries", 15*time.Millisecond, errors.New("boom"))

	if got := rec.UpstreamCalls("restcountries"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.UpstreamErrors("restcountries"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}

	snap := rec.Snapshot("restcountries")
	if snap.LastCallLatency != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", snap.LastCallLatency)
	}
}

func TestRecorderTracksThrottle(t *testing.T) {
	rec := NewRecorder()
	rec.RecordThrottle("restcountries", 2*time.Second)
	rec.RecordThrottle("restcountries", 0)

	snap := rec.Snapshot("restcountries")
	if snap.Throttled != 2 {
		t.Fatalf("expected 2 throttle events, got %d", snap.Throttled)
	}
	if snap.LastThrottle != 2*time.Second {
		t.Fatalf("expected last throttle wait 2s, got %s", snap.LastThrottle)
	}
}

func TestRecorderTracksQueries(t *testing.T) {
	rec := NewRecorder()
	rec.RecordQuery("all", "ok", time.Millisecond)
	rec.RecordQuery("all", "ok", time.Millisecond)
	rec.RecordQuery("by_code", "not-found", time.Millisecond)

	if got := rec.Queries("all", "ok"); got != 2 {
		t.Fatalf("expected 2 ok queries, got %d", got)
	}
	if got := rec.Queries("by_code", "not-found"); got != 1 {
		t.Fatalf("expected 1 not-found query, got %d", got)
	}
}

func TestRecorderCountsHTTPRequests(t *testing.T) {
	rec := NewRecorder()
	rec.RecordHTTPRequest("GET", "/countries/{code}", 200, time.Millisecond)
	rec.RecordHTTPRequest("GET", "/countries/{code}", 200, time.Millisecond)
	rec.RecordHTTPRequest("GET", "/countries/{code}", 404, time.Millisecond)

	if got := rec.HTTPRequests("GET", "/countries/{code}", 200); got != 2 {
		t.Fatalf("expected 2 ok requests, got %d", got)
	}
	if got := rec.HTTPRequests("GET", "/countries/{code}", 404); got != 1 {
		t.Fatalf("expected 1 not-found request, got %d", got)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordUpstreamAttempt("x", time.Millisecond, nil)
	rec.RecordThrottle("x", time.Millisecond)
	rec.RecordQuery("all", "ok", time.Millisecond)
	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
	if rec.UpstreamCalls("x") != 0 || rec.Queries("all", "ok") != 0 || rec.HTTPRequests("GET", "/health", 200) != 0 {
		t.Fatalf("expected zero values from nil recorder")
	}
}

func TestRecorderConcurrentUse(t *testing.T) {
	rec := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.RecordUpstreamAttempt("restcountries", time.Millisecond, nil)
		}()
	}
	wg.Wait()
	if got := rec.UpstreamCalls("restcountries"); got != 20 {
		t.Fatalf("expected 20 calls, got %d", got)
	}
}
