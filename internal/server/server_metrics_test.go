package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"country-directory-service/internal/config"
	"country-directory-service/internal/metrics"
	"country-directory-service/internal/testutil"
)

func TestNewServerHandlesMetricsSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := testConfig()
	cfg.Metrics.Enabled = true
	logger, buf := testutil.NewBufferLogger()

	srv := newServerWithFetcher(cfg, logger, nil, nil)
	if srv.metrics == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server on setup failure")
	}
	if !strings.Contains(buf.String(), "metrics setup failed") {
		t.Fatalf("expected setup failure log, got %s", buf.String())
	}
}

func TestNewServerMetricsDisabledSkipsServer(t *testing.T) {
	srv := newServerWithFetcher(testConfig(), nil, nil, nil)
	if srv.metrics == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server when disabled")
	}
}

func TestNewServerUsesInjectedRecorder(t *testing.T) {
	rec, _ := testutil.NewRecorderWithShutdown()
	cfg := testConfig()
	cfg.Metrics.Enabled = true

	srv := newServerWithFetcher(cfg, nil, &testutil.StubFetcher{}, rec)
	if srv.metrics != rec {
		t.Fatalf("expected injected recorder to be used")
	}
	if srv.metricsStop != nil {
		t.Fatalf("expected no telemetry shutdown for injected recorder")
	}
}

func TestBuildMetricsSuccessPathSetsServerAndShutdown(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return metrics.NewRecorder(), http.NewServeMux(), func(context.Context) error { return nil }, nil
	}

	rec, srv, stop := buildMetrics(config.Config{
		Metrics: config.MetricsConfig{
			Enabled: true,
			Port:    "9999",
		},
	}, nil, nil)

	if rec == nil || srv == nil || stop == nil {
		t.Fatalf("expected recorder, server, and shutdown to be set on success")
	}
	if srv.Addr() != ":9999" {
		t.Fatalf("expected metrics port, got %s", srv.Addr())
	}
}

func TestServerRecordsQueriesOnInjectedRecorder(t *testing.T) {
	rec := metrics.NewRecorder()
	srv := newServerWithFetcher(testConfig(), nil, nil, rec)

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/countries/xx", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
	if got := rec.Queries("country-by-code", "not-found"); got != 1 {
		t.Fatalf("expected not-found query recorded, got %d", got)
	}
}
