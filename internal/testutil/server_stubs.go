package testutil

import (
	"context"
	"net/http"
	"sync/atomic"
)

// FakeHTTPServer satisfies the server package's httpServer seam. ListenAndServe
// returns ListenErr, or http.ErrServerClosed when unset, so Run treats it as a
// clean exit.
type FakeHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	// Hold, when set, makes Shutdown wait until it is closed or ctx expires.
	Hold chan struct{}

	listenCalls   atomic.Int32
	shutdownCalls atomic.Int32
}

func (f *FakeHTTPServer) ListenAndServe() error {
	f.listenCalls.Add(1)
	if f.ListenErr != nil {
		return f.ListenErr
	}
	return http.ErrServerClosed
}

func (f *FakeHTTPServer) Shutdown(ctx context.Context) error {
	f.shutdownCalls.Add(1)
	if f.Hold != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-f.Hold:
		}
	}
	return f.ShutdownErr
}

func (f *FakeHTTPServer) Addr() string {
	if f.AddrVal == "" {
		return ":0"
	}
	return f.AddrVal
}

func (f *FakeHTTPServer) Handler() http.Handler {
	if f.HandlerVal == nil {
		return http.NotFoundHandler()
	}
	return f.HandlerVal
}

// ListenCalls reports how many times ListenAndServe ran.
func (f *FakeHTTPServer) ListenCalls() int { return int(f.listenCalls.Load()) }

// ShutdownCalls reports how many times Shutdown ran.
func (f *FakeHTTPServer) ShutdownCalls() int { return int(f.shutdownCalls.Load()) }
