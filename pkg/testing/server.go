package testing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/getmockd/printmock/internal/id"
	"github.com/getmockd/printmock/pkg/api"
	"github.com/getmockd/printmock/pkg/requestlog"
	"github.com/getmockd/printmock/pkg/store"
)

// MockServer is a test helper for running printmock in tests.
type MockServer struct {
	t       testing.TB
	store   *store.Store
	server  *api.Server
	httpSrv *httptest.Server
	started bool
	baseURL string
}

// New creates a mock server for testing. Options are applied after the
// test defaults. The server is stopped automatically when the test ends.
func New(t testing.TB, opts ...api.Option) *MockServer {
	t.Helper()
	opts = append([]api.Option{
		api.WithSlicerDelay(0, 0),
		api.WithIDStrategy(id.StrategySequential),
	}, opts...)
	m := &MockServer{t: t, store: store.New()}
	m.server = api.New(m.store, opts...)
	t.Cleanup(m.Stop)
	return m
}

// Start starts the mock server and returns its base URL. Calling Start on
// a running server returns the same URL.
func (m *MockServer) Start() string {
	m.t.Helper()
	if m.started {
		return m.baseURL
	}
	m.httpSrv = httptest.NewServer(m.server.Handler())
	m.baseURL = m.httpSrv.URL
	m.started = true
	return m.baseURL
}

// Stop stops the mock server. Seeded state stays readable.
func (m *MockServer) Stop() {
	if m.httpSrv != nil {
		m.httpSrv.Close()
		m.httpSrv = nil
	}
	m.started = false
}

// URL returns the base URL of the mock server, or "" before Start.
func (m *MockServer) URL() string {
	return m.baseURL
}

// Client returns an http.Client configured to work with the mock server.
func (m *MockServer) Client() *http.Client {
	if m.httpSrv != nil {
		return m.httpSrv.Client()
	}
	return http.DefaultClient
}

// Reset clears orders, webhooks and the request ledger.
func (m *MockServer) Reset() {
	m.store.Reset()
}

// Store returns the backing store for advanced use cases.
func (m *MockServer) Store() *store.Store {
	return m.store
}

// Server returns the underlying api.Server.
func (m *MockServer) Server() *api.Server {
	return m.server
}

// Requests returns the recorded API requests, newest first.
func (m *MockServer) Requests() []RequestLog {
	entries := m.store.Ledger().List(nil)
	result := make([]RequestLog, len(entries))
	for i, e := range entries {
		result[i] = fromEntry(e)
	}
	return result
}

// WaitForRequests blocks until at least n requests matching method and
// path were recorded or timeout elapses. It reports whether they arrived.
func (m *MockServer) WaitForRequests(ctx context.Context, method, path string, n int, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		if m.countCalls(method, path) >= n {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}
	}
}

// countCalls counts recorded requests matching method and path.
func (m *MockServer) countCalls(method, path string) int {
	count := 0
	for _, e := range m.store.Ledger().List(&requestlog.Filter{Method: method}) {
		if matchesPath(e.Path, path) {
			count++
		}
	}
	return count
}

// matchesPath checks if a request path matches the expected path pattern.
// Supports exact matching and path parameters ({id} patterns).
func matchesPath(actual, expected string) bool {
	if actual == expected {
		return true
	}

	actualParts := strings.Split(actual, "/")
	expectedParts := strings.Split(expected, "/")
	if len(actualParts) != len(expectedParts) {
		return false
	}

	for i, exp := range expectedParts {
		if strings.HasPrefix(exp, "{") && strings.HasSuffix(exp, "}") {
			continue
		}
		if exp != actualParts[i] {
			return false
		}
	}
	return true
}
