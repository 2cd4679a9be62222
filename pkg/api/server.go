package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/getmockd/printmock/internal/id"
	"github.com/getmockd/printmock/pkg/logging"
	"github.com/getmockd/printmock/pkg/metrics"
	"github.com/getmockd/printmock/pkg/store"
	"github.com/getmockd/printmock/pkg/webhook"
)

// Version is reported by /health and /api.
const Version = "1.0.0"

// Default slicer delay bounds.
const (
	DefaultSlicerMinDelay = 2 * time.Second
	DefaultSlicerMaxDelay = 5 * time.Second
)

// Server serves the API for one Store.
type Server struct {
	store   *store.Store
	tester  *webhook.Tester
	metrics *metrics.Server
	log     *slog.Logger

	// orderIDs allocates IDs for POST /api/order. Nil means the store's
	// sequential counter.
	orderIDs id.Allocator

	slicerMin time.Duration
	slicerMax time.Duration

	readTimeout  time.Duration
	writeTimeout time.Duration

	cors      CORSConfig
	version   string
	startTime time.Time
	now       func() time.Time

	handler    http.Handler
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithIDStrategy selects how POST /api/order allocates order IDs.
func WithIDStrategy(strategy id.Strategy) Option {
	return func(s *Server) {
		if strategy == id.StrategySequential {
			s.orderIDs = nil
		} else {
			s.orderIDs = id.Random{}
		}
	}
}

// WithSlicerDelay bounds the simulated slicing delay.
func WithSlicerDelay(minDelay, maxDelay time.Duration) Option {
	return func(s *Server) {
		s.slicerMin = minDelay
		s.slicerMax = maxDelay
	}
}

// WithTimeouts sets the HTTP server read and write timeouts.
func WithTimeouts(read, write time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = read
		s.writeTimeout = write
	}
}

// WithWebhookTester sets the client used by POST /api/webhooks/test.
func WithWebhookTester(t *webhook.Tester) Option {
	return func(s *Server) { s.tester = t }
}

// WithMetrics sets the metrics the server records into. The gauges
// sampling the store are registered on it by New.
func WithMetrics(m *metrics.Server) Option {
	return func(s *Server) { s.metrics = m }
}

// WithCORS sets the CORS configuration.
func WithCORS(cfg CORSConfig) Option {
	return func(s *Server) { s.cors = cfg }
}

// WithVersion overrides the reported version.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a Server backed by st.
func New(st *store.Store, opts ...Option) *Server {
	s := &Server{
		store:        st,
		log:          logging.Nop(),
		orderIDs:     id.Random{},
		slicerMin:    DefaultSlicerMinDelay,
		slicerMax:    DefaultSlicerMaxDelay,
		readTimeout:  30 * time.Second,
		writeTimeout: 30 * time.Second,
		cors:         DefaultCORSConfig(),
		version:      Version,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tester == nil {
		s.tester = webhook.NewTester(webhook.WithLogger(logging.Component(s.log, "webhook")))
	}
	if s.metrics == nil {
		s.metrics = metrics.NewServer()
	}
	s.trackStore()
	s.startTime = s.now()

	mux := http.NewServeMux()
	s.registerRoutes(mux)
	s.handler = s.withMiddleware(mux)
	s.httpServer = &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
		ErrorLog:     slog.NewLogLogger(s.log.Handler(), slog.LevelWarn),
	}
	return s
}

func (s *Server) trackStore() {
	s.metrics.TrackOrders(func() map[string]int {
		stats := s.store.Stats()
		counts := make(map[string]int, len(stats.Orders.ByStatus))
		for status, n := range stats.Orders.ByStatus {
			counts[string(status)] = n
		}
		return counts
	})
	s.metrics.TrackCount("printmock_webhooks", "Current number of registered webhooks.", s.store.WebhookCount)
	s.metrics.TrackCount("printmock_request_log_entries", "Current number of request-log entries.", s.store.Ledger().Count)
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Store returns the backing store.
func (s *Server) Store() *store.Store {
	return s.store
}

// Uptime returns the time since the server was created, in whole seconds.
func (s *Server) Uptime() int {
	return int(s.now().Sub(s.startTime).Seconds())
}

// Serve accepts connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Info("serving API", "addr", ln.Addr().String())
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
