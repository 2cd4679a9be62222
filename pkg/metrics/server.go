package metrics

import (
	"strconv"
	"time"
)

// Server is the set of metrics recorded by the HTTP API.
type Server struct {
	Registry *Registry

	// RequestsTotal counts API requests. Labels: method, path, status.
	// path is the matched route pattern, not the raw URL.
	RequestsTotal *Counter

	// RequestDuration tracks request latency in seconds. Labels: method, path.
	RequestDuration *Histogram

	// OrdersCreatedTotal counts orders accepted by POST /api/order.
	OrdersCreatedTotal *Counter

	// WebhookTestsTotal counts test deliveries. Labels: result (ok, error).
	WebhookTestsTotal *Counter
}

// NewServer registers the API metrics on a fresh Registry.
func NewServer() *Server {
	reg := NewRegistry()
	return &Server{
		Registry:           reg,
		RequestsTotal:      reg.NewCounter("printmock_requests_total", "Total number of API requests.", "method", "path", "status"),
		RequestDuration:    reg.NewHistogram("printmock_request_duration_seconds", "API request duration in seconds.", DefaultBuckets, "method", "path"),
		OrdersCreatedTotal: reg.NewCounter("printmock_orders_created_total", "Total number of orders created."),
		WebhookTestsTotal:  reg.NewCounter("printmock_webhook_tests_total", "Total number of webhook test deliveries.", "result"),
	}
}

// ObserveRequest records one completed request.
func (s *Server) ObserveRequest(method, path string, status int, d time.Duration) {
	if path == "" {
		path = "unmatched"
	}
	if vec, err := s.RequestsTotal.WithLabels(method, path, strconv.Itoa(status)); err == nil {
		_ = vec.Inc()
	}
	if vec, err := s.RequestDuration.WithLabels(method, path); err == nil {
		vec.Observe(d.Seconds())
	}
}

// ObserveWebhookTest records a test delivery outcome.
func (s *Server) ObserveWebhookTest(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	if vec, err := s.WebhookTestsTotal.WithLabels(result); err == nil {
		_ = vec.Inc()
	}
}

// TrackOrders registers a gauge of orders per status sampled from counts.
func (s *Server) TrackOrders(counts func() map[string]int) {
	s.Registry.NewGaugeFunc("printmock_orders", "Current number of orders by status.", func() []Sample {
		c := counts()
		samples := make([]Sample, 0, len(c))
		for status, n := range c {
			samples = append(samples, Sample{Labels: map[string]string{"status": status}, Value: float64(n)})
		}
		return samples
	})
}

// TrackCount registers an unlabelled gauge sampled from count.
func (s *Server) TrackCount(name, help string, count func() int) {
	s.Registry.NewGaugeFunc(name, help, func() []Sample {
		return []Sample{{Value: float64(count())}}
	})
}
