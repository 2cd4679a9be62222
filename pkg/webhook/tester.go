// Package webhook sends the fixed test payload to a subscriber endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/getmockd/printmock/pkg/logging"
)

// Defaults for a Tester.
const (
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "Slant3D-Mock-API/1.0"
)

// Payload is the body POSTed to a subscriber.
type Payload struct {
	OrderID        string `json:"orderId"`
	Status         string `json:"status"`
	TrackingNumber string `json:"trackingNumber"`
	CarrierCode    string `json:"carrierCode"`
}

// TestPayload is the fixed payload used by Tester.Send.
var TestPayload = Payload{
	OrderID:        "1234567890",
	Status:         "SHIPPED",
	TrackingNumber: "ABCDEF123456",
	CarrierCode:    "usps",
}

// Tester delivers the test payload with a bounded timeout.
type Tester struct {
	httpClient *http.Client
	userAgent  string
	log        *slog.Logger
}

// Option configures a Tester.
type Option func(*Tester)

// WithTimeout bounds each delivery.
func WithTimeout(d time.Duration) Option {
	return func(t *Tester) { t.httpClient.Timeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(t *Tester) { t.userAgent = ua }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Tester) { t.httpClient = c }
}

// WithLogger sets the operational logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tester) { t.log = l }
}

// NewTester creates a Tester.
func NewTester(opts ...Option) *Tester {
	t := &Tester{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  DefaultUserAgent,
		log:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Send POSTs TestPayload to endpoint and returns the subscriber's status
// code. Any HTTP response counts as delivered; only transport failures
// return an error.
func (t *Tester) Send(ctx context.Context, endpoint string) (int, error) {
	body, err := json.Marshal(TestPayload)
	if err != nil {
		return 0, fmt.Errorf("marshal test payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", t.userAgent)

	t.log.Debug("sending webhook test payload", "endpoint", endpoint)
	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.log.Warn("webhook test delivery failed", "endpoint", endpoint, "error", err)
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	t.log.Info("webhook test delivered", "endpoint", endpoint, "status", resp.StatusCode)
	return resp.StatusCode, nil
}
