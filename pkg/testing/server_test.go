package testing

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	stdtesting "testing"
	"time"

	"github.com/getmockd/printmock/pkg/domain"
)

func post(t *stdtesting.T, m *MockServer, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req, err := http.NewRequest(http.MethodPost, m.URL()+path, bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", "sk_sdk")
	resp, err := m.Client().Do(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestNew(t *stdtesting.T) {
	mock := New(t)
	if mock == nil {
		t.Fatal("New() returned nil")
	}
	if mock.URL() != "" {
		t.Errorf("URL() before Start: expected empty, got %s", mock.URL())
	}
}

func TestStartAndStop(t *stdtesting.T) {
	mock := New(t)

	url := mock.Start()
	if !strings.HasPrefix(url, "http://") {
		t.Errorf("Expected URL to start with http://, got %s", url)
	}
	if again := mock.Start(); again != url {
		t.Errorf("second Start() returned %s, want %s", again, url)
	}

	resp, err := http.Get(url + "/health")
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	mock.Stop()
	if _, err := http.Get(url + "/health"); err == nil {
		t.Error("expected request to a stopped server to fail")
	}
}

func TestSeedOrderAndTrack(t *stdtesting.T) {
	mock := New(t)
	mock.Order("1000123").
		WithStatus(domain.StatusShipped).
		WithTracking("1Z999AA10123456784").
		WithPrices(10, 5.62).
		Create()
	url := mock.Start()

	req, _ := http.NewRequest(http.MethodGet, url+"/api/order/1000123/get-tracking", nil)
	req.Header.Set("api-key", "sk_sdk")
	resp, err := mock.Client().Do(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Status          string   `json:"status"`
		TrackingNumbers []string `json:"trackingNumbers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "shipped" || len(body.TrackingNumbers) != 1 {
		t.Errorf("unexpected tracking response: %+v", body)
	}

	mock.AssertCalled(t, http.MethodGet, "/api/order/{id}/get-tracking")
	last := mock.LastRequest(t, http.MethodGet, "/api/order/{id}/get-tracking")
	last.AssertStatus(t, http.StatusOK)
	last.AssertAPIKey(t, "sk_sdk")
	last.AssertJSONResponse(t, `{"status":"shipped","trackingNumbers":["1Z999AA10123456784"]}`)
}

func TestOrderBuilder_SequentialID(t *stdtesting.T) {
	mock := New(t)
	first := mock.Order("").Create()
	second := mock.Order("").WithOrderNumber("PO-7").Create()

	if first.OrderID != "1000000" || second.OrderID != "1000001" {
		t.Errorf("unexpected IDs %s, %s", first.OrderID, second.OrderID)
	}
	if second.OrderNumber != "PO-7" {
		t.Errorf("order number: got %s", second.OrderNumber)
	}
	mock.AssertOrderCount(t, 2)
	mock.AssertOrderStatus(t, "1000000", domain.StatusPending)
}

func TestCancelFlow(t *stdtesting.T) {
	mock := New(t)
	order := mock.Order("").Create()
	url := mock.Start()

	req, _ := http.NewRequest(http.MethodDelete, url+"/api/order/"+order.OrderID, nil)
	req.Header.Set("api-key", "sk_sdk")
	resp, err := mock.Client().Do(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	resp.Body.Close()

	mock.AssertOrderStatus(t, order.OrderID, domain.StatusCancelled)
	mock.AssertCalledTimes(t, http.MethodDelete, "/api/order/{id}", 1)
	mock.AssertNotCalled(t, http.MethodPost, "/api/order")
}

func TestWebhookSubscription(t *stdtesting.T) {
	mock := New(t)
	mock.Start()

	resp := post(t, mock, "/api/customer/subscribeWebhook", map[string]string{"endPoint": "https://hooks.example.com/a"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	mock.AssertWebhookRegistered(t, "https://hooks.example.com/a")
	mock.LastRequest(t, http.MethodPost, "/api/customer/subscribeWebhook").
		AssertJSONBody(t, map[string]string{"endPoint": "https://hooks.example.com/a"})

	mock.Webhook("https://hooks.example.com/b").WithAPIKey("sk_other").Register()
	resp = post(t, mock, "/api/customer/subscribeWebhook", map[string]string{"endPoint": "https://hooks.example.com/b"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("duplicate subscription: expected 400, got %d", resp.StatusCode)
	}
}

func TestRequestsNewestFirst(t *stdtesting.T) {
	mock := New(t)
	mock.Start()

	post(t, mock, "/api/order/estimate", []any{})
	post(t, mock, "/api/slicer", map[string]string{"fileURL": "https://files.example.com/a.stl"})

	reqs := mock.Requests()
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(reqs))
	}
	if reqs[0].Path != "/api/slicer" || reqs[1].Path != "/api/order/estimate" {
		t.Errorf("unexpected order: %s, %s", reqs[0].Path, reqs[1].Path)
	}
	reqs[1].AssertStatus(t, http.StatusBadRequest)
}

func TestReset(t *stdtesting.T) {
	mock := New(t)
	mock.Order("").Create()
	mock.Webhook("https://hooks.example.com/a").Register()
	mock.Start()
	post(t, mock, "/api/order/estimate", []any{})

	mock.Reset()

	mock.AssertOrderCount(t, 0)
	if len(mock.Requests()) != 0 {
		t.Errorf("expected empty ledger after Reset")
	}
	if mock.Order("").Create().OrderID != "1000000" {
		t.Error("Reset should rewind the order counter")
	}
}

func TestWaitForRequests(t *stdtesting.T) {
	mock := New(t)
	mock.Start()

	go func() {
		time.Sleep(20 * time.Millisecond)
		resp, err := http.Get(mock.URL() + "/api/filament")
		if err == nil {
			resp.Body.Close()
		}
	}()

	if !mock.WaitForRequests(context.Background(), http.MethodGet, "/api/filament", 1, 2*time.Second) {
		t.Fatal("request never arrived")
	}
	if mock.WaitForRequests(context.Background(), http.MethodGet, "/api/webhooks", 1, 30*time.Millisecond) {
		t.Error("unexpected request to /api/webhooks")
	}
}

func TestMatchesPath(t *stdtesting.T) {
	tests := []struct {
		actual, expected string
		want             bool
	}{
		{"/api/order", "/api/order", true},
		{"/api/order/123", "/api/order/{id}", true},
		{"/api/order/123/get-tracking", "/api/order/{id}/get-tracking", true},
		{"/api/order/123/get-tracking", "/api/order/{id}", false},
		{"/api/webhooks", "/api/order", false},
	}
	for _, tt := range tests {
		if got := matchesPath(tt.actual, tt.expected); got != tt.want {
			t.Errorf("matchesPath(%q, %q) = %v, want %v", tt.actual, tt.expected, got, tt.want)
		}
	}
}
