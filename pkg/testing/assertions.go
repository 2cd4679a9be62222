package testing

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/getmockd/printmock/pkg/domain"
	"github.com/getmockd/printmock/pkg/requestlog"
)

// RequestLog represents a recorded API request for assertions.
type RequestLog struct {
	// Method is the HTTP method (GET, POST, etc.)
	Method string
	// Path is the request URL path
	Path string
	// StatusCode is the status the mock answered with
	StatusCode int
	// APIKey is the api-key header the caller sent, if any
	APIKey string
	// Body and Response are decoded JSON, or strings for non-JSON bodies
	Body     any
	Response any
}

func fromEntry(e requestlog.Entry) RequestLog {
	return RequestLog{
		Method:     e.Method,
		Path:       e.Path,
		StatusCode: e.StatusCode,
		APIKey:     e.APIKey,
		Body:       e.RequestBody,
		Response:   e.ResponseBody,
	}
}

// AssertStatus asserts the response status code.
func (r *RequestLog) AssertStatus(t testing.TB, expected int) {
	t.Helper()
	if r.StatusCode != expected {
		t.Errorf("%s %s: expected status %d, got %d", r.Method, r.Path, expected, r.StatusCode)
	}
}

// AssertAPIKey asserts the api-key header the caller sent.
func (r *RequestLog) AssertAPIKey(t testing.TB, expected string) {
	t.Helper()
	if r.APIKey != expected {
		t.Errorf("%s %s: expected api key %q, got %q", r.Method, r.Path, expected, r.APIKey)
	}
}

// AssertJSONBody asserts that the request body matches the expected JSON.
// The expected value can be a string, []byte, or any value that will be
// JSON encoded.
func (r *RequestLog) AssertJSONBody(t testing.TB, expected any) {
	t.Helper()
	assertJSON(t, "request body", r.Body, expected)
}

// AssertJSONResponse asserts that the response body matches the expected
// JSON, with the same rules as AssertJSONBody.
func (r *RequestLog) AssertJSONResponse(t testing.TB, expected any) {
	t.Helper()
	assertJSON(t, "response body", r.Response, expected)
}

func assertJSON(t testing.TB, what string, actual, expected any) {
	t.Helper()

	want, err := normalizeJSON(expected)
	if err != nil {
		t.Errorf("failed to parse expected JSON: %v", err)
		return
	}
	got, err := normalizeJSON(actual)
	if err != nil {
		t.Errorf("failed to normalize %s: %v", what, err)
		return
	}

	if !reflect.DeepEqual(got, want) {
		wantBytes, _ := json.MarshalIndent(want, "", "  ")
		gotBytes, _ := json.MarshalIndent(got, "", "  ")
		t.Errorf("%s does not match expected JSON\nexpected:\n%s\nactual:\n%s", what, wantBytes, gotBytes)
	}
}

// normalizeJSON converts v to its generic decoded-JSON form.
func normalizeJSON(v any) (any, error) {
	var data []byte
	switch b := v.(type) {
	case string:
		data = []byte(b)
	case []byte:
		data = b
	default:
		var err error
		if data, err = json.Marshal(v); err != nil {
			return nil, err
		}
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AssertCalled asserts that an endpoint was called at least once.
func (m *MockServer) AssertCalled(t testing.TB, method, path string) {
	t.Helper()
	if m.countCalls(method, path) == 0 {
		t.Errorf("expected %s %s to be called, but it was not called", method, path)
	}
}

// AssertCalledTimes asserts that an endpoint was called exactly n times.
func (m *MockServer) AssertCalledTimes(t testing.TB, method, path string, times int) {
	t.Helper()
	if count := m.countCalls(method, path); count != times {
		t.Errorf("expected %s %s to be called %d times, but was called %d times", method, path, times, count)
	}
}

// AssertNotCalled asserts that an endpoint was not called.
func (m *MockServer) AssertNotCalled(t testing.TB, method, path string) {
	t.Helper()
	if count := m.countCalls(method, path); count > 0 {
		t.Errorf("expected %s %s to not be called, but it was called %d times", method, path, count)
	}
}

// LastRequest returns the most recent request matching method and path.
// It fails the test immediately if there is none.
func (m *MockServer) LastRequest(t testing.TB, method, path string) *RequestLog {
	t.Helper()
	for _, r := range m.Requests() {
		if r.Method == method && matchesPath(r.Path, path) {
			return &r
		}
	}
	t.Fatalf("no request recorded for %s %s", method, path)
	return nil
}

// AssertOrderStatus asserts the stored status of an order.
func (m *MockServer) AssertOrderStatus(t testing.TB, orderID string, expected domain.Status) {
	t.Helper()
	o, err := m.store.Order(orderID)
	if err != nil {
		t.Errorf("order %s: %v", orderID, err)
		return
	}
	if o.Status != expected {
		t.Errorf("order %s: expected status %q, got %q", orderID, expected, o.Status)
	}
}

// AssertOrderCount asserts how many orders the store holds.
func (m *MockServer) AssertOrderCount(t testing.TB, expected int) {
	t.Helper()
	if n := len(m.store.Orders()); n != expected {
		t.Errorf("expected %d orders, got %d", expected, n)
	}
}

// AssertWebhookRegistered asserts that endpoint has a subscription.
func (m *MockServer) AssertWebhookRegistered(t testing.TB, endpoint string) {
	t.Helper()
	if !m.store.WebhookExists(endpoint) {
		t.Errorf("expected webhook %s to be registered", endpoint)
	}
}
