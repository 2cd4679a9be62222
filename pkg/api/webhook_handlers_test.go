package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/printmock/pkg/validation"
	"github.com/getmockd/printmock/pkg/webhook"
)

const hookURL = "https://hooks.example.com/slant?team=a"

func TestSubscribeWebhook(t *testing.T) {
	s := newTestServer(t)

	rec := authed(t, s, http.MethodPost, "/api/customer/subscribeWebhook", map[string]any{"endPoint": hookURL})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Endpoint Configured","endPoint":"`+hookURL+`"}`, rec.Body.String())

	wh, err := s.Store().Webhook(hookURL)
	require.NoError(t, err)
	assert.Equal(t, testAPIKey, wh.APIKey)
	assert.Empty(t, wh.DeliveryAttempts)
}

func TestSubscribeWebhook_Duplicate(t *testing.T) {
	s := newTestServer(t)

	first := authed(t, s, http.MethodPost, "/api/customer/subscribeWebhook", map[string]any{"endPoint": hookURL})
	require.Equal(t, http.StatusOK, first.Code)
	second := authed(t, s, http.MethodPost, "/api/customer/subscribeWebhook", map[string]any{"endPoint": hookURL})

	assert.Equal(t, http.StatusBadRequest, second.Code)
	assert.Equal(t, ErrMsgWebhookExists, errorMessage(t, second))
	assert.Equal(t, 1, s.Store().WebhookCount())
}

func TestSubscribeWebhook_Validation(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name    string
		body    any
		field   string
		code    validation.Code
		message string
	}{
		{"missing", map[string]any{}, "endPoint", validation.CodeRequiredField, "Endpoint URL is required"},
		{"empty", map[string]any{"endPoint": ""}, "endPoint", validation.CodeRequiredField, "Endpoint URL is required"},
		{"not an object", []any{hookURL}, "endPoint", validation.CodeRequiredField, "Endpoint URL is required"},
		{"no scheme", map[string]any{"endPoint": "hooks.example.com/x"}, "endPoint", validation.CodeInvalidURL, ErrMsgInvalidURL},
		{"not a string", map[string]any{"endPoint": 12}, "endPoint", validation.CodeInvalidURL, ErrMsgInvalidURL},
		{"malformed json", `{"endPoint":`, "body", validation.CodeInvalidJSON, ErrMsgInvalidJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := authed(t, s, http.MethodPost, "/api/customer/subscribeWebhook", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			detail := validationDetail(t, decodeBody[validation.Response](t, rec))
			assert.Equal(t, tt.field, detail.Field)
			assert.Equal(t, tt.code, detail.Code)
			assert.Equal(t, tt.message, detail.Message)
		})
	}
	assert.Zero(t, s.Store().WebhookCount())
}

func TestListWebhooks(t *testing.T) {
	s := newTestServer(t)
	s.Store().CreateWebhook("https://a.example.com/hook", "k1")
	s.Store().CreateWebhook("https://b.example.com/hook", "k2")

	rec := authed(t, s, http.MethodGet, "/api/webhooks", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[WebhooksResponse](t, rec)
	assert.Equal(t, 2, body.TotalCount)
	require.Len(t, body.Webhooks, 2)
	assert.Equal(t, "https://a.example.com/hook", body.Webhooks[0].EndPoint)
}

func TestDeleteWebhook(t *testing.T) {
	s := newTestServer(t)
	s.Store().CreateWebhook(hookURL, testAPIKey)
	path := "/api/webhooks/" + url.PathEscape(hookURL)

	rec := authed(t, s, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody[DeleteWebhookResponse](t, rec)
	assert.Equal(t, "Webhook deleted successfully", body.Message)
	assert.Equal(t, hookURL, body.EndPoint)
	assert.False(t, s.Store().WebhookExists(hookURL))

	rec = authed(t, s, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrMsgWebhookNotFound, errorMessage(t, rec))
}

func TestTestWebhook_Delivered(t *testing.T) {
	var received webhook.Payload
	var calls atomic.Int32
	subscriber := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer subscriber.Close()

	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/webhooks/test", map[string]any{"endPoint": subscriber.URL}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody[WebhookTestResponse](t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, http.StatusAccepted, body.StatusCode)
	assert.Equal(t, "Test payload sent successfully", body.Message)
	assert.Equal(t, webhook.TestPayload, body.Payload)
	assert.Equal(t, subscriber.URL, body.EndPoint)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, webhook.TestPayload, received)
	assert.Zero(t, s.Store().Ledger().Count(), "webhook tests are not recorded")
}

func TestTestWebhook_Failure(t *testing.T) {
	subscriber := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := subscriber.URL
	subscriber.Close()

	s := newTestServer(t, WithWebhookTester(webhook.NewTester(webhook.WithTimeout(2*time.Second))))
	rec := do(t, s, http.MethodPost, "/api/webhooks/test", map[string]any{"endPoint": endpoint}, nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeBody[WebhookTestFailure](t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Failed to deliver test payload", body.Error)
	assert.NotEmpty(t, body.Message)
	assert.Equal(t, endpoint, body.EndPoint)

	metrics := do(t, s, http.MethodGet, "/metrics", nil, nil).Body.String()
	assert.Contains(t, metrics, `printmock_webhook_tests_total{result="error"} 1`)
}

func TestTestWebhook_Validation(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		body any
		want string
	}{
		{map[string]any{}, "endPoint is required"},
		{map[string]any{"endPoint": "not a url"}, ErrMsgInvalidURL},
		{`{`, ErrMsgInvalidJSON},
	}
	for _, tt := range tests {
		rec := do(t, s, http.MethodPost, "/api/webhooks/test", tt.body, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, tt.want, errorMessage(t, rec))
	}
}
