package api

import (
	"net/http"

	"github.com/getmockd/printmock/pkg/domain"
	"github.com/getmockd/printmock/pkg/httputil"
	"github.com/getmockd/printmock/pkg/store"
	"github.com/getmockd/printmock/pkg/validation"
	"github.com/getmockd/printmock/pkg/webhook"
)

// SubscribeWebhookResponse is the body of POST /api/customer/subscribeWebhook.
type SubscribeWebhookResponse struct {
	Message  string `json:"message"`
	EndPoint string `json:"endPoint"`
}

// WebhooksResponse lists webhooks with their count.
type WebhooksResponse struct {
	Webhooks   []domain.Webhook `json:"webhooks"`
	TotalCount int              `json:"totalCount"`
}

// DeleteWebhookResponse is the body of DELETE /api/webhooks/{endpoint}.
type DeleteWebhookResponse struct {
	Message  string `json:"message"`
	EndPoint string `json:"endPoint"`
}

// WebhookTestResponse is the body of a delivered webhook test.
type WebhookTestResponse struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Payload    webhook.Payload `json:"payload"`
	EndPoint   string          `json:"endPoint"`
}

// WebhookTestFailure is the body of a failed webhook test.
type WebhookTestFailure struct {
	Success  bool   `json:"success"`
	Error    string `json:"error"`
	Message  string `json:"message"`
	EndPoint string `json:"endPoint"`
}

func (s *Server) handleSubscribeWebhook(w http.ResponseWriter, r *http.Request) {
	data, err := httputil.ReadBody(r)
	if err != nil {
		writeValidationError(w, validation.NewFieldError("body", ErrMsgInvalidJSON, validation.CodeInvalidJSON))
		return
	}
	payload, err := httputil.DecodeJSON(data)
	if err != nil {
		writeValidationError(w, validation.NewFieldError("body", ErrMsgInvalidJSON, validation.CodeInvalidJSON))
		return
	}
	body, _ := payload.(map[string]any)

	raw := body["endPoint"]
	if !validation.Present(raw) {
		writeValidationError(w, validation.NewFieldError("endPoint", "Endpoint URL is required", validation.CodeRequiredField))
		return
	}
	endpoint, isString := raw.(string)
	if !isString || !validation.IsValidURL(endpoint) {
		writeValidationError(w, validation.NewFieldError("endPoint", ErrMsgInvalidURL, validation.CodeInvalidURL))
		return
	}

	if _, err := s.store.RegisterWebhook(endpoint, apiKey(r)); err != nil {
		if store.IsConflict(err) {
			httputil.WriteBadRequest(w, ErrMsgWebhookExists)
			return
		}
		writeStoreError(w, s.log, err, "register webhook")
		return
	}

	s.log.Info("webhook registered", "endpoint", endpoint)
	httputil.WriteOK(w, SubscribeWebhookResponse{Message: "Endpoint Configured", EndPoint: endpoint})
}

func (s *Server) handleListWebhooks(w http.ResponseWriter, r *http.Request) {
	webhooks := s.store.Webhooks()
	httputil.WriteOK(w, WebhooksResponse{Webhooks: webhooks, TotalCount: len(webhooks)})
}

// handleDeleteWebhook removes a webhook. The path segment is the
// URL-escaped endpoint, which ServeMux unescapes.
func (s *Server) handleDeleteWebhook(w http.ResponseWriter, r *http.Request) {
	endpoint := r.PathValue("endpoint")
	if !s.store.DeleteWebhook(endpoint) {
		httputil.WriteNotFound(w, ErrMsgWebhookNotFound)
		return
	}
	s.log.Info("webhook deleted", "endpoint", endpoint)
	httputil.WriteOK(w, DeleteWebhookResponse{Message: "Webhook deleted successfully", EndPoint: endpoint})
}

// handleTestWebhook sends the fixed test payload to a caller-given URL.
// Any HTTP response from the subscriber counts as delivered.
func (s *Server) handleTestWebhook(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readJSONObject(w, r)
	if !ok {
		return
	}
	raw := body["endPoint"]
	if !validation.Present(raw) {
		httputil.WriteBadRequest(w, "endPoint is required")
		return
	}
	endpoint, isString := raw.(string)
	if !isString || !validation.IsValidURL(endpoint) {
		httputil.WriteBadRequest(w, ErrMsgInvalidURL)
		return
	}

	status, err := s.tester.Send(r.Context(), endpoint)
	s.metrics.ObserveWebhookTest(err == nil)
	if err != nil {
		httputil.WriteJSON(w, http.StatusInternalServerError, WebhookTestFailure{
			Success:  false,
			Error:    "Failed to deliver test payload",
			Message:  err.Error(),
			EndPoint: endpoint,
		})
		return
	}

	httputil.WriteOK(w, WebhookTestResponse{
		Success:    true,
		StatusCode: status,
		Message:    "Test payload sent successfully",
		Payload:    webhook.TestPayload,
		EndPoint:   endpoint,
	})
}
