package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/getmockd/printmock/pkg/httputil"
	"github.com/getmockd/printmock/pkg/store"
	"github.com/getmockd/printmock/pkg/validation"
)

// Client-facing error messages.
const (
	ErrMsgAPIKeyRequired   = "API key required"
	ErrMsgInvalidJSON      = "Invalid JSON in request body"
	ErrMsgNotFound         = "Endpoint not found"
	ErrMsgInternal         = "Internal server error"
	ErrMsgOrderNotFound    = "Order not found"
	ErrMsgWebhookNotFound  = "Webhook not found"
	ErrMsgWebhookExists    = "Webhook endpoint already registered"
	ErrMsgShippedOrder     = "Cannot cancel shipped order"
	ErrMsgAlreadyCancelled = "Order already cancelled"
	ErrMsgNotCancellable   = "Order cannot be cancelled in current status"
	ErrMsgInvalidURL       = "Invalid URL format"
)

// writeValidationError writes the 400 validation body for a single detail.
func writeValidationError(w http.ResponseWriter, fe *validation.FieldError) {
	httputil.WriteJSON(w, http.StatusBadRequest, fe.Response())
}

// writeStoreError maps store errors to responses. Not-found errors use the
// message for their resource, conflicts use their reason, and anything
// else is logged and reported generically.
func writeStoreError(w http.ResponseWriter, log *slog.Logger, err error, operation string) {
	var nf *store.NotFoundError
	if errors.As(err, &nf) {
		msg := ErrMsgOrderNotFound
		if nf.Resource == store.ResourceWebhook {
			msg = ErrMsgWebhookNotFound
		}
		httputil.WriteError(w, nf.StatusCode(), msg)
		return
	}

	var conflict *store.ConflictError
	if errors.As(err, &conflict) {
		httputil.WriteError(w, conflict.StatusCode(), conflict.Reason)
		return
	}

	log.Error(operation+" failed", "error", err)
	httputil.WriteInternalError(w, ErrMsgInternal)
}
