package api

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/printmock/internal/id"
	"github.com/getmockd/printmock/pkg/domain"
	"github.com/getmockd/printmock/pkg/store"
	"github.com/getmockd/printmock/pkg/validation"
)

func TestDashboardStats(t *testing.T) {
	s := newTestServer(t)
	st := s.Store()
	st.CreateOrder(domain.Order{})
	st.CreateOrder(domain.Order{Status: domain.StatusPrinting})
	st.CreateOrder(domain.Order{Status: domain.StatusShipped})
	st.CreateWebhook(hookURL, testAPIKey)
	authed(t, s, http.MethodGet, "/api/order", nil)

	rec := do(t, s, http.MethodGet, "/api/dashboard/stats", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	stats := decodeBody[DashboardStats](t, rec)
	assert.Equal(t, 1, stats.TotalRequests)
	assert.Equal(t, 2, stats.ActiveOrders)
	assert.Equal(t, 1, stats.RegisteredWebhooks)
	assert.Equal(t, "healthy", stats.APIStatus)
}

func TestDashboardOrders(t *testing.T) {
	s := newTestServer(t)
	s.Store().CreateOrder(domain.Order{})
	s.Store().CreateOrder(domain.Order{Status: domain.StatusShipped})

	body := decodeBody[DashboardOrders](t, do(t, s, http.MethodGet, "/api/dashboard/orders", nil, nil))
	assert.Equal(t, 2, body.TotalCount)
	assert.Equal(t, "1000000", body.Orders[0].OrderID)

	body = decodeBody[DashboardOrders](t, do(t, s, http.MethodGet, "/api/dashboard/orders?status=shipped", nil, nil))
	require.Equal(t, 1, body.TotalCount)
	assert.Equal(t, "1000001", body.Orders[0].OrderID)
}

func TestDashboardUpdateStatus(t *testing.T) {
	s := newTestServer(t)
	o := s.Store().CreateOrder(domain.Order{})
	path := "/api/dashboard/orders/" + o.OrderID + "/status"

	rec := do(t, s, http.MethodPut, path, map[string]any{"status": "printing"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[StatusUpdateResponse](t, rec)
	assert.Equal(t, "Order status updated", body.Message)
	assert.Equal(t, domain.StatusPrinting, body.Order.Status)
	assert.Empty(t, body.Order.TrackingNumbers)

	rec = do(t, s, http.MethodPut, path, map[string]any{"status": "shipped"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody[StatusUpdateResponse](t, rec)
	require.Len(t, body.Order.TrackingNumbers, 1)
	tracking := body.Order.TrackingNumbers[0]
	assert.True(t, strings.HasPrefix(tracking, "1Z") || strings.HasPrefix(tracking, "92") || strings.HasPrefix(tracking, "94"), tracking)

	// Re-shipping keeps the existing number.
	rec = do(t, s, http.MethodPut, path, map[string]any{"status": "shipped"}, nil)
	assert.Equal(t, []string{tracking}, decodeBody[StatusUpdateResponse](t, rec).Order.TrackingNumbers)
}

func TestDashboardUpdateStatus_Errors(t *testing.T) {
	s := newTestServer(t)
	o := s.Store().CreateOrder(domain.Order{})
	path := "/api/dashboard/orders/" + o.OrderID + "/status"

	rec := do(t, s, http.MethodPut, path, map[string]any{"status": "lost"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	detail := validationDetail(t, decodeBody[validation.Response](t, rec))
	assert.Equal(t, "status", detail.Field)
	assert.Equal(t, validation.CodeInvalidFormat, detail.Code)

	rec = do(t, s, http.MethodPut, path, `{"status":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrMsgInvalidJSON, errorMessage(t, rec))

	rec = do(t, s, http.MethodPut, "/api/dashboard/orders/404/status", map[string]any{"status": "printing"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrMsgOrderNotFound, errorMessage(t, rec))

	after, err := s.Store().Order(o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, after.Status)
}

func TestDashboardCancel(t *testing.T) {
	s := newTestServer(t)
	pending := s.Store().CreateOrder(domain.Order{})
	shipped := s.Store().CreateOrder(domain.Order{Status: domain.StatusShipped})

	rec := do(t, s, http.MethodPost, "/api/dashboard/orders/"+pending.OrderID+"/cancel", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, DashboardCancelResponse{Message: "Order cancelled successfully", OrderID: pending.OrderID},
		decodeBody[DashboardCancelResponse](t, rec))

	for _, orderID := range []string{pending.OrderID, shipped.OrderID} {
		rec = do(t, s, http.MethodPost, "/api/dashboard/orders/"+orderID+"/cancel", nil, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, ErrMsgNotCancellable, errorMessage(t, rec))
	}

	rec = do(t, s, http.MethodPost, "/api/dashboard/orders/404/cancel", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboardWebhooks(t *testing.T) {
	s := newTestServer(t)
	s.Store().CreateWebhook(hookURL, testAPIKey)

	body := decodeBody[WebhooksResponse](t, do(t, s, http.MethodGet, "/api/dashboard/webhooks", nil, nil))
	assert.Equal(t, 1, body.TotalCount)

	path := "/api/dashboard/webhooks/" + url.PathEscape(hookURL)
	rec := do(t, s, http.MethodDelete, path, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, DashboardWebhookRemoved{Message: "Webhook removed successfully", Endpoint: hookURL},
		decodeBody[DashboardWebhookRemoved](t, rec))

	rec = do(t, s, http.MethodDelete, path, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrMsgWebhookNotFound, errorMessage(t, rec))
}

func TestDashboardLogs(t *testing.T) {
	s := newTestServer(t)
	for range 60 {
		do(t, s, http.MethodGet, "/api/filament", nil, nil)
	}
	authed(t, s, http.MethodGet, "/api/order/1/get-tracking", nil)

	body := decodeBody[DashboardLogs](t, do(t, s, http.MethodGet, "/api/dashboard/logs", nil, nil))
	assert.Equal(t, DefaultDashboardLogLimit, body.TotalCount)
	assert.Equal(t, "/api/order/1/get-tracking", body.Logs[len(body.Logs)-1].Path, "oldest first")

	body = decodeBody[DashboardLogs](t, do(t, s, http.MethodGet, "/api/dashboard/logs?limit=5", nil, nil))
	assert.Equal(t, 5, body.TotalCount)

	body = decodeBody[DashboardLogs](t, do(t, s, http.MethodGet, "/api/dashboard/logs?limit=abc", nil, nil))
	assert.Equal(t, DefaultDashboardLogLimit, body.TotalCount)

	body = decodeBody[DashboardLogs](t, do(t, s, http.MethodGet, "/api/dashboard/logs?status=404", nil, nil))
	require.Equal(t, 1, body.TotalCount)
	assert.Equal(t, "/api/order/1/get-tracking", body.Logs[0].Path)

	body = decodeBody[DashboardLogs](t, do(t, s, http.MethodGet, "/api/dashboard/logs?path=/api/filament&limit=3", nil, nil))
	assert.Equal(t, 3, body.TotalCount)
}

func TestDashboardClearLogs(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodGet, "/api/filament", nil, nil)
	do(t, s, http.MethodGet, "/api/filament", nil, nil)

	rec := do(t, s, http.MethodDelete, "/api/dashboard/logs", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decodeBody[ClearLogsResponse](t, rec).Cleared)
	assert.Zero(t, s.Store().Ledger().Count())
}

func TestDashboardStorageAndReset(t *testing.T) {
	s := newTestServer(t)
	s.Store().CreateOrder(domain.Order{})
	s.Store().CreateWebhook(hookURL, testAPIKey)
	do(t, s, http.MethodGet, "/api/filament", nil, nil)

	snap := decodeBody[store.Snapshot](t, do(t, s, http.MethodGet, "/api/dashboard/storage", nil, nil))
	assert.Len(t, snap.Orders, 1)
	assert.Len(t, snap.Webhooks, 1)
	assert.Len(t, snap.RequestLogs, 1)
	assert.Equal(t, int64(id.FirstSequentialOrderID+1), snap.NextOrderID)

	rec := do(t, s, http.MethodPost, "/api/dashboard/reset", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	stats := s.Store().Stats()
	assert.Zero(t, stats.Orders.Total)
	assert.Zero(t, stats.Webhooks.Total)
	assert.Zero(t, stats.RequestLogs.Total)
	assert.Equal(t, int64(id.FirstSequentialOrderID), stats.NextOrderID)
}

func TestDashboardFilaments(t *testing.T) {
	s := newTestServer(t)
	public := decodeBody[FilamentsResponse](t, do(t, s, http.MethodGet, "/api/filament", nil, nil))
	dashboard := decodeBody[FilamentsResponse](t, do(t, s, http.MethodGet, "/api/dashboard/filaments", nil, nil))

	require.NotEmpty(t, public.Filaments)
	assert.Equal(t, public, dashboard)
	assert.Equal(t, "PLA", public.Filaments[0].Profile)
}
