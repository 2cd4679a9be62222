package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/getmockd/printmock/internal/id"
	"github.com/getmockd/printmock/pkg/domain"
	"github.com/getmockd/printmock/pkg/httputil"
	"github.com/getmockd/printmock/pkg/requestlog"
	"github.com/getmockd/printmock/pkg/store"
	"github.com/getmockd/printmock/pkg/validation"
)

// DefaultDashboardLogLimit is the number of log entries returned by
// GET /api/dashboard/logs without a limit parameter.
const DefaultDashboardLogLimit = 50

// DashboardStats is the body of GET /api/dashboard/stats.
type DashboardStats struct {
	TotalRequests      int    `json:"totalRequests"`
	ActiveOrders       int    `json:"activeOrders"`
	RegisteredWebhooks int    `json:"registeredWebhooks"`
	APIStatus          string `json:"apiStatus"`
	Uptime             int    `json:"uptime"`
}

// DashboardOrders is the body of GET /api/dashboard/orders.
type DashboardOrders struct {
	Orders     []domain.Order `json:"orders"`
	TotalCount int            `json:"totalCount"`
}

// DashboardLogs is the body of GET /api/dashboard/logs.
type DashboardLogs struct {
	Logs       []requestlog.Entry `json:"logs"`
	TotalCount int                `json:"totalCount"`
}

// StatusUpdateRequest is the body of PUT /api/dashboard/orders/{id}/status.
type StatusUpdateRequest struct {
	Status domain.Status `json:"status"`
}

// StatusUpdateResponse reports an updated order.
type StatusUpdateResponse struct {
	Message string       `json:"message"`
	Order   domain.Order `json:"order"`
}

// DashboardCancelResponse is the body of a successful dashboard cancel.
type DashboardCancelResponse struct {
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}

// DashboardWebhookRemoved is the body of a successful dashboard webhook
// removal.
type DashboardWebhookRemoved struct {
	Message  string `json:"message"`
	Endpoint string `json:"endpoint"`
}

// MessageResponse is a bare confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ClearLogsResponse is the body of DELETE /api/dashboard/logs.
type ClearLogsResponse struct {
	Message string `json:"message"`
	Cleared int    `json:"cleared"`
}

func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats := s.store.Stats()
	httputil.WriteOK(w, DashboardStats{
		TotalRequests:      stats.RequestLogs.Total,
		ActiveOrders:       stats.Orders.Active(),
		RegisteredWebhooks: stats.Webhooks.Total,
		APIStatus:          "healthy",
		Uptime:             s.Uptime(),
	})
}

func (s *Server) handleDashboardOrders(w http.ResponseWriter, r *http.Request) {
	var orders []domain.Order
	if status := r.URL.Query().Get("status"); status != "" {
		orders = s.store.OrdersByStatus(domain.Status(status))
	} else {
		orders = s.store.Orders()
	}
	httputil.WriteOK(w, DashboardOrders{Orders: orders, TotalCount: len(orders)})
}

func (s *Server) handleDashboardWebhooks(w http.ResponseWriter, r *http.Request) {
	webhooks := s.store.Webhooks()
	httputil.WriteOK(w, WebhooksResponse{Webhooks: webhooks, TotalCount: len(webhooks)})
}

// handleDashboardLogs returns the most recent ledger entries, oldest
// first. With any of the method, path or status parameters it instead
// returns matching entries newest first.
func (s *Server) handleDashboardLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := DefaultDashboardLogLimit
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		limit = n
	}

	var logs []requestlog.Entry
	if q.Has("method") || q.Has("path") || q.Has("status") {
		status, _ := strconv.Atoi(q.Get("status"))
		logs = s.store.Ledger().List(&requestlog.Filter{
			Method:     q.Get("method"),
			PathPrefix: q.Get("path"),
			StatusCode: status,
			Limit:      limit,
		})
	} else {
		logs = s.store.Ledger().Recent(limit)
	}
	httputil.WriteOK(w, DashboardLogs{Logs: logs, TotalCount: len(logs)})
}

func (s *Server) handleDashboardClearLogs(w http.ResponseWriter, r *http.Request) {
	n := s.store.Ledger().Count()
	s.store.Ledger().Clear()
	s.log.Info("request log cleared", "entries", n)
	httputil.WriteOK(w, ClearLogsResponse{Message: "Request logs cleared", Cleared: n})
}

func (s *Server) handleDashboardDeleteWebhook(w http.ResponseWriter, r *http.Request) {
	endpoint := r.PathValue("endpoint")
	if !s.store.DeleteWebhook(endpoint) {
		httputil.WriteNotFound(w, ErrMsgWebhookNotFound)
		return
	}
	httputil.WriteOK(w, DashboardWebhookRemoved{Message: "Webhook removed successfully", Endpoint: endpoint})
}

// handleDashboardUpdateStatus sets an order's status. Moving an order to
// shipped without tracking numbers assigns one.
func (s *Server) handleDashboardUpdateStatus(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readJSONObject(w, r)
	if !ok {
		return
	}
	raw, _ := body["status"].(string)
	status := domain.Status(raw)
	if !status.Valid() {
		writeValidationError(w, validation.NewFieldError("status", statusMessage(), validation.CodeInvalidFormat))
		return
	}

	order, err := s.store.MutateOrder(r.PathValue("id"), func(o *domain.Order) error {
		o.Status = status
		if status == domain.StatusShipped && len(o.TrackingNumbers) == 0 {
			o.TrackingNumbers = []string{id.TrackingNumber()}
		}
		return nil
	})
	if err != nil {
		writeStoreError(w, s.log, err, "update order status")
		return
	}
	s.log.Info("order status updated", "orderId", order.OrderID, "status", order.Status)
	httputil.WriteOK(w, StatusUpdateResponse{Message: "Order status updated", Order: order})
}

func statusMessage() string {
	names := make([]string, len(domain.Statuses))
	for i, st := range domain.Statuses {
		names[i] = string(st)
	}
	return fmt.Sprintf("status must be one of %s", strings.Join(names, ", "))
}

func (s *Server) handleDashboardCancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("id")
	_, err := s.store.MutateOrder(orderID, func(o *domain.Order) error {
		if o.Status.Terminal() {
			return &store.ConflictError{Resource: store.ResourceOrder, ID: orderID, Reason: ErrMsgNotCancellable}
		}
		o.Status = domain.StatusCancelled
		return nil
	})
	if err != nil {
		writeStoreError(w, s.log, err, "cancel order")
		return
	}
	s.log.Info("order cancelled from dashboard", "orderId", orderID)
	httputil.WriteOK(w, DashboardCancelResponse{Message: "Order cancelled successfully", OrderID: orderID})
}

func (s *Server) handleDashboardStorage(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, s.store.Snapshot())
}

func (s *Server) handleDashboardReset(w http.ResponseWriter, r *http.Request) {
	s.store.Reset()
	s.log.Info("store reset")
	httputil.WriteOK(w, MessageResponse{Message: "Storage reset"})
}
