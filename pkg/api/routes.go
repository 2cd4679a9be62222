package api

import (
	"net/http"
)

// registerRoutes sets up all API routes.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// Service info
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api", s.handleIndex)
	mux.Handle("GET /metrics", s.metrics.Registry.Handler())

	// Catalogue and quoting
	mux.HandleFunc("GET /api/filament", s.handleListFilaments)
	mux.HandleFunc("POST /api/slicer", requireAPIKey(s.handleSlice))
	mux.HandleFunc("POST /api/order/estimate", requireAPIKey(s.handleEstimateOrder))
	mux.HandleFunc("POST /api/order/estimateShipping", requireAPIKey(s.handleEstimateShipping))

	// Orders
	mux.HandleFunc("POST /api/order", requireAPIKey(s.handleCreateOrder))
	mux.HandleFunc("GET /api/order", requireAPIKey(s.handleListOrders))
	mux.HandleFunc("DELETE /api/order/{id}", requireAPIKey(s.handleCancelOrder))
	mux.HandleFunc("GET /api/order/{id}/get-tracking", requireAPIKey(s.handleGetTracking))

	// Webhooks
	mux.HandleFunc("POST /api/customer/subscribeWebhook", requireAPIKey(s.handleSubscribeWebhook))
	mux.HandleFunc("GET /api/webhooks", requireAPIKey(s.handleListWebhooks))
	mux.HandleFunc("DELETE /api/webhooks/{endpoint}", requireAPIKey(s.handleDeleteWebhook))
	mux.HandleFunc("POST /api/webhooks/test", s.handleTestWebhook)

	// Dashboard
	mux.HandleFunc("GET /api/dashboard/stats", s.handleDashboardStats)
	mux.HandleFunc("GET /api/dashboard/orders", s.handleDashboardOrders)
	mux.HandleFunc("PUT /api/dashboard/orders/{id}/status", s.handleDashboardUpdateStatus)
	mux.HandleFunc("POST /api/dashboard/orders/{id}/cancel", s.handleDashboardCancelOrder)
	mux.HandleFunc("GET /api/dashboard/webhooks", s.handleDashboardWebhooks)
	mux.HandleFunc("DELETE /api/dashboard/webhooks/{endpoint}", s.handleDashboardDeleteWebhook)
	mux.HandleFunc("GET /api/dashboard/logs", s.handleDashboardLogs)
	mux.HandleFunc("DELETE /api/dashboard/logs", s.handleDashboardClearLogs)
	mux.HandleFunc("GET /api/dashboard/filaments", s.handleListFilaments)
	mux.HandleFunc("GET /api/dashboard/storage", s.handleDashboardStorage)
	mux.HandleFunc("POST /api/dashboard/reset", s.handleDashboardReset)

	// Everything else, including method mismatches on known paths
	mux.HandleFunc("/", s.handleNotFound)
}
