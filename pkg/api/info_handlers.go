package api

import (
	"net/http"
	"time"

	"github.com/getmockd/printmock/pkg/httputil"
)

// Banner is the plain-text body of GET /.
const Banner = "Mock Slant3D API - Development Server"

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    int       `json:"uptime"`
	Version   string    `json:"version"`
}

// IndexResponse is the body of GET /api.
type IndexResponse struct {
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
	Format    string   `json:"format"`
}

var publicEndpoints = []string{
	"GET /api/filament",
	"POST /api/slicer",
	"POST /api/order/estimate",
	"POST /api/order/estimateShipping",
	"POST /api/order",
	"GET /api/order",
	"GET /api/order/{id}/get-tracking",
	"DELETE /api/order/{id}",
	"POST /api/customer/subscribeWebhook",
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	httputil.WriteText(w, http.StatusOK, Banner)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, HealthResponse{
		Status:    "healthy",
		Timestamp: s.now().UTC(),
		Uptime:    s.Uptime(),
		Version:   s.version,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, IndexResponse{
		Message:   "Mock Slant3D API - Official Format Only",
		Version:   s.version,
		Endpoints: publicEndpoints,
		Format:    "Official Slant3D API - snake_case fields, array-based requests",
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	httputil.WriteNotFound(w, ErrMsgNotFound)
}
