package api

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/google/uuid"

	"github.com/getmockd/printmock/pkg/httputil"
	"github.com/getmockd/printmock/pkg/requestlog"
	"github.com/getmockd/printmock/pkg/validation"
)

// Header names.
const (
	APIKeyHeader    = "api-key"
	RequestIDHeader = "X-Request-Id"
)

// CORSConfig holds the configuration for CORS handling.
type CORSConfig struct {
	// AllowedOrigins lists origins allowed to make cross-origin requests.
	// Empty or containing "*" allows all origins.
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// DefaultCORSConfig allows every origin, matching the upstream sandbox.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "api-key", "Authorization", "Accept", "Origin", "X-Requested-With"},
	}
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin,
// or "" if the origin is not allowed.
func (c *CORSConfig) allowOrigin(origin string) string {
	if len(c.AllowedOrigins) == 0 {
		return "*"
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" {
			return "*"
		}
		if allowed == origin {
			return origin
		}
	}
	return ""
}

type requestIDKey struct{}

// RequestID returns the correlation ID assigned to the request carrying ctx.
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}

// withMiddleware wraps the router. From the outside in: request ID, access
// log and metrics, CORS, ledger recording, panic recovery.
func (s *Server) withMiddleware(mux http.Handler) http.Handler {
	h := s.recoverMiddleware(mux)
	h = s.recordMiddleware(h)
	h = s.corsMiddleware(h)
	h = s.accessLogMiddleware(h)
	return s.requestIDMiddleware(h)
}

func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, reqID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, reqID)))
	})
}

// accessLogMiddleware logs one line per request and records request
// metrics under the matched route pattern.
func (s *Server) accessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		elapsed := s.now().Sub(start)
		route := routeLabel(r.Pattern)
		s.metrics.ObserveRequest(r.Method, route, sw.status, elapsed)

		level := slog.LevelInfo
		if sw.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.log.LogAttrs(r.Context(), level, "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", sw.status),
			slog.Duration("duration", elapsed),
			slog.String("requestId", RequestID(r.Context())),
		)
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	methods := strings.Join(s.cors.AllowedMethods, ", ")
	headers := strings.Join(s.cors.AllowedHeaders, ", ")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")
		allowed := s.cors.allowOrigin(r.Header.Get("Origin"))
		if allowed == "" {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Access-Control-Allow-Origin", allowed)
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.Header().Set("Access-Control-Allow-Headers", headers)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// recordMiddleware appends API traffic to the request-log ledger. Bodies
// are stored decoded when they are JSON and as strings otherwise.
func (s *Server) recordMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !recorded(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := s.now()
		reqBody, err := httputil.ReadBody(r)
		if err != nil {
			s.log.Debug("reading request body for ledger", "error", err)
		}
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK, body: &bytes.Buffer{}}

		next.ServeHTTP(sw, r)

		s.store.Ledger().Log(requestlog.Entry{
			Method:       r.Method,
			Path:         r.URL.Path,
			StatusCode:   sw.status,
			Duration:     s.now().Sub(start).Milliseconds(),
			APIKey:       strings.TrimSpace(r.Header.Get(APIKeyHeader)),
			RequestBody:  snapshot(reqBody),
			ResponseBody: snapshot(sw.body.Bytes()),
		})
	})
}

// recorded reports whether requests to path go to the ledger. Dashboard
// polling and the dashboard's webhook test are excluded.
func recorded(path string) bool {
	if path != "/api" && !strings.HasPrefix(path, "/api/") {
		return false
	}
	if path == "/api/dashboard" || strings.HasPrefix(path, "/api/dashboard/") {
		return false
	}
	return path != "/api/webhooks/test"
}

func snapshot(body []byte) any {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	v, err := httputil.DecodeJSON(body)
	if err != nil {
		return string(body)
	}
	return v
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.log.Error("panic serving request",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				httputil.WriteInternalError(w, ErrMsgInternal)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requireAPIKey rejects requests without a non-blank api-key header.
func requireAPIKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !validation.IsValidAPIKey(r.Header.Get(APIKeyHeader)) {
			httputil.WriteError(w, http.StatusUnauthorized, ErrMsgAPIKeyRequired)
			return
		}
		next(w, r)
	}
}

func apiKey(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(APIKeyHeader))
}

// routeLabel turns a ServeMux pattern such as "GET /api/order/{id}" into
// its path. The catch-all route maps to "" so unmatched URLs share a label.
func routeLabel(pattern string) string {
	if _, path, ok := strings.Cut(pattern, " "); ok {
		pattern = path
	}
	if pattern == "/" {
		return ""
	}
	return pattern
}

// statusWriter captures the status code and, when body is set, a copy of
// the response body up to httputil.MaxBodySize.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	body        *bytes.Buffer
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	if w.body != nil && w.body.Len() < httputil.MaxBodySize {
		w.body.Write(b[:min(len(b), httputil.MaxBodySize-w.body.Len())])
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
