package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getmockd/printmock/pkg/domain"
	"github.com/getmockd/printmock/pkg/store"
)

func benchRequest(b *testing.B, s *Server, method, path string, body []byte, want int) {
	b.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set(APIKeyHeader, testAPIKey)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != want {
		b.Fatalf("unexpected status: %d: %s", rec.Code, rec.Body.String())
	}
}

func BenchmarkCreateOrder(b *testing.B) {
	s := New(store.New(store.WithLedgerCapacity(100)))
	body, err := json.Marshal(validOrder())
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		benchRequest(b, s, http.MethodPost, "/api/order", body, http.StatusOK)
	}
}

func BenchmarkEstimateOrder(b *testing.B) {
	s := New(store.New(store.WithLedgerCapacity(100)))
	body, err := json.Marshal(validOrder())
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		benchRequest(b, s, http.MethodPost, "/api/order/estimate", body, http.StatusOK)
	}
}

// BenchmarkListOrders10000 lists a store holding 10,000 orders.
func BenchmarkListOrders10000(b *testing.B) {
	st := store.New()
	for range 10000 {
		st.CreateOrder(domain.Order{})
	}
	s := New(st)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		benchRequest(b, s, http.MethodGet, "/api/order", nil, http.StatusOK)
	}
}

func BenchmarkDashboardStats(b *testing.B) {
	st := store.New()
	for range 1000 {
		st.CreateOrder(domain.Order{})
	}
	s := New(st)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		benchRequest(b, s, http.MethodGet, "/api/dashboard/stats", nil, http.StatusOK)
	}
}
