// Package metrics exposes printmock counters and gauges in the Prometheus
// text exposition format.
//
// Metrics are registered on a Registry and served by Registry.Handler:
//
//	reg := metrics.NewRegistry()
//	requests := reg.NewCounter("printmock_requests_total", "API requests", "method", "path", "status")
//	vec, _ := requests.WithLabels("POST", "/api/order", "200")
//	_ = vec.Inc()
//	mux.Handle("GET /metrics", reg.Handler())
//
// GaugeFunc samples a value at scrape time, which suits counts already held
// by the entity store.
//
// Server bundles the metrics the HTTP API records.
package metrics
