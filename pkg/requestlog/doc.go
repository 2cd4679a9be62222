// Package requestlog records one entry per handled API request in a bounded
// ledger that backs the dashboard and audit views.
//
// It is distinct from operational logging (which uses log/slog). Entries
// carry the request method, path, outcome, duration, the API key the caller
// presented and opaque snapshots of the request and response bodies.
//
// # Store Interface
//
// Store defines the ledger operations:
//   - Recording new entries (Log stamps ID and timestamp)
//   - Querying by ID, by status code, by path, or the most recent N
//   - Clearing history
//
// MemoryStore is a FIFO bounded to a fixed capacity: once full, each new
// entry evicts the oldest one.
//
//	ledger := requestlog.NewMemoryStore(1000)
//	ledger.Log(requestlog.Entry{
//	    Method:     "POST",
//	    Path:       "/api/order",
//	    StatusCode: 200,
//	})
package requestlog
