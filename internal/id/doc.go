// Package id provides identifier generation for orders, shipments and
// ledger entries.
//
// This is the canonical source for ID generation across the printmock
// codebase. It provides several ID formats:
//
//   - OrderID: random 10-digit order identifiers
//   - OrderNumber: human-readable ORD-<time>-<nnn> numbers
//   - TrackingNumber: carrier-shaped tracking strings (UPS-like or 20-digit)
//   - Prefixed: <prefix>_<epoch-ms>_<base36> IDs for webhooks and log entries
//   - UUID: request correlation IDs
//
// Order IDs can also be allocated through an Allocator, which has a
// sequential strategy (a monotonic counter) and a random strategy. Callers
// pick the strategy; the store owns the sequential one.
//
// Random values come from crypto/rand.
package id
