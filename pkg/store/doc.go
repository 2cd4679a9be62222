// Package store is the in-memory entity store: the only mutable state of
// the server.
//
// A Store holds orders, webhooks and the request-log ledger. Each of the
// three maps has its own lock, so work on one entity kind never waits on
// another. Check-then-act sequences (RegisterWebhook, MutateOrder) run
// inside a single critical section.
//
// Values returned by a Store are copies; mutating them does not affect
// stored state.
//
// The store does not enforce order status transitions and does not reject
// duplicate webhook endpoints on CreateWebhook. Callers that need those
// guarantees use MutateOrder and RegisterWebhook.
package store
