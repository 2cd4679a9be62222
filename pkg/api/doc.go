// Package api serves the printmock HTTP API.
//
// The public routes reproduce the upstream print-order API:
//
//	GET    /api/filament
//	POST   /api/slicer
//	POST   /api/order/estimate
//	POST   /api/order/estimateShipping
//	POST   /api/order
//	GET    /api/order
//	DELETE /api/order/{id}
//	GET    /api/order/{id}/get-tracking
//	POST   /api/customer/subscribeWebhook
//	GET    /api/webhooks
//	DELETE /api/webhooks/{endpoint}
//	POST   /api/webhooks/test
//
// Every route except the filament list and the webhook test requires a
// non-empty api-key header. The /api/dashboard routes expose the store
// directly for the dashboard and are not authenticated.
//
// Requests under /api, other than dashboard traffic, are recorded in the
// store's request-log ledger together with their decoded bodies.
package api
