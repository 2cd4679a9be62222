// Package testing provides a testing SDK for using printmock in Go tests.
//
// It runs the mock API in-process on an httptest server, seeds orders and
// webhooks directly into the store, and asserts on the request ledger.
//
// # Basic Usage
//
//	func TestCheckout(t *testing.T) {
//	    mock := pmtest.New(t)
//	    url := mock.Start()
//
//	    client := checkout.NewClient(url, "sk_test")
//	    if err := client.PlaceOrder(ctx, cart); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    mock.AssertCalledTimes(t, "POST", "/api/order", 1)
//	    mock.LastRequest(t, "POST", "/api/order").AssertStatus(t, 200)
//	}
//
// The server starts with instant slicing and sequential order IDs
// (1000000, 1000001, ...) so tests are fast and deterministic. Pass
// api.Option values to New to change either.
//
// # Seeding State
//
//	mock.Order("1000123").
//	    WithStatus(domain.StatusShipped).
//	    WithTracking("1Z999AA10123456784").
//	    Create()
//
//	mock.Webhook("https://hooks.example.com/slant").Register()
//
// # Assertions
//
// Paths passed to the call assertions may use {name} segments as
// wildcards:
//
//	mock.AssertCalled(t, "GET", "/api/order/{id}/get-tracking")
//	mock.AssertNotCalled(t, "DELETE", "/api/order/{id}")
//	mock.AssertOrderStatus(t, "1000000", domain.StatusCancelled)
//
// Reset clears orders, webhooks and the ledger between subtests.
package testing
