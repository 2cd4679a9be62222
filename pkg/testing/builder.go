package testing

import (
	"github.com/getmockd/printmock/pkg/domain"
)

// OrderBuilder seeds an order using a fluent API.
type OrderBuilder struct {
	server *MockServer
	order  domain.Order
}

// Order starts seeding an order. An empty orderID takes the next value of
// the store's sequential counter.
func (m *MockServer) Order(orderID string) *OrderBuilder {
	return &OrderBuilder{
		server: m,
		order: domain.Order{
			OrderID:  orderID,
			Quantity: "1",
			Color:    "black",
			Profile:  domain.DefaultProfile,
		},
	}
}

// WithStatus sets the order status. Default is pending.
func (b *OrderBuilder) WithStatus(status domain.Status) *OrderBuilder {
	b.order.Status = status
	return b
}

// WithOrderNumber sets the caller's order number. Default is ORD-<orderId>.
func (b *OrderBuilder) WithOrderNumber(orderNumber string) *OrderBuilder {
	b.order.OrderNumber = orderNumber
	return b
}

// WithTracking sets the tracking numbers.
func (b *OrderBuilder) WithTracking(numbers ...string) *OrderBuilder {
	b.order.TrackingNumbers = append([]string{}, numbers...)
	return b
}

// WithFile sets the model file name and URL.
func (b *OrderBuilder) WithFile(filename, fileURL string) *OrderBuilder {
	b.order.Filename = filename
	b.order.FileURL = fileURL
	return b
}

// WithPrices sets the printing and shipping costs; the total is their sum.
func (b *OrderBuilder) WithPrices(printing, shipping float64) *OrderBuilder {
	b.order.PrintingCost = printing
	b.order.ShippingCost = shipping
	b.order.TotalPrice = printing + shipping
	return b
}

// WithEmail sets the customer email.
func (b *OrderBuilder) WithEmail(email string) *OrderBuilder {
	b.order.Email = email
	return b
}

// Create stores the order and returns the stored copy.
func (b *OrderBuilder) Create() domain.Order {
	return b.server.store.CreateOrder(b.order)
}

// WebhookBuilder seeds a webhook subscription.
type WebhookBuilder struct {
	server   *MockServer
	endpoint string
	apiKey   string
}

// Webhook starts seeding a subscription for endpoint.
func (m *MockServer) Webhook(endpoint string) *WebhookBuilder {
	return &WebhookBuilder{server: m, endpoint: endpoint, apiKey: "sk_test"}
}

// WithAPIKey sets the key recorded with the subscription.
func (b *WebhookBuilder) WithAPIKey(apiKey string) *WebhookBuilder {
	b.apiKey = apiKey
	return b
}

// Register stores the subscription, replacing any existing one for the
// same endpoint.
func (b *WebhookBuilder) Register() domain.Webhook {
	return b.server.store.CreateWebhook(b.endpoint, b.apiKey)
}
