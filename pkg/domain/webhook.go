package domain

import "time"

// Webhook is a registered subscriber endpoint. The endpoint URL is its key.
type Webhook struct {
	EndPoint         string            `json:"endPoint"`
	APIKey           string            `json:"apiKey"`
	RegisteredAt     time.Time         `json:"registeredAt"`
	DeliveryAttempts []WebhookDelivery `json:"deliveryAttempts"`
}

// Clone returns a copy of w that shares no mutable state with it.
func (w Webhook) Clone() Webhook {
	w.DeliveryAttempts = append([]WebhookDelivery{}, w.DeliveryAttempts...)
	return w
}

// WebhookDelivery records one delivery attempt.
type WebhookDelivery struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Success      bool      `json:"success"`
	ResponseCode int       `json:"responseCode,omitempty"`
	Error        string    `json:"error,omitempty"`
	RetryCount   int       `json:"retryCount"`
}

// Filament is one entry of the filament catalogue.
type Filament struct {
	Filament string `json:"filament"`
	HexColor string `json:"hexColor"`
	ColorTag string `json:"colorTag"`
	Profile  string `json:"profile"`
}
