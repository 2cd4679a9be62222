package store

import (
	"github.com/getmockd/printmock/pkg/domain"
)

// CreateWebhook stores a webhook for endpoint, replacing any existing one.
func (s *Store) CreateWebhook(endpoint, apiKey string) domain.Webhook {
	s.webhooksMu.Lock()
	defer s.webhooksMu.Unlock()
	return s.putWebhookLocked(endpoint, apiKey)
}

// RegisterWebhook stores a webhook for endpoint unless one already exists,
// in which case it returns a *ConflictError.
func (s *Store) RegisterWebhook(endpoint, apiKey string) (domain.Webhook, error) {
	s.webhooksMu.Lock()
	defer s.webhooksMu.Unlock()

	if _, exists := s.webhooks[endpoint]; exists {
		return domain.Webhook{}, &ConflictError{
			Resource: ResourceWebhook,
			ID:       endpoint,
			Reason:   "endpoint already registered",
		}
	}
	return s.putWebhookLocked(endpoint, apiKey), nil
}

func (s *Store) putWebhookLocked(endpoint, apiKey string) domain.Webhook {
	w := &domain.Webhook{
		EndPoint:         endpoint,
		APIKey:           apiKey,
		RegisteredAt:     s.now(),
		DeliveryAttempts: []domain.WebhookDelivery{},
	}
	if _, exists := s.webhooks[endpoint]; !exists {
		s.webhookIndex = append(s.webhookIndex, endpoint)
	}
	s.webhooks[endpoint] = w
	return w.Clone()
}

// Webhook returns the webhook registered for endpoint.
func (s *Store) Webhook(endpoint string) (domain.Webhook, error) {
	s.webhooksMu.RLock()
	defer s.webhooksMu.RUnlock()

	w, ok := s.webhooks[endpoint]
	if !ok {
		return domain.Webhook{}, &NotFoundError{Resource: ResourceWebhook, ID: endpoint}
	}
	return w.Clone(), nil
}

// WebhookExists reports whether endpoint is registered.
func (s *Store) WebhookExists(endpoint string) bool {
	s.webhooksMu.RLock()
	defer s.webhooksMu.RUnlock()
	_, ok := s.webhooks[endpoint]
	return ok
}

// Webhooks returns every webhook in registration order.
func (s *Store) Webhooks() []domain.Webhook {
	s.webhooksMu.RLock()
	defer s.webhooksMu.RUnlock()

	result := make([]domain.Webhook, 0, len(s.webhookIndex))
	for _, key := range s.webhookIndex {
		result = append(result, s.webhooks[key].Clone())
	}
	return result
}

// WebhookCount returns the number of registered webhooks.
func (s *Store) WebhookCount() int {
	s.webhooksMu.RLock()
	defer s.webhooksMu.RUnlock()
	return len(s.webhooks)
}

// DeleteWebhook removes the webhook for endpoint and reports whether it
// existed.
func (s *Store) DeleteWebhook(endpoint string) bool {
	s.webhooksMu.Lock()
	defer s.webhooksMu.Unlock()

	if _, ok := s.webhooks[endpoint]; !ok {
		return false
	}
	delete(s.webhooks, endpoint)
	s.webhookIndex = removeKey(s.webhookIndex, endpoint)
	return true
}
