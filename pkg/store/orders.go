package store

import (
	"github.com/getmockd/printmock/pkg/domain"
)

// CreateOrder stores o and returns the stored copy.
//
// A non-empty o.OrderID is kept and the sequential counter is not advanced;
// otherwise the next counter value is assigned. OrderNumber defaults to
// ORD-<orderId>, Status to pending and TrackingNumbers to empty. CreatedAt
// and UpdatedAt are set to the current time. Creating an order whose ID
// already exists replaces it in place.
func (s *Store) CreateOrder(o domain.Order) domain.Order {
	s.ordersMu.Lock()
	defer s.ordersMu.Unlock()

	if o.OrderID == "" {
		o.OrderID = s.orderSeq.Next()
	}
	return s.putOrderLocked(o)
}

// InsertOrder is CreateOrder without replacement. It returns a
// *ConflictError when o.OrderID, or the counter value assigned to it, is
// already taken. An assigned counter value is consumed either way.
func (s *Store) InsertOrder(o domain.Order) (domain.Order, error) {
	s.ordersMu.Lock()
	defer s.ordersMu.Unlock()

	if o.OrderID == "" {
		o.OrderID = s.orderSeq.Next()
	}
	if _, exists := s.orders[o.OrderID]; exists {
		return domain.Order{}, &ConflictError{Resource: ResourceOrder, ID: o.OrderID, Reason: "order already exists"}
	}
	return s.putOrderLocked(o), nil
}

func (s *Store) putOrderLocked(o domain.Order) domain.Order {
	if o.OrderNumber == "" {
		o.OrderNumber = "ORD-" + o.OrderID
	}
	if o.Status == "" {
		o.Status = domain.StatusPending
	}
	o = o.Clone()
	now := s.now()
	o.CreatedAt = now
	o.UpdatedAt = now

	if _, exists := s.orders[o.OrderID]; !exists {
		s.orderIndex = append(s.orderIndex, o.OrderID)
	}
	stored := o
	s.orders[o.OrderID] = &stored
	return o.Clone()
}

// Order returns the order with the given ID.
func (s *Store) Order(orderID string) (domain.Order, error) {
	s.ordersMu.RLock()
	defer s.ordersMu.RUnlock()

	o, ok := s.orders[orderID]
	if !ok {
		return domain.Order{}, &NotFoundError{Resource: ResourceOrder, ID: orderID}
	}
	return o.Clone(), nil
}

// OrderExists reports whether an order with the given ID exists.
func (s *Store) OrderExists(orderID string) bool {
	s.ordersMu.RLock()
	defer s.ordersMu.RUnlock()
	_, ok := s.orders[orderID]
	return ok
}

// Orders returns every order in insertion order.
func (s *Store) Orders() []domain.Order {
	return s.filterOrders(func(*domain.Order) bool { return true })
}

// OrdersByStatus returns orders with the given status in insertion order.
func (s *Store) OrdersByStatus(status domain.Status) []domain.Order {
	return s.filterOrders(func(o *domain.Order) bool { return o.Status == status })
}

func (s *Store) filterOrders(keep func(*domain.Order) bool) []domain.Order {
	s.ordersMu.RLock()
	defer s.ordersMu.RUnlock()

	result := make([]domain.Order, 0, len(s.orderIndex))
	for _, key := range s.orderIndex {
		if o := s.orders[key]; keep(o) {
			result = append(result, o.Clone())
		}
	}
	return result
}

// UpdateOrderStatus sets the status of an order. Any status is accepted.
func (s *Store) UpdateOrderStatus(orderID string, status domain.Status) (domain.Order, error) {
	return s.MutateOrder(orderID, func(o *domain.Order) error {
		o.Status = status
		return nil
	})
}

// UpdateOrder merges patch into an order.
func (s *Store) UpdateOrder(orderID string, patch domain.OrderPatch) (domain.Order, error) {
	return s.MutateOrder(orderID, func(o *domain.Order) error {
		patch.Apply(o)
		return nil
	})
}

// MutateOrder runs fn on a copy of the order under the orders lock. If fn
// returns nil the copy replaces the stored order and UpdatedAt advances;
// otherwise nothing changes and fn's error is returned. OrderID and
// CreatedAt cannot be changed by fn.
func (s *Store) MutateOrder(orderID string, fn func(o *domain.Order) error) (domain.Order, error) {
	s.ordersMu.Lock()
	defer s.ordersMu.Unlock()

	current, ok := s.orders[orderID]
	if !ok {
		return domain.Order{}, &NotFoundError{Resource: ResourceOrder, ID: orderID}
	}

	next := current.Clone()
	if err := fn(&next); err != nil {
		return domain.Order{}, err
	}
	next.OrderID = current.OrderID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = s.now()
	if next.UpdatedAt.Before(next.CreatedAt) {
		next.UpdatedAt = next.CreatedAt
	}
	if next.TrackingNumbers == nil {
		next.TrackingNumbers = []string{}
	}

	s.orders[orderID] = &next
	return next.Clone(), nil
}

// DeleteOrder removes an order and reports whether it existed.
func (s *Store) DeleteOrder(orderID string) bool {
	s.ordersMu.Lock()
	defer s.ordersMu.Unlock()

	if _, ok := s.orders[orderID]; !ok {
		return false
	}
	delete(s.orders, orderID)
	s.orderIndex = removeKey(s.orderIndex, orderID)
	return true
}
