package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/getmockd/printmock/pkg/domain"
	"github.com/getmockd/printmock/pkg/httputil"
	"github.com/getmockd/printmock/pkg/pricing"
	"github.com/getmockd/printmock/pkg/store"
	"github.com/getmockd/printmock/pkg/validation"
)

// maxIDAttempts bounds retries when an allocated order ID is taken.
const maxIDAttempts = 5

// ErrOrderIDExhausted is returned when every allocated order ID was taken.
var ErrOrderIDExhausted = errors.New("no free order ID")

// CreateOrderResponse is the body of POST /api/order.
type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}

// OrdersListResponse is the body of GET /api/order.
type OrdersListResponse struct {
	OrdersData []OrderSummary `json:"ordersData"`
}

// OrderSummary is one entry of OrdersListResponse. OrderID is numeric in
// this response only, and null when the stored ID is not a number.
type OrderSummary struct {
	OrderID        *int64         `json:"orderId"`
	OrderTimestamp OrderTimestamp `json:"orderTimestamp"`
}

// OrderTimestamp is a creation time split into seconds and nanoseconds.
type OrderTimestamp struct {
	Seconds     int64 `json:"_seconds"`
	Nanoseconds int64 `json:"_nanoseconds"`
}

// CancelOrderResponse is the body of DELETE /api/order/{id}.
type CancelOrderResponse struct {
	Status string `json:"status"`
}

// TrackingResponse is the body of GET /api/order/{id}/get-tracking.
type TrackingResponse struct {
	Status          domain.Status `json:"status"`
	TrackingNumbers []string      `json:"trackingNumbers"`
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	item, quantity, ok := s.readOrderItem(w, r, validation.ValidateOrderItems)
	if !ok {
		return
	}

	quote := pricing.Estimate(quantity, item.ShipToZip, item.ShipToIsUSResidential)
	order, err := s.insertOrder(domain.Order{
		OrderNumber:     item.OrderNumber,
		Status:          domain.StatusPending,
		Filename:        item.Filename,
		FileURL:         item.FileURL,
		Quantity:        item.OrderQuantity,
		Color:           item.OrderItemColor,
		Profile:         item.ProfileOrDefault(),
		TotalPrice:      quote.TotalPrice,
		ShippingCost:    quote.ShippingCost,
		PrintingCost:    quote.PrintingCost,
		TrackingNumbers: []string{},
		BillingAddress:  item.BillingAddress(),
		ShippingAddress: item.ShippingAddress(),
		Email:           item.Email,
		Residential:     item.Residential(),
	})
	if err != nil {
		writeStoreError(w, s.log, err, "create order")
		return
	}
	_ = s.metrics.OrdersCreatedTotal.Inc()

	s.log.Info("order created",
		"orderId", order.OrderID,
		"orderNumber", order.OrderNumber,
		"totalPrice", order.TotalPrice,
	)
	httputil.WriteOK(w, CreateOrderResponse{OrderID: order.OrderID})
}

// insertOrder stores o under a fresh ID from the configured allocator, or
// from the store's sequential counter when none is set. IDs that are
// already taken are retried up to maxIDAttempts times.
func (s *Server) insertOrder(o domain.Order) (domain.Order, error) {
	for attempt := range maxIDAttempts {
		if s.orderIDs != nil {
			o.OrderID = s.orderIDs.Next()
		}
		stored, err := s.store.InsertOrder(o)
		if !store.IsConflict(err) {
			return stored, err
		}
		s.log.Debug("order ID taken", "error", err, "attempt", attempt+1)
	}
	return domain.Order{}, fmt.Errorf("%w: %d allocated order IDs were taken", ErrOrderIDExhausted, maxIDAttempts)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders := s.store.Orders()
	resp := OrdersListResponse{OrdersData: make([]OrderSummary, 0, len(orders))}
	for _, o := range orders {
		summary := OrderSummary{
			OrderTimestamp: OrderTimestamp{
				Seconds:     o.CreatedAt.Unix(),
				Nanoseconds: int64(o.CreatedAt.Nanosecond()/1e6) * 1e6,
			},
		}
		if n, err := strconv.ParseInt(o.OrderID, 10, 64); err == nil {
			summary.OrderID = &n
		}
		resp.OrdersData = append(resp.OrdersData, summary)
	}
	httputil.WriteOK(w, resp)
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("id")
	_, err := s.store.MutateOrder(orderID, func(o *domain.Order) error {
		switch o.Status {
		case domain.StatusShipped:
			return &store.ConflictError{Resource: store.ResourceOrder, ID: orderID, Reason: ErrMsgShippedOrder}
		case domain.StatusCancelled:
			return &store.ConflictError{Resource: store.ResourceOrder, ID: orderID, Reason: ErrMsgAlreadyCancelled}
		}
		o.Status = domain.StatusCancelled
		return nil
	})
	if err != nil {
		writeStoreError(w, s.log, err, "cancel order")
		return
	}
	s.log.Info("order cancelled", "orderId", orderID)
	httputil.WriteOK(w, CancelOrderResponse{Status: "Order cancelled"})
}

func (s *Server) handleGetTracking(w http.ResponseWriter, r *http.Request) {
	order, err := s.store.Order(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, s.log, err, "get tracking")
		return
	}
	httputil.WriteOK(w, TrackingResponse{
		Status:          order.Status,
		TrackingNumbers: order.TrackingNumbers,
	})
}
