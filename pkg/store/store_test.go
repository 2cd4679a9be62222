package store

import (
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/printmock/pkg/domain"
	"github.com/getmockd/printmock/pkg/requestlog"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Millisecond)
	return c.t
}

func newTestStore() *Store {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	return New(WithClock(clock.Now))
}

func TestCreateOrder_SequentialIDs(t *testing.T) {
	s := newTestStore()

	for i := 0; i < 10; i++ {
		o := s.CreateOrder(domain.Order{})
		assert.Equal(t, strconv.Itoa(1_000_000+i), o.OrderID)
		assert.Equal(t, "ORD-"+o.OrderID, o.OrderNumber)
	}
	assert.Equal(t, int64(1_000_010), s.NextOrderID())
}

func TestCreateOrder_CallerIDDoesNotAdvanceCounter(t *testing.T) {
	s := newTestStore()

	o := s.CreateOrder(domain.Order{OrderID: "5551234567", OrderNumber: "CUSTOM-1"})
	assert.Equal(t, "5551234567", o.OrderID)
	assert.Equal(t, "CUSTOM-1", o.OrderNumber)
	assert.Equal(t, int64(1_000_000), s.NextOrderID())

	next := s.CreateOrder(domain.Order{})
	assert.Equal(t, "1000000", next.OrderID)
}

func TestInsertOrder_RejectsTakenID(t *testing.T) {
	s := newTestStore()
	first, err := s.InsertOrder(domain.Order{OrderID: "5551234567", Filename: "a.stl"})
	require.NoError(t, err)

	_, err = s.InsertOrder(domain.Order{OrderID: "5551234567", Filename: "b.stl"})
	assert.True(t, IsConflict(err))

	stored, err := s.Order("5551234567")
	require.NoError(t, err)
	assert.Equal(t, first.Filename, stored.Filename)
	assert.Len(t, s.Orders(), 1)
}

func TestInsertOrder_SkipsTakenCounterValue(t *testing.T) {
	s := newTestStore()
	s.CreateOrder(domain.Order{OrderID: "1000000"})

	_, err := s.InsertOrder(domain.Order{})
	require.True(t, IsConflict(err))

	o, err := s.InsertOrder(domain.Order{})
	require.NoError(t, err)
	assert.Equal(t, "1000001", o.OrderID)
}

func TestCreateOrder_Defaults(t *testing.T) {
	s := newTestStore()
	o := s.CreateOrder(domain.Order{Filename: "part.stl"})

	assert.Equal(t, domain.StatusPending, o.Status)
	assert.NotNil(t, o.TrackingNumbers)
	assert.Empty(t, o.TrackingNumbers)
	assert.False(t, o.CreatedAt.IsZero())
	assert.Equal(t, o.CreatedAt, o.UpdatedAt)
}

func TestCreateOrder_ReturnsCopy(t *testing.T) {
	s := newTestStore()
	o := s.CreateOrder(domain.Order{TrackingNumbers: []string{"a"}})
	o.TrackingNumbers[0] = "mutated"
	o.Status = domain.StatusShipped

	stored, err := s.Order(o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, stored.TrackingNumbers)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestOrder_NotFound(t *testing.T) {
	s := newTestStore()
	_, err := s.Order("missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, s.OrderExists("missing"))
}

func TestOrders_InsertionOrderAndByStatus(t *testing.T) {
	s := newTestStore()
	a := s.CreateOrder(domain.Order{})
	b := s.CreateOrder(domain.Order{})
	c := s.CreateOrder(domain.Order{})
	_, err := s.UpdateOrderStatus(b.OrderID, domain.StatusPrinting)
	require.NoError(t, err)

	all := s.Orders()
	require.Len(t, all, 3)
	assert.Equal(t, []string{a.OrderID, b.OrderID, c.OrderID}, []string{all[0].OrderID, all[1].OrderID, all[2].OrderID})

	printing := s.OrdersByStatus(domain.StatusPrinting)
	require.Len(t, printing, 1)
	assert.Equal(t, b.OrderID, printing[0].OrderID)
	assert.Len(t, s.OrdersByStatus(domain.StatusPending), 2)
}

func TestUpdateOrderStatus(t *testing.T) {
	s := newTestStore()
	o := s.CreateOrder(domain.Order{})

	updated, err := s.UpdateOrderStatus(o.OrderID, domain.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, updated.Status)
	assert.True(t, updated.UpdatedAt.After(o.UpdatedAt))
	assert.Equal(t, o.CreatedAt, updated.CreatedAt)

	// The store accepts any transition.
	back, err := s.UpdateOrderStatus(o.OrderID, domain.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, back.Status)

	_, err = s.UpdateOrderStatus("missing", domain.StatusPrinting)
	assert.True(t, IsNotFound(err))
}

func TestUpdateOrder_Merge(t *testing.T) {
	s := newTestStore()
	o := s.CreateOrder(domain.Order{Color: "black", Quantity: "1"})

	color := "red"
	updated, err := s.UpdateOrder(o.OrderID, domain.OrderPatch{
		Color:           &color,
		TrackingNumbers: []string{"1Z999"},
	})
	require.NoError(t, err)
	assert.Equal(t, "red", updated.Color)
	assert.Equal(t, "1", updated.Quantity)
	assert.Equal(t, []string{"1Z999"}, updated.TrackingNumbers)

	_, err = s.UpdateOrder("missing", domain.OrderPatch{})
	assert.True(t, IsNotFound(err))
}

func TestMutateOrder_ErrorLeavesOrderUnchanged(t *testing.T) {
	s := newTestStore()
	o := s.CreateOrder(domain.Order{})

	_, err := s.MutateOrder(o.OrderID, func(o *domain.Order) error {
		o.Status = domain.StatusCancelled
		return &ConflictError{Resource: ResourceOrder, ID: o.OrderID, Reason: "nope"}
	})
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	stored, err := s.Order(o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Equal(t, o.UpdatedAt, stored.UpdatedAt)
}

func TestMutateOrder_IDIsImmutable(t *testing.T) {
	s := newTestStore()
	o := s.CreateOrder(domain.Order{})

	updated, err := s.MutateOrder(o.OrderID, func(o *domain.Order) error {
		o.OrderID = "hijacked"
		o.CreatedAt = time.Time{}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, o.OrderID, updated.OrderID)
	assert.Equal(t, o.CreatedAt, updated.CreatedAt)
	assert.False(t, s.OrderExists("hijacked"))
}

func TestMutateOrder_UpdatedAtNeverBeforeCreatedAt(t *testing.T) {
	times := []time.Time{
		time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	i := 0
	s := New(WithClock(func() time.Time {
		t := times[min(i, len(times)-1)]
		i++
		return t
	}))

	o := s.CreateOrder(domain.Order{})
	updated, err := s.UpdateOrderStatus(o.OrderID, domain.StatusPrinting)
	require.NoError(t, err)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
}

func TestDeleteOrder(t *testing.T) {
	s := newTestStore()
	o := s.CreateOrder(domain.Order{})

	assert.True(t, s.DeleteOrder(o.OrderID))
	assert.False(t, s.DeleteOrder(o.OrderID))
	assert.Empty(t, s.Orders())
}

func TestCreateWebhook_Overwrites(t *testing.T) {
	s := newTestStore()
	s.CreateWebhook("https://example.com/hook", "key-1")
	w := s.CreateWebhook("https://example.com/hook", "key-2")

	assert.Equal(t, "key-2", w.APIKey)
	assert.Equal(t, 1, s.WebhookCount())
	assert.NotNil(t, w.DeliveryAttempts)
}

func TestRegisterWebhook_RejectsDuplicate(t *testing.T) {
	s := newTestStore()

	_, err := s.RegisterWebhook("https://example.com/hook", "key")
	require.NoError(t, err)
	_, err = s.RegisterWebhook("https://example.com/hook", "key")
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.Equal(t, 1, s.WebhookCount())
}

func TestRegisterWebhook_ConcurrentDuplicates(t *testing.T) {
	s := newTestStore()

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.RegisterWebhook("https://example.com/race", "k"); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, s.WebhookCount())
}

func TestWebhooks_GetListDelete(t *testing.T) {
	s := newTestStore()
	s.CreateWebhook("https://a.example.com", "k")
	s.CreateWebhook("https://b.example.com", "k")

	w, err := s.Webhook("https://a.example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://a.example.com", w.EndPoint)

	_, err = s.Webhook("https://missing.example.com")
	assert.True(t, IsNotFound(err))

	list := s.Webhooks()
	require.Len(t, list, 2)
	assert.Equal(t, "https://b.example.com", list[1].EndPoint)

	assert.True(t, s.DeleteWebhook("https://a.example.com"))
	assert.False(t, s.DeleteWebhook("https://a.example.com"))
	assert.False(t, s.WebhookExists("https://a.example.com"))
	assert.True(t, s.WebhookExists("https://b.example.com"))
}

func TestStats(t *testing.T) {
	s := newTestStore()
	a := s.CreateOrder(domain.Order{})
	s.CreateOrder(domain.Order{})
	_, err := s.UpdateOrderStatus(a.OrderID, domain.StatusShipped)
	require.NoError(t, err)
	s.CreateWebhook("https://example.com", "k")
	s.Ledger().Log(requestlog.Entry{Path: "/api/order"})

	stats := s.Stats()
	assert.Equal(t, 2, stats.Orders.Total)
	assert.Equal(t, 1, stats.Orders.ByStatus[domain.StatusPending])
	assert.Equal(t, 1, stats.Orders.ByStatus[domain.StatusShipped])
	assert.Equal(t, 0, stats.Orders.ByStatus[domain.StatusCancelled])
	assert.Len(t, stats.Orders.ByStatus, 5)
	assert.Equal(t, 1, stats.Orders.Active())
	assert.Equal(t, 1, stats.Webhooks.Total)
	assert.Equal(t, 1, stats.RequestLogs.Total)
	assert.Equal(t, int64(1_000_002), stats.NextOrderID)
}

func TestSnapshotAndReset(t *testing.T) {
	s := newTestStore()
	s.CreateOrder(domain.Order{})
	s.CreateWebhook("https://example.com", "k")
	s.Ledger().Log(requestlog.Entry{Path: "/api/order"})

	snap := s.Snapshot()
	assert.Len(t, snap.Orders, 1)
	assert.Len(t, snap.Webhooks, 1)
	assert.Len(t, snap.RequestLogs, 1)
	assert.Equal(t, int64(1_000_001), snap.NextOrderID)

	s.Reset()
	assert.Empty(t, s.Orders())
	assert.Empty(t, s.Webhooks())
	assert.Equal(t, 0, s.Ledger().Count())
	assert.Equal(t, "1000000", s.CreateOrder(domain.Order{}).OrderID)
}

func TestWithLedgerCapacity(t *testing.T) {
	s := New(WithLedgerCapacity(3))
	for i := 0; i < 5; i++ {
		s.Ledger().Log(requestlog.Entry{Path: fmt.Sprintf("/%d", i)})
	}
	assert.Equal(t, 3, s.Ledger().Count())
}

func TestCreateOrder_Concurrent(t *testing.T) {
	s := newTestStore()
	var wg sync.WaitGroup
	for g := 0; g < 20; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				s.CreateOrder(domain.Order{})
			}
		}()
	}
	wg.Wait()

	orders := s.Orders()
	assert.Len(t, orders, 500)
	seen := map[string]bool{}
	for _, o := range orders {
		assert.False(t, seen[o.OrderID])
		seen[o.OrderID] = true
	}
	assert.Equal(t, int64(1_000_500), s.NextOrderID())
}
