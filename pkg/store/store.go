package store

import (
	"sync"
	"time"

	"github.com/getmockd/printmock/internal/id"
	"github.com/getmockd/printmock/pkg/domain"
	"github.com/getmockd/printmock/pkg/requestlog"
)

// Store holds all entities of a running server.
type Store struct {
	ordersMu   sync.RWMutex
	orders     map[string]*domain.Order
	orderIndex []string
	orderSeq   *id.Sequential

	webhooksMu   sync.RWMutex
	webhooks     map[string]*domain.Webhook
	webhookIndex []string

	ledger *requestlog.MemoryStore

	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLedgerCapacity sets the maximum number of request-log entries.
func WithLedgerCapacity(n int) Option {
	return func(s *Store) { s.ledger = requestlog.NewMemoryStore(n) }
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty Store whose order counter starts at
// id.FirstSequentialOrderID.
func New(opts ...Option) *Store {
	s := &Store{
		orders:   make(map[string]*domain.Order),
		orderSeq: id.NewSequential(),
		webhooks: make(map[string]*domain.Webhook),
		ledger:   requestlog.NewMemoryStore(requestlog.DefaultMaxEntries),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ledger returns the request-log ledger.
func (s *Store) Ledger() *requestlog.MemoryStore {
	return s.ledger
}

// NextOrderID returns the value the sequential counter will assign next.
func (s *Store) NextOrderID() int64 {
	return s.orderSeq.Peek()
}

// Stats summarizes the store contents.
type Stats struct {
	Orders      OrderStats `json:"orders"`
	Webhooks    CountStats `json:"webhooks"`
	RequestLogs CountStats `json:"requestLogs"`
	NextOrderID int64      `json:"nextOrderId"`
}

// OrderStats counts orders in total and per status.
type OrderStats struct {
	Total    int                   `json:"total"`
	ByStatus map[domain.Status]int `json:"byStatus"`
}

// CountStats holds a single total.
type CountStats struct {
	Total int `json:"total"`
}

// Active returns the number of pending and printing orders.
func (o OrderStats) Active() int {
	return o.ByStatus[domain.StatusPending] + o.ByStatus[domain.StatusPrinting]
}

// Stats returns aggregate counts. Every status is present in
// Orders.ByStatus, including those with zero orders.
func (s *Store) Stats() Stats {
	byStatus := make(map[domain.Status]int, len(domain.Statuses))
	for _, st := range domain.Statuses {
		byStatus[st] = 0
	}

	s.ordersMu.RLock()
	total := len(s.orders)
	for _, o := range s.orders {
		byStatus[o.Status]++
	}
	s.ordersMu.RUnlock()

	return Stats{
		Orders:      OrderStats{Total: total, ByStatus: byStatus},
		Webhooks:    CountStats{Total: s.WebhookCount()},
		RequestLogs: CountStats{Total: s.ledger.Count()},
		NextOrderID: s.NextOrderID(),
	}
}

// Snapshot is the raw content of a Store.
type Snapshot struct {
	Orders      []domain.Order     `json:"orders"`
	Webhooks    []domain.Webhook   `json:"webhooks"`
	RequestLogs []requestlog.Entry `json:"requestLogs"`
	NextOrderID int64              `json:"nextOrderId"`
}

// Snapshot returns copies of every entity.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Orders:      s.Orders(),
		Webhooks:    s.Webhooks(),
		RequestLogs: s.ledger.All(),
		NextOrderID: s.NextOrderID(),
	}
}

// Reset removes every entity and rewinds the order counter.
func (s *Store) Reset() {
	s.ordersMu.Lock()
	s.orders = make(map[string]*domain.Order)
	s.orderIndex = nil
	s.orderSeq.Reset()
	s.ordersMu.Unlock()

	s.webhooksMu.Lock()
	s.webhooks = make(map[string]*domain.Webhook)
	s.webhookIndex = nil
	s.webhooksMu.Unlock()

	s.ledger.Clear()
}

func removeKey(index []string, key string) []string {
	for i, k := range index {
		if k == key {
			return append(index[:i], index[i+1:]...)
		}
	}
	return index
}
