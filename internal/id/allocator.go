package id

import (
	"strconv"
	"sync"
)

// FirstSequentialOrderID is the first value handed out by a Sequential
// allocator.
const FirstSequentialOrderID = 1_000_000

// Allocator hands out order identifiers.
type Allocator interface {
	// Next returns a new identifier.
	Next() string
}

// Strategy names an Allocator implementation.
type Strategy string

// Allocation strategies.
const (
	StrategySequential Strategy = "sequential"
	StrategyRandom     Strategy = "random"
)

// Sequential is a monotonic counter starting at FirstSequentialOrderID.
// It is safe for concurrent use.
type Sequential struct {
	mu   sync.Mutex
	next int64
}

// NewSequential creates a counter positioned at FirstSequentialOrderID.
func NewSequential() *Sequential {
	return &Sequential{next: FirstSequentialOrderID}
}

// Next returns the current counter value and advances it by one.
func (s *Sequential) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.next
	s.next++
	return strconv.FormatInt(v, 10)
}

// Peek returns the value the next call to Next will return.
func (s *Sequential) Peek() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// Reset moves the counter back to FirstSequentialOrderID.
func (s *Sequential) Reset() {
	s.mu.Lock()
	s.next = FirstSequentialOrderID
	s.mu.Unlock()
}

// Random allocates random 10-digit identifiers via OrderID.
type Random struct{}

// Next returns a random 10-digit identifier.
func (Random) Next() string { return OrderID() }

// ParseStrategy maps a config string to a Strategy. Unknown values fall
// back to StrategyRandom.
func ParseStrategy(s string) Strategy {
	if Strategy(s) == StrategySequential {
		return StrategySequential
	}
	return StrategyRandom
}
