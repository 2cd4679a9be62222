package requestlog

import (
	"strings"
	"sync"
	"time"

	"github.com/getmockd/printmock/internal/id"
)

// MemoryStore is an in-memory Store bounded to maxEntries.
type MemoryStore struct {
	mu         sync.RWMutex
	entries    []Entry
	maxEntries int
	now        func() time.Time
}

// NewMemoryStore creates a MemoryStore. A non-positive capacity selects
// DefaultMaxEntries.
func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryStore{
		entries:    make([]Entry, 0, maxEntries),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Capacity returns the maximum number of retained entries.
func (s *MemoryStore) Capacity() int { return s.maxEntries }

// Log stamps entry with an ID and timestamp, appends it and evicts the
// oldest entry when the ledger is full. It returns the stamped entry.
func (s *MemoryStore) Log(entry Entry) Entry {
	entry.ID = id.RequestID()
	entry.Timestamp = s.now()

	s.mu.Lock()
	if len(s.entries) >= s.maxEntries {
		s.entries = s.entries[1:]
	}
	s.entries = append(s.entries, entry.Clone())
	s.mu.Unlock()

	return entry
}

// Get retrieves an entry by ID.
func (s *MemoryStore) Get(entryID string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == entryID {
			return e.Clone(), true
		}
	}
	return Entry{}, false
}

// All returns a copy of every entry, oldest first.
func (s *MemoryStore) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntries(s.entries)
}

// Recent returns the last n entries, oldest first. n <= 0 selects
// DefaultRecent.
func (s *MemoryStore) Recent(n int) []Entry {
	if n <= 0 {
		n = DefaultRecent
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := max(len(s.entries)-n, 0)
	return cloneEntries(s.entries[start:])
}

func cloneEntries(entries []Entry) []Entry {
	result := make([]Entry, len(entries))
	for i, e := range entries {
		result[i] = e.Clone()
	}
	return result
}

// ByStatus returns entries with the given status code.
func (s *MemoryStore) ByStatus(code int) []Entry {
	return s.filter(func(e Entry) bool { return e.StatusCode == code })
}

// ByPath returns entries whose path equals path.
func (s *MemoryStore) ByPath(path string) []Entry {
	return s.filter(func(e Entry) bool { return e.Path == path })
}

func (s *MemoryStore) filter(keep func(Entry) bool) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Entry, 0)
	for _, e := range s.entries {
		if keep(e) {
			result = append(result, e.Clone())
		}
	}
	return result
}

// List returns entries matching filter, newest first.
func (s *MemoryStore) List(filter *Filter) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Entry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if filter != nil && !matchesFilter(e, filter) {
			continue
		}
		result = append(result, e.Clone())
	}

	if filter != nil {
		if filter.Offset > 0 {
			if filter.Offset >= len(result) {
				return []Entry{}
			}
			result = result[filter.Offset:]
		}
		if filter.Limit > 0 && filter.Limit < len(result) {
			result = result[:filter.Limit]
		}
	}
	return result
}

func matchesFilter(e Entry, f *Filter) bool {
	if f.Method != "" && !strings.EqualFold(e.Method, f.Method) {
		return false
	}
	if f.PathPrefix != "" && !strings.HasPrefix(e.Path, f.PathPrefix) {
		return false
	}
	if f.StatusCode != 0 && e.StatusCode != f.StatusCode {
		return false
	}
	return true
}

// Clear removes all entries.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.entries = make([]Entry, 0, s.maxEntries)
	s.mu.Unlock()
}

// Count returns the number of entries.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var _ Store = (*MemoryStore)(nil)
