package requestlog

// DefaultMaxEntries is the ledger capacity used when none is configured.
const DefaultMaxEntries = 1000

// DefaultRecent is the number of entries Recent returns for n <= 0.
const DefaultRecent = 100

// Logger is the minimal interface for recording requests. HTTP middleware
// accepts this interface so it can log into any ledger implementation.
type Logger interface {
	Log(entry Entry) Entry
}

// Store defines the ledger query operations. Returned entries are copies.
type Store interface {
	Logger

	// Get retrieves an entry by ID.
	Get(id string) (Entry, bool)

	// All returns every entry, oldest first.
	All() []Entry

	// Recent returns the last n entries, oldest first.
	Recent(n int) []Entry

	// ByStatus returns entries with the given status code, oldest first.
	ByStatus(code int) []Entry

	// ByPath returns entries whose path equals path, oldest first.
	ByPath(path string) []Entry

	// List returns entries matching filter, newest first.
	List(filter *Filter) []Entry

	// Clear removes all entries.
	Clear()

	// Count returns the number of entries.
	Count() int
}

// Filter defines criteria for List.
type Filter struct {
	// Method filters by HTTP method.
	Method string

	// PathPrefix filters by path prefix.
	PathPrefix string

	// StatusCode filters by response status code.
	StatusCode int

	// Limit is the maximum number of entries to return.
	Limit int

	// Offset is the number of entries to skip.
	Offset int
}
