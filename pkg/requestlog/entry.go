package requestlog

import "time"

// Entry is one recorded request.
type Entry struct {
	// ID is assigned by the store: req_<epoch-ms>_<base36>.
	ID string `json:"id"`

	// Timestamp is assigned by the store when the entry is logged.
	Timestamp time.Time `json:"timestamp"`

	Method     string `json:"method"`
	Path       string `json:"path"`
	StatusCode int    `json:"statusCode"`

	// Duration is the request processing time in milliseconds.
	Duration int64 `json:"duration"`

	// APIKey is the key the caller presented, if any. It is recorded only,
	// never used to scope data.
	APIKey string `json:"apiKey,omitempty"`

	// RequestBody and ResponseBody are decoded JSON snapshots: nil, a map,
	// a slice or a scalar. Non-JSON bodies are kept as strings.
	RequestBody  any `json:"requestBody,omitempty"`
	ResponseBody any `json:"responseBody,omitempty"`
}

// Clone returns a copy of e whose body snapshots share no maps or slices
// with e.
func (e Entry) Clone() Entry {
	e.RequestBody = cloneJSON(e.RequestBody)
	e.ResponseBody = cloneJSON(e.ResponseBody)
	return e
}

// cloneJSON deep-copies a decoded JSON value. Scalars are returned as is.
func cloneJSON(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, child := range t {
			m[k] = cloneJSON(child)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, child := range t {
			s[i] = cloneJSON(child)
		}
		return s
	default:
		return v
	}
}
