// Package requestlog keeps a bounded in-memory history of dispatched
// requests for inspection through the admin API.
package requestlog

import (
	"sync"
	"time"
)

// MatchKind says what a request resolved to.
type MatchKind string

const (
	MatchCustomAPI MatchKind = "customApi"
	MatchResource  MatchKind = "resource"
	MatchNone      MatchKind = "none"
)

// Entry is one dispatched request.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Match     MatchKind `json:"match"`
	// MatchedID is the custom API id or resource name that handled
	// the request, empty when nothing matched.
	MatchedID string `json:"matchedId,omitempty"`
	Status    int    `json:"status"`
	Duration  int64  `json:"durationMs"`
	Error     string `json:"error,omitempty"`
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Method string
	// Path is a prefix match.
	Path   string
	Match  MatchKind
	Status int
	Limit  int
	Offset int
}

// Log is a fixed-capacity FIFO of entries, newest evicting oldest.
type Log struct {
	mu      sync.RWMutex
	entries []*Entry
	max     int
	nextID  int64
}

// DefaultCapacity bounds the log when no capacity is configured.
const DefaultCapacity = 1000

// New creates a Log holding at most max entries.
func New(max int) *Log {
	if max <= 0 {
		max = DefaultCapacity
	}
	return &Log{entries: make([]*Entry, 0, max), max: max}
}

// Record appends an entry, evicting the oldest at capacity. The id
// and timestamp are filled in when unset.
func (l *Log) Record(entry *Entry) {
	if entry == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.ID == "" {
		l.nextID++
		entry.ID = "req-" + base36(l.nextID)
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	if len(l.entries) >= l.max {
		l.entries = l.entries[1:]
	}
	l.entries = append(l.entries, entry)
}

// Get returns the entry with the given id, or nil.
func (l *Log) Get(id string) *Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, e := range l.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// List returns entries newest first, narrowed by filter.
func (l *Log) List(filter *Filter) []*Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Entry, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		if filter != nil && !matches(e, filter) {
			continue
		}
		out = append(out, e)
	}

	if filter != nil {
		if filter.Offset > 0 {
			if filter.Offset >= len(out) {
				return []*Entry{}
			}
			out = out[filter.Offset:]
		}
		if filter.Limit > 0 && filter.Limit < len(out) {
			out = out[:filter.Limit]
		}
	}
	return out
}

// Clear drops all entries.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make([]*Entry, 0, l.max)
}

// Count returns the number of retained entries.
func (l *Log) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func matches(e *Entry, f *Filter) bool {
	if f.Method != "" && e.Method != f.Method {
		return false
	}
	if f.Path != "" && (len(e.Path) < len(f.Path) || e.Path[:len(f.Path)] != f.Path) {
		return false
	}
	if f.Match != "" && e.Match != f.Match {
		return false
	}
	if f.Status != 0 && e.Status != f.Status {
		return false
	}
	return true
}

func base36(n int64) string {
	const charset = "0123456789abcdefghijklmnopqrstuvwxyz"
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{charset[n%36]}, b...)
		n /= 36
	}
	return string(b)
}
