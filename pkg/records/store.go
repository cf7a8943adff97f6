// Package records holds the in-memory record collections backing
// resource definitions. All read-modify-write sequences go through the
// Store so concurrent item mutations to one resource serialize instead
// of losing updates.
package records

import (
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is a single item in a resource collection: arbitrary fields
// plus a unique "id" string and a "createdAt" RFC3339 timestamp.
type Record map[string]any

// ID returns the record's id field, or "" when absent.
func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	return Record(maps.Clone(map[string]any(r)))
}

// Store maps resource names to ordered record collections. Collections
// are created implicitly on first write. Stored order is insertion
// order; queries produce derived views and never reorder the store.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]Record
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{collections: make(map[string][]Record)}
}

// Collection returns a snapshot copy of a collection in stored order.
// Records are cloned so callers can decorate them (embed/expand)
// without touching stored state. Unknown names yield an empty slice.
func (s *Store) Collection(name string) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.collections[name]
	out := make([]Record, len(stored))
	for i, rec := range stored {
		out[i] = rec.Clone()
	}
	return out
}

// ReplaceAll swaps a collection wholesale. Used by generation and
// import; item mutations go through UpdateItem/DeleteItem instead.
func (s *Store) ReplaceAll(name string, recs []Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[name] = recs
}

// Append adds a record to the end of a collection, assigning a fresh id
// (any id in the input is overwritten) and a creation timestamp.
// Returns the stored record.
func (s *Store) Append(name string, rec Record) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := rec.Clone()
	if stored == nil {
		stored = Record{}
	}
	stored["id"] = uuid.NewString()
	stored["createdAt"] = time.Now().Format(time.RFC3339)

	s.collections[name] = append(s.collections[name], stored)
	return stored.Clone()
}

// Find looks up a record by id. The returned record is a copy.
func (s *Store) Find(name, id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.collections[name] {
		if rec.ID() == id {
			return rec.Clone(), true
		}
	}
	return nil, false
}

// UpdateItem shallow-merges patch into the record with the given id:
// patch keys overwrite, other keys are preserved, and the id is
// immutable. The merge happens under the store's write lock.
func (s *Store) UpdateItem(name, id string, patch map[string]any) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.collections[name] {
		if rec.ID() != id {
			continue
		}
		merged := rec.Clone()
		for k, v := range patch {
			merged[k] = v
		}
		merged["id"] = id
		s.collections[name][i] = merged
		return merged.Clone(), nil
	}
	return nil, &NotFoundError{Resource: name, ID: id}
}

// DeleteItem removes the record with the given id.
func (s *Store) DeleteItem(name, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.collections[name]
	for i, rec := range recs {
		if rec.ID() == id {
			s.collections[name] = append(recs[:i], recs[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Resource: name, ID: id}
}

// Count returns the number of records in a collection.
func (s *Store) Count(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[name])
}

// Drop removes a collection entirely (owning resource deleted).
func (s *Store) Drop(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, name)
}

// Names returns all collection names in sorted order for deterministic
// output.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
