package prospects

import (
	"strings"
	"sync"
)

// Filter selects records the way the grid's multi-select filters do. An
// empty list means the dimension is unconstrained.
type Filter struct {
	Statuses  []string `json:"statuses,omitempty"`
	States    []string `json:"states,omitempty"`
	Companies []string `json:"companies,omitempty"`
}

// Match reports whether the record passes every constrained dimension.
func (f Filter) Match(r Record) bool {
	return matchAny(f.Statuses, r.Status) &&
		matchAny(f.States, r.State) &&
		matchAny(f.Companies, r.Company)
}

func matchAny(values []string, v string) bool {
	if len(values) == 0 {
		return true
	}
	for _, want := range values {
		if strings.EqualFold(want, v) {
			return true
		}
	}
	return false
}

// Store is the session's in-memory record collection. Iteration order is
// stable: records keep their import order, so exports are deterministic.
// There is one logical writer (the operating session) but the HTTP surface
// is concurrent at the transport level, hence the lock.
type Store struct {
	mu      sync.RWMutex
	records []Record
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// ReplaceAll swaps in a freshly imported record set.
func (s *Store) ReplaceAll(records []Record) {
	s.mu.Lock()
	s.records = append([]Record(nil), records...)
	s.mu.Unlock()
}

// Snapshot returns a copy of the full record set in stable order.
func (s *Store) Snapshot() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Record(nil), s.records...)
}

// Count returns the number of records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Get returns the record at the given position.
func (s *Store) Get(index int) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.records) {
		return Record{}, false
	}
	return s.records[index], true
}

// Update replaces the record at the given position in place.
func (s *Store) Update(index int, r Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.records) {
		return false
	}
	s.records[index] = r
	return true
}

// Append adds a record at the end of the collection.
func (s *Store) Append(r Record) {
	s.mu.Lock()
	s.records = append(s.records, r)
	s.mu.Unlock()
}

// Filtered returns a copy of the records matching the filter, in stable
// order.
func (s *Store) Filtered(f Filter) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Record
	for _, r := range s.records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// IncrementAttempts bumps the attempts counter for every record matching
// the filter under one lock, so the bulk update is atomic with respect to
// the visible record set. It returns how many records were updated.
func (s *Store) IncrementAttempts(f Filter) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := 0
	for i := range s.records {
		if f.Match(s.records[i]) {
			s.records[i].Attempts++
			updated++
		}
	}
	return updated
}
