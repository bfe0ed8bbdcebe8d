package progression

import "sync"

// Store loads and saves the progression record. Implementations must
// default missing fields rather than fail on partial data.
type Store interface {
	Load() (Record, error)
	Save(Record) error
}

// MemStore is an in-memory Store.
type MemStore struct {
	mu  sync.Mutex
	rec Record
	set bool

	// Saves counts successful Save calls.
	Saves int
}

// NewMemStore creates a store holding r.
func NewMemStore(r Record) *MemStore {
	return &MemStore{rec: Merge(r.Clone()), set: true}
}

// Load returns a copy of the stored record, or the defaults.
func (s *MemStore) Load() (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return Defaults(), nil
	}
	return s.rec.Clone(), nil
}

// Save replaces the stored record.
func (s *MemStore) Save(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = r.Clone()
	s.set = true
	s.Saves++
	return nil
}
