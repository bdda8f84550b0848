package http

import (
	"sync"

	"gridcli/pkg/contracts/domain"
)

// Store holds canonical tables by ID. Tables are immutable value
// snapshots, so the mutex guards only the map itself; a handler that read
// a table keeps a consistent view even while a merge replaces it.
type Store struct {
	mu     sync.RWMutex
	tables map[string]*domain.Table
}

// NewStore creates an empty table store.
func NewStore() *Store {
	return &Store{tables: make(map[string]*domain.Table)}
}

// Put stores or replaces a table under its ID.
func (s *Store) Put(t *domain.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[t.ID] = t
}

// Get returns the table with the given ID.
func (s *Store) Get(id string) (*domain.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[id]
	return t, ok
}

// Len returns the number of stored tables.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables)
}
