package memory

import (
	"context"
	"sync"

	"github.com/bryanwahyu/credcheck/internal/domain/history"
)

// Store keeps the analysis log in process memory for the lifetime of the
// process. Writes are serialized; nothing is ever removed.
type Store struct {
	mu      sync.RWMutex
	records []*history.Record
	byID    map[string]*history.Record
}

func NewStore() *Store {
	return &Store{byID: make(map[string]*history.Record)}
}

// Save appends r to the end of the log.
func (s *Store) Save(ctx context.Context, r *history.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	if _, exists := s.byID[string(r.ID)]; !exists {
		s.byID[string(r.ID)] = r
	}
	return nil
}

// Recent returns the first n records in insertion order.
func (s *Store) Recent(ctx context.Context, n int) ([]*history.Record, error) {
	if n <= 0 {
		n = history.DefaultRecentLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > len(s.records) {
		n = len(s.records)
	}
	return clone(s.records[:n]), nil
}

func (s *Store) All(ctx context.Context) ([]*history.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.records), nil
}

func (s *Store) Get(ctx context.Context, id string) (*history.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[id]
	if !ok {
		return nil, history.ErrNotFound
	}
	return r, nil
}

// Len is the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func clone(in []*history.Record) []*history.Record {
	out := make([]*history.Record, len(in))
	copy(out, in)
	return out
}
