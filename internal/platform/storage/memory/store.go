package memory

import (
	"context"
	"sync"

	"github.com/callguard/spam-checker/internal/domain"
	"github.com/callguard/spam-checker/internal/service"
)

// historyCapacity bounds the activity log. Search only ever reads the last
// ten entries, so a small ring is plenty.
const historyCapacity = 100

// Store is the default process-lifetime cache: a mutex-guarded map with an
// insertion-order index so search scans are deterministic, plus a ring
// buffer for the activity log.
type Store struct {
	mu      sync.RWMutex
	results map[string]*domain.LookupResult
	order   []string

	history []*domain.HistoryEntry
	start   int
	count   int
}

func NewStore() *Store {
	return &Store{
		results: make(map[string]*domain.LookupResult),
		history: make([]*domain.HistoryEntry, historyCapacity),
	}
}

var _ service.Store = (*Store)(nil)

func (s *Store) Get(ctx context.Context, id string) (*domain.LookupResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results[id], nil
}

func (s *Store) Put(ctx context.Context, result *domain.LookupResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.results[result.ID]; !exists {
		s.order = append(s.order, result.ID)
	}
	s.results[result.ID] = result
	return nil
}

func (s *Store) All(ctx context.Context) ([]*domain.LookupResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*domain.LookupResult, 0, len(s.order))
	for _, id := range s.order {
		all = append(all, s.results[id])
	}
	return all, nil
}

func (s *Store) AppendHistory(ctx context.Context, entry *domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[(s.start+s.count)%historyCapacity] = entry
	if s.count < historyCapacity {
		s.count++
	} else {
		s.start = (s.start + 1) % historyCapacity
	}
	return nil
}

func (s *Store) RecentHistory(ctx context.Context, n int) ([]*domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > s.count {
		n = s.count
	}
	recent := make([]*domain.HistoryEntry, 0, n)
	for i := s.count - n; i < s.count; i++ {
		recent = append(recent, s.history[(s.start+i)%historyCapacity])
	}
	return recent, nil
}
