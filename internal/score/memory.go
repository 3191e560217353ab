package score

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used by tests and dry runs.
type MemoryStore struct {
	mu           sync.Mutex
	defaultScore int
	order        []string
	entries      map[string]Entry
	closed       bool
}

// NewMemoryStore creates an empty store that reports defaultScore for unknown ids.
func NewMemoryStore(defaultScore int) *MemoryStore {
	return &MemoryStore{
		defaultScore: defaultScore,
		entries:      make(map[string]Entry),
	}
}

func (s *MemoryStore) Get(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrStoreClosed
	}
	if e, ok := s.entries[id]; ok {
		return e.Score, nil
	}
	return s.defaultScore, nil
}

func (s *MemoryStore) Set(id string, score int, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	if _, ok := s.entries[id]; !ok {
		s.order = append(s.order, id)
	}
	s.entries[id] = Entry{ID: id, Score: score, LastPlayed: at}
	return nil
}

func (s *MemoryStore) ListAll() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStoreClosed
	}
	result := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.entries[id])
	}
	slices.SortStableFunc(result, func(a, b Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return result, nil
}

func (s *MemoryStore) Register(ids ...string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrStoreClosed
	}
	added := 0
	now := time.Now()
	for _, id := range ids {
		if _, ok := s.entries[id]; ok {
			continue
		}
		s.order = append(s.order, id)
		s.entries[id] = Entry{ID: id, Score: s.defaultScore, LastPlayed: now}
		added++
	}
	return added, nil
}

// Close makes every further call fail with ErrStoreClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Verify MemoryStore implements Store at compile time.
var _ Store = (*MemoryStore)(nil)
