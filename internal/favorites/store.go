// Package favorites keeps the user's favorite recipe ids and mirrors them to
// the backend.
package favorites

import "sync"

// Store is an in-memory set of recipe ids that remembers insertion order.
// Safe for concurrent use.
type Store struct {
	mu  sync.RWMutex
	ids []int
	set map[int]struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{set: make(map[int]struct{})}
}

// Add inserts id. It reports false when id was already present.
func (s *Store) Add(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.set[id]; ok {
		return false
	}
	s.set[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

// Remove deletes id. Removing a non-member is a no-op that reports false.
func (s *Store) Remove(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.set[id]; !ok {
		return false
	}
	delete(s.set, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return true
}

// Has reports whether id is a favorite.
func (s *Store) Has(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.set[id]
	return ok
}

// List returns the favorites in the order they were added.
func (s *Store) List() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]int(nil), s.ids...)
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// Replace swaps the whole set, dropping duplicates.
func (s *Store) Replace(ids []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = s.ids[:0]
	s.set = make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := s.set[id]; dup {
			continue
		}
		s.set[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
}
