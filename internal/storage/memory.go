// Package storage provides client-side key/value persistence for the auth
// token and the cached user.
package storage

import (
	"context"
	"sync"

	"github.com/hammamikhairi/cookmate/internal/domain"
	"github.com/hammamikhairi/cookmate/internal/logger"
)

// Compile-time interface check.
var _ domain.KeyValueStore = (*MemoryStore)(nil)

// MemoryStore keeps values for the lifetime of the process. Safe for
// concurrent access.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	log    *logger.Logger
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
		log:    log,
	}
}

// Set stores value under key, overwriting any previous value.
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("storing key %s (%d bytes)", key, len(value))
	s.values[key] = value
	return nil
}

// Get retrieves the value under key.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		s.log.Debug("key not found: %s", key)
		return "", domain.ErrNotFound
	}
	return v, nil
}

// Delete removes key.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return domain.ErrNotFound
	}
	delete(s.values, key)
	s.log.Debug("deleted key %s", key)
	return nil
}
