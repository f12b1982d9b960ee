// Package memory keeps browser-context storage in process memory. It backs
// STORAGE_BACKEND=memory and the tests; snapshots survive provider eviction
// but not a process restart.
package memory

import (
	"context"
	"sync"

	"github.com/roseyco/agency-portal/internal/core/ports"
)

// Store holds every context's keys in one map, namespaced by context id.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewStore() *Store {
	return &Store{data: make(map[string]string)}
}

// ForContext returns the namespace of one browser context.
func (s *Store) ForContext(contextID string) ports.KeyValueStore {
	return &scoped{store: s, prefix: contextID + ":"}
}

// Len reports the number of keys across all contexts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

type scoped struct {
	store  *Store
	prefix string
}

func (s *scoped) Get(_ context.Context, key string) (string, bool, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	v, ok := s.store.data[s.prefix+key]
	return v, ok, nil
}

func (s *scoped) Set(_ context.Context, key, value string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.data[s.prefix+key] = value
	return nil
}

func (s *scoped) Delete(_ context.Context, key string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	delete(s.store.data, s.prefix+key)
	return nil
}
