package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/patchbay/pkg/domain"
	"github.com/aretw0/patchbay/pkg/snapshot"
)

// Store is an in-memory snapshot store, fit for tests and single
// process use. Snapshots are stored as JSON so callers cannot reach
// back into saved state.
type Store struct {
	mu    sync.RWMutex
	items map[string][]byte
}

var _ snapshot.Store = (*Store)(nil)

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{items: make(map[string][]byte)}
}

// Save stores a snapshot under key, replacing any previous value.
func (s *Store) Save(ctx context.Context, key string, snap *snapshot.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("memory: marshaling snapshot %q: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = payload
	return nil
}

// Load returns the snapshot stored under key, or
// domain.ErrSnapshotNotFound.
func (s *Store) Load(ctx context.Context, key string) (*snapshot.Snapshot, error) {
	s.mu.RLock()
	payload, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	var snap snapshot.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("memory: unmarshaling snapshot %q: %w", key, err)
	}
	return &snap, nil
}

// Delete removes the snapshot stored under key, if any.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// Keys lists stored keys in lexical order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
