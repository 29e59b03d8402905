package store

import (
	"context"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/errors"
)

// MemoryStore keeps snapshots in a map. It is the default when no external
// backend is configured and is what the service tests run against.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]*Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{games: make(map[string]*Snapshot)}
}

func (s *MemoryStore) Save(_ context.Context, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[snap.ID] = cloneSnapshot(snap)
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.games[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrGameNotFound, "snapshot %s", id)
	}
	return cloneSnapshot(snap), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
