package asset

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"fleetgate/pkg/sentinel"
)

// MemoryStore keeps assets in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	assets map[uuid.UUID]Asset
	byVIN  map[string]uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		assets: make(map[uuid.UUID]Asset),
		byVIN:  make(map[string]uuid.UUID),
	}
}

func (s *MemoryStore) Create(ctx context.Context, a Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byVIN[a.VIN]; taken {
		return sentinel.ErrConflict
	}
	s.assets[a.ID] = a
	s.byVIN[a.VIN] = a.ID
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assets[id]
	if !ok {
		return Asset{}, sentinel.ErrNotFound
	}
	return a, nil
}

func (s *MemoryStore) Rename(ctx context.Context, id uuid.UUID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	a.Name = name
	s.assets[id] = a
	return nil
}

func (s *MemoryStore) ListByAccount(ctx context.Context, account string) ([]Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Asset
	for _, a := range s.assets {
		if a.Account == account {
			out = append(out, a)
		}
	}
	return out, nil
}
