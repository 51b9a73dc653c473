package customer

import (
	"context"
	"strings"
	"sync"

	"fleetgate/pkg/sentinel"
)

// MemoryStore keeps accounts in memory, keyed by lowercased username.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]Customer
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]Customer)}
}

func (s *MemoryStore) Create(ctx context.Context, c Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(c.Username)
	if _, taken := s.users[key]; taken {
		return sentinel.ErrConflict
	}
	s.users[key] = c
	return nil
}

func (s *MemoryStore) FindByUsername(ctx context.Context, username string) (Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.users[strings.ToLower(username)]
	if !ok {
		return Customer{}, sentinel.ErrNotFound
	}
	return c, nil
}

func (s *MemoryStore) Exists(ctx context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[strings.ToLower(username)]
	return ok, nil
}
