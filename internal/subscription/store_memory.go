package subscription

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"fleetgate/pkg/sentinel"
)

// MemoryStore keeps subscriptions in memory.
type MemoryStore struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]Subscription
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subs: make(map[uuid.UUID]Subscription)}
}

func (s *MemoryStore) Upsert(ctx context.Context, sub Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub.UpdatedAt = time.Now().UTC()
	s.subs[sub.ID] = sub
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.subs[id]
	if !ok {
		return Subscription{}, sentinel.ErrNotFound
	}
	return sub, nil
}

func (s *MemoryStore) GetByAccount(ctx context.Context, account string) (Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sub := range s.subs {
		if sub.Account == account {
			return sub, nil
		}
	}
	return Subscription{}, sentinel.ErrNotFound
}

func (s *MemoryStore) DecrementAll(ctx context.Context) ([]Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	var lapsed []Subscription
	for id, sub := range s.subs {
		if sub.RemainingDays <= 0 {
			continue
		}
		sub.RemainingDays--
		sub.UpdatedAt = now
		s.subs[id] = sub
		if sub.RemainingDays == 0 {
			lapsed = append(lapsed, sub)
		}
	}
	return lapsed, nil
}
