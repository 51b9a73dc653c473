package device

import (
	"context"
	"sync"

	"fleetgate/pkg/sentinel"
)

// MemoryStore keeps the device directory in memory. Used in tests and
// when no database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	devices map[string]Device
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{devices: make(map[string]Device)}
}

func (s *MemoryStore) Get(ctx context.Context, imei string) (Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dev, ok := s.devices[imei]
	if !ok {
		return Device{}, sentinel.ErrNotFound
	}
	return dev, nil
}

func (s *MemoryStore) Find(ctx context.Context, imei string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.devices[imei]
	return ok, nil
}

func (s *MemoryStore) Save(ctx context.Context, dev Device) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.devices[dev.IMEI] = dev
	return nil
}

func (s *MemoryStore) MarkAssigned(ctx context.Context, imei string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	dev, ok := s.devices[imei]
	if !ok {
		return sentinel.ErrNotFound
	}
	dev.Assigned = true
	s.devices[imei] = dev
	return nil
}
