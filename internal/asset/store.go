package asset

import (
	"context"

	"github.com/google/uuid"
)

// Store persists assets. Create returns sentinel.ErrConflict when the VIN is
// already registered; lookups return sentinel.ErrNotFound.
type Store interface {
	Create(ctx context.Context, a Asset) error
	Get(ctx context.Context, id uuid.UUID) (Asset, error)
	Rename(ctx context.Context, id uuid.UUID, name string) error
	ListByAccount(ctx context.Context, account string) ([]Asset, error)
}
