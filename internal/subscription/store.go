package subscription

import (
	"context"

	"github.com/google/uuid"
)

// Store persists subscription balances. DecrementAll takes one day off every
// active subscription and returns the ones that lapsed in this pass.
type Store interface {
	Upsert(ctx context.Context, sub Subscription) error
	Get(ctx context.Context, id uuid.UUID) (Subscription, error)
	GetByAccount(ctx context.Context, account string) (Subscription, error)
	DecrementAll(ctx context.Context) ([]Subscription, error)
}
