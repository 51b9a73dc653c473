package customer

import (
	"context"

	"fleetgate/internal/validation"
)

// Store persists customer accounts. Create returns sentinel.ErrConflict when
// the username is already taken; FindByUsername returns sentinel.ErrNotFound.
type Store interface {
	Create(ctx context.Context, c Customer) error
	FindByUsername(ctx context.Context, username string) (Customer, error)
	Exists(ctx context.Context, username string) (bool, error)
}

// UsernameLookup adapts the store's existence check for the login form's
// username validator.
func UsernameLookup(store Store) validation.Lookup {
	return validation.LookupFunc(func(ctx context.Context, username string) (bool, error) {
		return store.Exists(ctx, username)
	})
}
