package device

import (
	"context"
	"errors"
	"fmt"

	"fleetgate/internal/validation"
	"fleetgate/pkg/sentinel"
)

// DirectoryLookup adapts the store's existence check to the shape the
// field validators consume.
func DirectoryLookup(store Store) validation.Lookup {
	return validation.LookupFunc(func(ctx context.Context, imei string) (bool, error) {
		return store.Find(ctx, imei)
	})
}

// Unassigned rejects IMEIs that are already bound to an asset. A unit that
// is missing from the directory is left to the existence check, so the two
// validators never double-report the same value.
func Unassigned(store Store) validation.Validator {
	return validation.Func(func(ctx context.Context, imei string) error {
		dev, err := store.Get(ctx, imei)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("device lookup: %w: %w", sentinel.ErrUnavailable, err)
		}
		if dev.Assigned {
			return &validation.Error{
				Code:            validation.CodeInvalid,
				MessageTemplate: "device '{value}' is already assigned to an asset",
				Params:          map[string]string{"value": imei},
			}
		}
		return nil
	})
}
