package device

import "context"

// Store is the device directory. Find reports whether a unit with the
// given IMEI is known; Get returns the full record.
type Store interface {
	Get(ctx context.Context, imei string) (Device, error)
	Find(ctx context.Context, imei string) (bool, error)
	Save(ctx context.Context, dev Device) error
	MarkAssigned(ctx context.Context, imei string) error
}
