package device

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetgate/internal/validation"
	"fleetgate/pkg/sentinel"
)

type unreachableStore struct{}

func (unreachableStore) Get(context.Context, string) (Device, error) {
	return Device{}, errors.New("connection refused")
}
func (unreachableStore) Find(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}
func (unreachableStore) Save(context.Context, Device) error         { return nil }
func (unreachableStore) MarkAssigned(context.Context, string) error { return nil }

func TestUnassigned(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, Device{IMEI: "356938035643809"}))
	require.NoError(t, store.Save(ctx, Device{IMEI: "123456789012345", Assigned: true}))

	v := Unassigned(store)

	t.Run("free device passes", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, "356938035643809"))
	})

	t.Run("claimed device is invalid, not missing", func(t *testing.T) {
		err := v.Validate(ctx, "123456789012345")
		ve, ok := validation.AsError(err)
		require.True(t, ok)
		assert.Equal(t, validation.CodeInvalid, ve.Code)
		assert.Equal(t, "123456789012345", ve.Params["value"])
		assert.Contains(t, ve.Message(), "already assigned")
	})

	t.Run("missing device is left to the existence check", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, "999999999999999"))
	})

	t.Run("unreachable directory is infrastructure, not rejection", func(t *testing.T) {
		err := Unassigned(unreachableStore{}).Validate(ctx, "356938035643809")
		require.Error(t, err)
		_, ok := validation.AsError(err)
		assert.False(t, ok)
		assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	})
}
