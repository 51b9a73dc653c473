package device

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetgate/pkg/sentinel"
)

func TestMemoryStore_FindAndAssign(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, Device{IMEI: "356938035643809", Model: "FMB920"}))

	found, err := store.Find(ctx, "356938035643809")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = store.Find(ctx, "000000000000000")
	require.NoError(t, err)
	assert.False(t, found)

	dev, err := store.Get(ctx, "356938035643809")
	require.NoError(t, err)
	assert.False(t, dev.Assigned)

	require.NoError(t, store.MarkAssigned(ctx, "356938035643809"))

	dev, err = store.Get(ctx, "356938035643809")
	require.NoError(t, err)
	assert.True(t, dev.Assigned, "claimed device stays claimed")

	err = store.MarkAssigned(ctx, "000000000000000")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
