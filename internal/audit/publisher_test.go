package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := NewMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	err := pub.Emit(context.Background(), Event{
		Action:  ActionSubmissionAccepted,
		Subject: "asset-form",
	})
	require.NoError(t, err)

	events, err := store.ListByAction(context.Background(), ActionSubmissionAccepted)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "asset-form", events[0].Subject)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestPublisher_AsyncMode(t *testing.T) {
	store := NewMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(10))
	defer pub.Close()

	err := pub.Emit(context.Background(), Event{Action: ActionNotificationDelivered})
	require.NoError(t, err)

	// Wait for async processing
	require.Eventually(t, func() bool {
		events, err := store.ListByAction(context.Background(), ActionNotificationDelivered)
		return err == nil && len(events) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := NewMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	for range 10 {
		err := pub.Emit(context.Background(), Event{Action: ActionAssetCreated})
		require.NoError(t, err)
	}

	// Close should drain all events
	pub.Close()

	events, err := store.ListByAction(context.Background(), ActionAssetCreated)
	require.NoError(t, err)
	assert.Len(t, events, 10, "all events should be drained on close")
}

func TestMemoryStore_ListByAction(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Append(context.Background(), Event{Action: ActionAssetCreated}))
	require.NoError(t, store.Append(context.Background(), Event{Action: ActionSubmissionRejected}))

	events, err := store.ListByAction(context.Background(), ActionAssetCreated)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	all, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
