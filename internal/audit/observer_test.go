package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetgate/internal/notify"
)

func TestNotificationObserver(t *testing.T) {
	store := NewMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	observer := NotificationObserver(pub)
	delivered := notify.NewJob(notify.TemplateRegistrationComplete, "subject", nil, "ada@example.com")
	failed := notify.NewJob(notify.TemplateAssetCreated, "subject", nil, "ops@example.com")

	observer(delivered, notify.StateDelivered)
	observer(failed, notify.StateFailedSilently)
	observer(failed, notify.StateRendering)

	events, err := store.ListByAction(context.Background(), ActionNotificationDelivered)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, notify.TemplateRegistrationComplete, events[0].Subject)
	assert.Equal(t, delivered.ID, events[0].Params["job_id"])

	events, err = store.ListByAction(context.Background(), ActionNotificationFailed)
	require.NoError(t, err)
	require.Len(t, events, 1)

	all, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2, "intermediate states are not audited")
}
