package notify_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"fleetgate/internal/notify"
	"fleetgate/internal/notify/mocks"
)

//go:generate mockgen -source=mailer.go -destination=mocks/mailer_mock.go -package=mocks Mailer

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testRenderer(t *testing.T) *notify.Renderer {
	t.Helper()
	r, err := notify.NewRenderer(notify.Source{
		Name: "greeting",
		Text: "Hi {{.first_name}}",
		HTML: "<p>Hi {{.first_name}}</p>",
	})
	require.NoError(t, err)
	return r
}

func TestDispatcher_ProcessDelivers(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mocks.NewMockMailer(ctrl)

	queue := notify.NewMemoryQueue(8)
	d := notify.New(queue, testRenderer(t), mailer, testLogger())

	job := notify.NewJob("greeting", "Welcome", map[string]any{"first_name": "Jane"}, "jane@example.com")
	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg notify.Message) bool {
			assert.Equal(t, "Welcome", msg.Subject)
			assert.Equal(t, "Hi Jane", msg.Body.Text)
			assert.Equal(t, "<p>Hi Jane</p>", msg.Body.HTML)
			assert.Equal(t, []string{"jane@example.com"}, msg.Recipients)
			return true
		})

	state := d.Process(context.Background(), job)
	assert.Equal(t, notify.StateDelivered, state)
}

func TestDispatcher_RenderFailureIsFatalToJobOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mocks.NewMockMailer(ctrl)
	// No Send expectation: a render failure must never reach the transport.

	d := notify.New(notify.NewMemoryQueue(8), testRenderer(t), mailer, testLogger())

	t.Run("unknown template", func(t *testing.T) {
		job := notify.NewJob("no_such_template", "x", nil, "jane@example.com")
		assert.Equal(t, notify.StateFailedSilently, d.Process(context.Background(), job))
	})

	t.Run("unresolvable context key", func(t *testing.T) {
		job := notify.NewJob("greeting", "x", map[string]any{}, "jane@example.com")
		assert.Equal(t, notify.StateFailedSilently, d.Process(context.Background(), job))
	})
}

func TestDispatcher_TransportFailureIsSilent(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mocks.NewMockMailer(ctrl)
	// Exactly one attempt: the fail-silently policy never retries.
	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(false).Times(1)

	d := notify.New(notify.NewMemoryQueue(8), testRenderer(t), mailer, testLogger())
	job := notify.NewJob("greeting", "x", map[string]any{"first_name": "Jane"}, "jane@example.com")

	assert.Equal(t, notify.StateFailedSilently, d.Process(context.Background(), job))
}

func TestDispatcher_RunDrainsQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mocks.NewMockMailer(ctrl)

	var mu sync.Mutex
	delivered := 0
	done := make(chan struct{})
	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, notify.Message) bool {
			mu.Lock()
			delivered++
			if delivered == 5 {
				close(done)
			}
			mu.Unlock()
			return true
		}).Times(5)

	queue := notify.NewMemoryQueue(16)
	var states []notify.State
	var stateMu sync.Mutex
	d := notify.New(queue, testRenderer(t), mailer, testLogger(),
		notify.WithWorkers(3),
		notify.WithObserver(func(_ notify.Job, state notify.State) {
			stateMu.Lock()
			states = append(states, state)
			stateMu.Unlock()
		}))

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan error, 1)
	go func() { runDone <- d.Run(ctx) }()

	for range 5 {
		job := notify.NewJob("greeting", "hi", map[string]any{"first_name": "Jane"}, "jane@example.com")
		d.Enqueue(ctx, job)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("jobs not drained")
	}

	cancel()
	require.NoError(t, <-runDone)

	stateMu.Lock()
	defer stateMu.Unlock()
	assert.Len(t, states, 5)
	for _, st := range states {
		assert.Equal(t, notify.StateDelivered, st)
	}
}

func TestMemoryQueue_DropsWhenFull(t *testing.T) {
	queue := notify.NewMemoryQueue(1)
	require.NoError(t, queue.Enqueue(context.Background(), notify.NewJob("a", "s", nil)))
	err := queue.Enqueue(context.Background(), notify.NewJob("b", "s", nil))
	require.Error(t, err)
	assert.Equal(t, 1, queue.Len())
}

func TestRenderer_FailsFastOnBadSource(t *testing.T) {
	tests := []struct {
		name string
		src  notify.Source
	}{
		{"empty name", notify.Source{Text: "x"}},
		{"empty text body", notify.Source{Name: "a"}},
		{"unparsable text", notify.Source{Name: "a", Text: "{{.oops"}},
		{"unparsable html", notify.Source{Name: "a", Text: "ok", HTML: "{{.oops"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := notify.NewRenderer(tt.src)
			require.Error(t, err)
		})
	}

	t.Run("duplicate name", func(t *testing.T) {
		_, err := notify.NewRenderer(
			notify.Source{Name: "a", Text: "x"},
			notify.Source{Name: "a", Text: "y"},
		)
		require.Error(t, err)
	})

	t.Run("default sources parse clean", func(t *testing.T) {
		r, err := notify.NewRenderer(notify.DefaultSources()...)
		require.NoError(t, err)
		assert.True(t, r.Has(notify.TemplateRegistrationComplete))
		assert.True(t, r.Has(notify.TemplateAssetCreated))
		assert.True(t, r.Has(notify.TemplateSubscriptionLapsed))
	})
}
