package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"fleetgate/internal/platform/metrics"
	"fleetgate/pkg/sentinel"
)

// Dispatcher drains the queue with a pool of workers. Each job walks
// Queued -> Rendering -> Sending -> {Delivered, FailedSilently}; both render
// and transport failures are terminal with no retry, observable only through
// logs, metrics, and the optional observer hook.
type Dispatcher struct {
	queue    Queue
	renderer *Renderer
	mailer   Mailer
	logger   *slog.Logger

	workers  int
	metrics  *metrics.Metrics
	observer func(Job, State)
}

type Option func(*Dispatcher)

// WithWorkers sets the worker pool size.
func WithWorkers(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.workers = n
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithObserver registers a hook invoked once per job with its terminal
// state. Used to feed the audit trail without coupling workers to it.
func WithObserver(fn func(Job, State)) Option {
	return func(d *Dispatcher) { d.observer = fn }
}

func New(queue Queue, renderer *Renderer, mailer Mailer, logger *slog.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		queue:    queue,
		renderer: renderer,
		mailer:   mailer,
		logger:   logger,
		workers:  4,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Enqueue hands a job to the queue, fire-and-forget: the caller is never
// blocked and never sees a dispatch failure. A full queue drops the job
// (counted and logged); an unreachable queue backend is logged the same way.
func (d *Dispatcher) Enqueue(ctx context.Context, job Job) {
	err := d.queue.Enqueue(ctx, job)
	if err == nil {
		return
	}
	if errors.Is(err, sentinel.ErrQueueFull) {
		if d.metrics != nil {
			d.metrics.NotificationsDropped.Inc()
		}
		d.logger.WarnContext(ctx, "notification dropped, queue full",
			"job_id", job.ID,
			"template", job.TemplateID,
		)
		return
	}
	d.logger.ErrorContext(ctx, "notification enqueue failed",
		"job_id", job.ID,
		"template", job.TemplateID,
		"error", err.Error(),
	)
}

// Run blocks draining the queue until ctx is cancelled. Dequeue errors other
// than cancellation are logged and retried after a short pause so one queue
// hiccup doesn't kill the pool.
func (d *Dispatcher) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < d.workers; i++ {
		g.Go(func() error {
			for {
				job, err := d.queue.Dequeue(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					d.logger.ErrorContext(ctx, "dequeue failed", "error", err.Error())
					select {
					case <-ctx.Done():
						return nil
					case <-time.After(time.Second):
					}
					continue
				}
				d.Process(ctx, job)
			}
		})
	}
	return g.Wait()
}

// Process runs one job to a terminal state and reports it. Exported so the
// scheduler's synchronous jobs and tests can execute the same state machine
// the pool does.
func (d *Dispatcher) Process(ctx context.Context, job Job) State {
	state := d.process(ctx, job)
	switch state {
	case StateDelivered:
		if d.metrics != nil {
			d.metrics.NotificationsDelivered.Inc()
		}
	case StateFailedSilently:
		if d.metrics != nil {
			d.metrics.NotificationsFailed.Inc()
		}
	}
	if d.observer != nil {
		d.observer(job, state)
	}
	return state
}

func (d *Dispatcher) process(ctx context.Context, job Job) State {
	// Rendering: deterministic failures, retrying cannot help.
	body, err := d.renderer.Render(job.TemplateID, job.Context)
	if err != nil {
		d.logger.WarnContext(ctx, "notification render failed",
			"job_id", job.ID,
			"template", job.TemplateID,
			"error", err.Error(),
		)
		return StateFailedSilently
	}

	// Sending: the mailer absorbs transport errors into the boolean.
	delivered := d.mailer.Send(ctx, Message{
		Subject:    job.Subject,
		Body:       body,
		Recipients: job.Recipients,
		BCC:        job.BCC,
		ReplyTo:    job.ReplyTo,
	})
	if !delivered {
		d.logger.WarnContext(ctx, "notification not delivered",
			"job_id", job.ID,
			"template", job.TemplateID,
		)
		return StateFailedSilently
	}

	d.logger.InfoContext(ctx, "notification delivered",
		"job_id", job.ID,
		"template", job.TemplateID,
		"recipients", len(job.Recipients),
	)
	return StateDelivered
}
