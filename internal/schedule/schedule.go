// Package schedule runs the portal's periodic jobs. The job list is declared
// explicitly at startup; a bad cron expression is a construction error, not
// a runtime surprise.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one periodic task. Jobs receive a fresh context per run.
type Job func(ctx context.Context) error

// Entry binds a cron expression to a named job.
type Entry struct {
	// Spec is a standard 5-field cron expression, e.g. "0 0 * * *".
	Spec string
	Name string
	Job  Job
}

// Runner owns the cron scheduler.
type Runner struct {
	cron    *cron.Cron
	logger  *slog.Logger
	timeout time.Duration
}

type Option func(*Runner)

// WithJobTimeout bounds each job run. Zero means no deadline.
func WithJobTimeout(timeout time.Duration) Option {
	return func(r *Runner) { r.timeout = timeout }
}

// New registers every entry. A bad spec or an unnamed job fails construction.
func New(logger *slog.Logger, entries []Entry, opts ...Option) (*Runner, error) {
	r := &Runner{
		cron:    cron.New(),
		logger:  logger,
		timeout: time.Hour,
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, entry := range entries {
		if entry.Name == "" || entry.Job == nil {
			return nil, fmt.Errorf("schedule entry %q: name and job are required", entry.Spec)
		}
		entry := entry
		_, err := r.cron.AddFunc(entry.Spec, func() { r.run(entry) })
		if err != nil {
			return nil, fmt.Errorf("schedule entry %q (%s): %w", entry.Name, entry.Spec, err)
		}
	}
	return r, nil
}

func (r *Runner) run(entry Entry) {
	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	started := time.Now()
	if err := entry.Job(ctx); err != nil {
		r.logger.Error("scheduled job failed",
			"job", entry.Name,
			"error", err.Error(),
			"duration", time.Since(started).String(),
		)
		return
	}
	r.logger.Info("scheduled job finished",
		"job", entry.Name,
		"duration", time.Since(started).String(),
	)
}

// Start begins running entries on their schedules.
func (r *Runner) Start() { r.cron.Start() }

// Stop halts scheduling and waits for in-flight jobs.
func (r *Runner) Stop() {
	<-r.cron.Stop().Done()
}
