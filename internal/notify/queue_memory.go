package notify

import (
	"context"
	"fmt"

	"fleetgate/pkg/sentinel"
)

// Queue is the shared append-only channel between submission services and
// dispatcher workers. Multiple producers may enqueue concurrently without
// coordination; jobs are independent and order-insensitive.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	// Dequeue blocks until a job is available or ctx is done.
	Dequeue(ctx context.Context) (Job, error)
}

// MemoryQueue is a bounded in-process queue. Enqueue never blocks: when the
// buffer is full the job is refused with sentinel.ErrQueueFull and the
// caller decides whether dropping is acceptable.
type MemoryQueue struct {
	jobs chan Job
}

func NewMemoryQueue(buffer int) *MemoryQueue {
	if buffer <= 0 {
		buffer = 256
	}
	return &MemoryQueue{jobs: make(chan Job, buffer)}
}

func (q *MemoryQueue) Enqueue(_ context.Context, job Job) error {
	select {
	case q.jobs <- job:
		return nil
	default:
		return fmt.Errorf("enqueue %s: %w", job.TemplateID, sentinel.ErrQueueFull)
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context) (Job, error) {
	select {
	case <-ctx.Done():
		return Job{}, ctx.Err()
	case job := <-q.jobs:
		return job, nil
	}
}

// Len reports the number of queued jobs, for tests and health endpoints.
func (q *MemoryQueue) Len() int { return len(q.jobs) }
