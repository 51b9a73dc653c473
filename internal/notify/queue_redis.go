package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fleetgate/pkg/sentinel"
)

const defaultQueueKey = "fleetgate:notify:jobs"

// RedisQueue is a durable queue on a Redis list, for deployments where
// dispatcher workers run in separate processes from the HTTP frontends.
// LPUSH/BRPOP gives at-least-once hand-off across instances.
type RedisQueue struct {
	client *redis.Client
	key    string
}

type RedisQueueOption func(*RedisQueue)

// WithQueueKey overrides the Redis list key, mainly for tests.
func WithQueueKey(key string) RedisQueueOption {
	return func(q *RedisQueue) { q.key = key }
}

func NewRedisQueue(client *redis.Client, opts ...RedisQueueOption) *RedisQueue {
	q := &RedisQueue{client: client, key: defaultQueueKey}
	for _, opt := range opts {
		if opt != nil {
			opt(q)
		}
	}
	return q
}

func (q *RedisQueue) Enqueue(ctx context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job %s: %w", job.ID, err)
	}
	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("enqueue job %s: %w: %w", job.ID, sentinel.ErrUnavailable, err)
	}
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context) (Job, error) {
	for {
		// Bounded blocking pop so ctx cancellation is observed between polls.
		res, err := q.client.BRPop(ctx, 5*time.Second, q.key).Result()
		if errors.Is(err, redis.Nil) {
			if ctx.Err() != nil {
				return Job{}, ctx.Err()
			}
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return Job{}, ctx.Err()
			}
			return Job{}, fmt.Errorf("dequeue: %w: %w", sentinel.ErrUnavailable, err)
		}

		// BRPop returns [key, value].
		var job Job
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			return Job{}, fmt.Errorf("unmarshal job: %w", err)
		}
		return job, nil
	}
}
