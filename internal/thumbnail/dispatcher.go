// Package thumbnail is the enqueue-side boundary to the thumbnail
// worker. The worker consumes jobs from the queue and writes the
// 100/250/500 renditions beside the original content; it is a separate
// process and uploads must not depend on it being up.
package thumbnail

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Job struct {
	OwnerID uuid.UUID `json:"ownerId"`
	FileID  uuid.UUID `json:"fileId"`
}

// Dispatcher submits a job and returns as soon as it is queued. The
// caller observes only enqueue failure, never job outcome.
type Dispatcher interface {
	Enqueue(ctx context.Context, job Job) error
}

// RedisDispatcher pushes jobs onto a Redis list consumed by the
// worker.
type RedisDispatcher struct {
	client redis.UniversalClient
	queue  string
}

func NewRedisDispatcher(client redis.UniversalClient, queue string) *RedisDispatcher {
	return &RedisDispatcher{client: client, queue: queue}
}

func (d *RedisDispatcher) Enqueue(ctx context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.client.LPush(ctx, d.queue, payload).Err()
}

var _ Dispatcher = (*RedisDispatcher)(nil)
