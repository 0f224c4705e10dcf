package leadsync

import (
	"context"

	"leadsync_backend/platform/apperr"
	"leadsync_backend/platform/config"
	"leadsync_backend/platform/redisconn"

	"github.com/hibiken/asynq"
)

// Enqueuer submits sync jobs to the queue. Both the hourly dispatcher and the
// manual trigger go through this single operation so the payload shape is
// built in exactly one place.
type Enqueuer interface {
	EnqueueSync(ctx context.Context, count int) (jobID string, err error)
}

// Client enqueues sync jobs onto the asynq queue.
type Client struct {
	client   *asynq.Client
	queue    string
	maxRetry int
}

// NewClient creates a queue client from the queue configuration.
func NewClient(cfg config.QueueConfig) (*Client, error) {
	opt, err := redisconn.AsynqOpt(cfg)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetQueueName()
	if queue == "" {
		queue = "default"
	}

	return &Client{
		client:   asynq.NewClient(opt),
		queue:    queue,
		maxRetry: cfg.GetSyncMaxRetry(),
	}, nil
}

// Close releases the underlying queue connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueSync enqueues a sync job and returns immediately; it does not await
// job completion.
func (c *Client) EnqueueSync(ctx context.Context, count int) (string, error) {
	task, err := NewLeadSyncTask(SyncPayload{Count: count})
	if err != nil {
		return "", err
	}

	info, err := c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue), asynq.MaxRetry(c.maxRetry))
	if err != nil {
		return "", apperr.Wrap(apperr.KindUnavailable, "queue backend unavailable", err)
	}
	return info.ID, nil
}
