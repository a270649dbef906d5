package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeAnalyticsRefresh = "analytics:refresh"

type AnalyticsRefreshPayload struct {
	QueueID string `json:"queue_id"`
}

// Client enqueues background work onto the redis-backed task queue.
type Client struct {
	inner *asynq.Client
}

func NewClient(redisAddr string) *Client {
	return &Client{
		inner: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
	}
}

func (c *Client) Close() error {
	return c.inner.Close()
}

// EnqueueAnalyticsRefresh schedules a recompute of a queue's analytics
// report. Duplicate pending tasks for the same queue are collapsed.
func (c *Client) EnqueueAnalyticsRefresh(queueID string) error {
	payload, err := json.Marshal(AnalyticsRefreshPayload{QueueID: queueID})
	if err != nil {
		return fmt.Errorf("marshal analytics payload: %w", err)
	}

	task := asynq.NewTask(TypeAnalyticsRefresh, payload)
	_, err = c.inner.Enqueue(task,
		asynq.TaskID(TypeAnalyticsRefresh+":"+queueID),
		asynq.MaxRetry(3),
	)
	if err != nil && err != asynq.ErrTaskIDConflict {
		return fmt.Errorf("enqueue analytics refresh: %w", err)
	}
	return nil
}
