package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/bhavishkl/NoQue/analytics"
	"github.com/bhavishkl/NoQue/history"
	"github.com/bhavishkl/NoQue/queue"
	"github.com/bhavishkl/NoQue/review"
)

// Worker consumes background tasks and recomputes analytics reports.
type Worker struct {
	queues  *queue.Store
	entries *history.Store
	reviews *review.Store
	cache   *analytics.ReportCache
	log     *logrus.Logger
}

func NewWorker(queues *queue.Store, entries *history.Store, reviews *review.Store, cache *analytics.ReportCache, log *logrus.Logger) *Worker {
	return &Worker{
		queues:  queues,
		entries: entries,
		reviews: reviews,
		cache:   cache,
		log:     log,
	}
}

// Run starts the asynq server and blocks until the context is canceled.
func (w *Worker) Run(ctx context.Context, redisAddr string) error {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 4,
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAnalyticsRefresh, w.HandleAnalyticsRefresh)

	if err := srv.Start(mux); err != nil {
		return fmt.Errorf("start task server: %w", err)
	}

	<-ctx.Done()
	srv.Shutdown()
	return nil
}

// HandleAnalyticsRefresh rebuilds the analytics report for a queue from its
// history window and reviews, then writes it to the cache.
func (w *Worker) HandleAnalyticsRefresh(ctx context.Context, t *asynq.Task) error {
	var payload AnalyticsRefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal analytics payload: %v: %w", err, asynq.SkipRetry)
	}

	report, err := w.BuildReport(ctx, payload.QueueID)
	if err != nil {
		return err
	}

	if err := w.cache.Set(ctx, payload.QueueID, *report); err != nil {
		return err
	}

	w.log.WithField("queue_id", payload.QueueID).Debug("analytics report refreshed")
	return nil
}

// BuildReport computes a fresh analytics report for a queue.
func (w *Worker) BuildReport(ctx context.Context, queueID string) (*analytics.Report, error) {
	q, err := w.queues.GetByID(ctx, queueID)
	if err != nil {
		return nil, fmt.Errorf("load queue %s: %w", queueID, err)
	}

	since := time.Now().UTC().AddDate(0, 0, -analytics.WindowDays)
	entries, err := w.entries.ListWindow(ctx, queueID, since)
	if err != nil {
		return nil, fmt.Errorf("load history window: %w", err)
	}

	ratings, err := w.reviews.Ratings(ctx, queueID)
	if err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}

	report := analytics.Compute(entries, ratings, q.EstimatedServiceTime)
	return &report, nil
}
