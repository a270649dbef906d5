package queue

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Aggregate is the queue's derived summary: live member count and the
// total estimated wait (count * minutes per member).
type Aggregate struct {
	MemberCount        int `json:"member_count"`
	TotalEstimatedWait int `json:"total_estimated_wait_time"`
}

func aggregateFor(live int, serviceMinutes int) Aggregate {
	return Aggregate{
		MemberCount:        live,
		TotalEstimatedWait: live * serviceMinutes,
	}
}

// recomputeAggregate counts live membership rows and writes the cached
// columns back, skipping the write when nothing changed so repeated calls
// are idempotent.
func recomputeAggregate(ctx context.Context, ext sqlx.ExtContext, queueUUID uuid.UUID, serviceMinutes int) (Aggregate, error) {
	var live int
	err := sqlx.GetContext(ctx, ext, &live,
		`SELECT COUNT(*) FROM queue_members WHERE queue_id = $1`, queueUUID)
	if err != nil {
		return Aggregate{}, fmt.Errorf("count live members: %w", err)
	}

	agg := aggregateFor(live, serviceMinutes)

	_, err = ext.ExecContext(ctx,
		`UPDATE queues SET member_count = $2, total_estimated_wait_time = $3
		 WHERE id = $1 AND (member_count IS DISTINCT FROM $2 OR total_estimated_wait_time IS DISTINCT FROM $3)`,
		queueUUID, agg.MemberCount, agg.TotalEstimatedWait)
	if err != nil {
		return Aggregate{}, fmt.Errorf("write aggregate: %w", err)
	}
	return agg, nil
}

// Recompute refreshes a queue's cached aggregate from live membership rows.
func (s *Store) Recompute(ctx context.Context, queueID string) (Aggregate, error) {
	queueUUID, err := uuid.Parse(queueID)
	if err != nil {
		return Aggregate{}, fmt.Errorf("parse queue uuid: %w", err)
	}

	var serviceMinutes int
	err = s.db.GetContext(ctx, &serviceMinutes,
		`SELECT estimated_service_time FROM queues WHERE id = $1`, queueUUID)
	if err != nil {
		return Aggregate{}, err
	}

	return recomputeAggregate(ctx, s.db, queueUUID, serviceMinutes)
}

// LiveCount returns the live membership count, bypassing the cache.
func (s *Store) LiveCount(ctx context.Context, queueID string) (int, error) {
	queueUUID, err := uuid.Parse(queueID)
	if err != nil {
		return 0, fmt.Errorf("parse queue uuid: %w", err)
	}
	var live int
	err = s.db.GetContext(ctx, &live,
		`SELECT COUNT(*) FROM queue_members WHERE queue_id = $1`, queueUUID)
	if err != nil {
		return 0, fmt.Errorf("count live members: %w", err)
	}
	return live, nil
}
