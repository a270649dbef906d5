package queue

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Position describes a member's place in line. Rank is 1-based; rank 1
// means "you are next" and contributes no wait of its own.
type Position struct {
	Rank          int       `json:"position"`
	EstimatedWait int       `json:"estimated_wait_minutes"`
	ExpectedAt    time.Time `json:"expected_at"`
}

// EstimatedWait converts a rank to a personalized wait in minutes. The
// caller's own slot is excluded: wait = (rank - 1) * minutes per member.
func EstimatedWait(rank int, serviceMinutes int) int {
	if rank <= 1 {
		return 0
	}
	return (rank - 1) * serviceMinutes
}

// ExpectedServiceAt computes when a member can expect service. If the queue
// opens at a fixed daily clock time that is still ahead of "now", the wait
// is anchored to that opening instead of the current instant. All math is
// in UTC.
func ExpectedServiceAt(now time.Time, serviceStart *string, waitMinutes int) time.Time {
	now = now.UTC()
	wait := time.Duration(waitMinutes) * time.Minute

	if serviceStart != nil {
		if clock, err := time.Parse("15:04", *serviceStart); err == nil {
			opening := time.Date(now.Year(), now.Month(), now.Day(),
				clock.Hour(), clock.Minute(), 0, 0, time.UTC)
			if now.Before(opening) {
				return opening.Add(wait)
			}
		}
	}
	return now.Add(wait)
}

// PositionOf derives the user's rank from join-time ordering (ties broken
// by membership id ascending) and their personalized wait. Returns nil when
// the user holds no membership in the queue.
func (s *Store) PositionOf(ctx context.Context, queueID string, userID string) (*Position, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	queueUUID, err := uuid.Parse(queueID)
	if err != nil {
		return nil, fmt.Errorf("parse queue uuid: %w", err)
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user uuid: %w", err)
	}

	q := struct {
		EstimatedServiceTime int     `db:"estimated_service_time"`
		ServiceStartTime     *string `db:"service_start_time"`
	}{}
	err = s.db.GetContext(ctx, &q,
		`SELECT estimated_service_time, service_start_time FROM queues WHERE id = $1`, queueUUID)
	if err != nil {
		return nil, err
	}

	member := struct {
		ID      uuid.UUID `db:"id"`
		Created time.Time `db:"created_at"`
	}{}
	err = s.db.GetContext(ctx, &member,
		`SELECT id, created_at FROM queue_members WHERE queue_id = $1 AND user_id = $2`,
		queueUUID, userUUID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get membership: %w", err)
	}

	var rank int
	err = s.db.GetContext(ctx, &rank,
		`SELECT COUNT(*) + 1 FROM queue_members
		 WHERE queue_id = $1
		   AND (created_at < $2 OR (created_at = $2 AND id < $3))`,
		queueUUID, member.Created, member.ID)
	if err != nil {
		return nil, fmt.Errorf("compute rank: %w", err)
	}

	wait := EstimatedWait(rank, q.EstimatedServiceTime)
	return &Position{
		Rank:          rank,
		EstimatedWait: wait,
		ExpectedAt:    ExpectedServiceAt(time.Now(), q.ServiceStartTime, wait),
	}, nil
}
