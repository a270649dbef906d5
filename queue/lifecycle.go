package queue

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/bhavishkl/NoQue/history"
	"github.com/bhavishkl/NoQue/monitoring"
	"github.com/google/uuid"
)

// queueForUpdate is the slice of the queue row the lifecycle operations
// lock. Taking FOR UPDATE on the queue row serializes concurrent
// membership mutations per queue, so the cached aggregate can't lose an
// update; the unique constraint on (queue_id, user_id) still backstops
// double joins.
type queueForUpdate struct {
	Name                 string    `db:"name"`
	OwnerID              uuid.UUID `db:"owner_id"`
	IsPaused             bool      `db:"is_paused"`
	MaxCapacity          int       `db:"max_capacity"`
	EstimatedServiceTime int       `db:"estimated_service_time"`
}

// Join inserts a membership for (queue, user), appends the open history
// entry, and recomputes the aggregate, all in one transaction.
func (s *Store) Join(ctx context.Context, queueID string, userID string) (*Member, error) {
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

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin join tx: %w", err)
	}
	defer tx.Rollback()

	q := queueForUpdate{}
	err = tx.GetContext(ctx, &q,
		`SELECT name, owner_id, is_paused, max_capacity, estimated_service_time
		 FROM queues WHERE id = $1 FOR UPDATE`, queueUUID)
	if err != nil {
		return nil, err
	}
	if q.IsPaused {
		return nil, ErrQueuePaused
	}

	var live int
	err = tx.GetContext(ctx, &live,
		`SELECT COUNT(*) FROM queue_members WHERE queue_id = $1`, queueUUID)
	if err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}
	if q.MaxCapacity > 0 && live >= q.MaxCapacity {
		return nil, ErrQueueFull
	}

	member := Member{
		ID:      uuid.New().String(),
		QueueID: queueID,
		UserID:  userID,
		Created: time.Now().UTC(),
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO queue_members (id, queue_id, user_id, created_at)
		 VALUES ($1, $2, $3, $4)`,
		member.ID, queueUUID, userUUID, member.Created)
	if isUniqueViolation(err) {
		monitoring.RecordQueueOperation("join", "already_joined")
		return nil, ErrAlreadyJoined
	}
	if err != nil {
		return nil, fmt.Errorf("insert membership: %w", err)
	}

	err = history.InsertOpen(ctx, tx, queueID, q.Name, userID, member.Created)
	if err != nil {
		return nil, err
	}

	agg, err := recomputeAggregate(ctx, tx, queueUUID, q.EstimatedServiceTime)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit join tx: %w", err)
	}

	monitoring.RecordQueueOperation("join", "ok")
	monitoring.SetLiveMembers(queueID, agg.MemberCount)
	return &member, nil
}

// Leave removes the caller's membership and closes its history entry with
// status "left".
func (s *Store) Leave(ctx context.Context, queueID string, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	queueUUID, err := uuid.Parse(queueID)
	if err != nil {
		return fmt.Errorf("parse queue uuid: %w", err)
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("parse user uuid: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin leave tx: %w", err)
	}
	defer tx.Rollback()

	q := queueForUpdate{}
	err = tx.GetContext(ctx, &q,
		`SELECT name, owner_id, is_paused, max_capacity, estimated_service_time
		 FROM queues WHERE id = $1 FOR UPDATE`, queueUUID)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM queue_members WHERE queue_id = $1 AND user_id = $2`,
		queueUUID, userUUID)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete membership: rows affected: %w", err)
	}
	if deleted == 0 {
		monitoring.RecordQueueOperation("leave", "not_in_queue")
		return ErrNotInQueue
	}

	closed, err := history.CloseOpen(ctx, tx, queueID, userID, history.StatusLeft, time.Now().UTC(), nil, nil)
	if err != nil {
		return err
	}
	if closed == 0 {
		s.log.WithField("queue_id", queueID).WithField("user_id", userID).
			Warn("membership removed with no open history entry")
		monitoring.RecordHistoryAnomaly()
	}

	agg, err := recomputeAggregate(ctx, tx, queueUUID, q.EstimatedServiceTime)
	if err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit leave tx: %w", err)
	}

	monitoring.RecordQueueOperation("leave", "ok")
	monitoring.SetLiveMembers(queueID, agg.MemberCount)
	return nil
}

// MarkStatus terminates a membership by id as "served" or "no-show". Only
// the queue owner may call it. A missing open history entry is recorded as
// an anomaly but does not fail the removal.
func (s *Store) MarkStatus(ctx context.Context, memberID string, queueID string, ownerID string, status history.Status) error {
	if status != history.StatusServed && status != history.StatusNoShow {
		return fmt.Errorf("invalid terminal status %q", status)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	queueUUID, err := uuid.Parse(queueID)
	if err != nil {
		return fmt.Errorf("parse queue uuid: %w", err)
	}
	memberUUID, err := uuid.Parse(memberID)
	if err != nil {
		return fmt.Errorf("parse member uuid: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin mark-status tx: %w", err)
	}
	defer tx.Rollback()

	q := queueForUpdate{}
	err = tx.GetContext(ctx, &q,
		`SELECT name, owner_id, is_paused, max_capacity, estimated_service_time
		 FROM queues WHERE id = $1 FOR UPDATE`, queueUUID)
	if err != nil {
		return err
	}
	if q.OwnerID.String() != ownerID {
		return ErrNotOwner
	}

	member := struct {
		UserID  uuid.UUID `db:"user_id"`
		Created time.Time `db:"created_at"`
	}{}
	err = tx.GetContext(ctx, &member,
		`SELECT user_id, created_at FROM queue_members WHERE id = $1 AND queue_id = $2`,
		memberUUID, queueUUID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	var waitTime *int
	if status == history.StatusServed {
		minutes := int(math.Round(now.Sub(member.Created).Minutes()))
		if minutes < 0 {
			minutes = 0
		}
		waitTime = &minutes
	}
	serviceTime := q.EstimatedServiceTime

	closed, err := history.CloseOpen(ctx, tx, queueID, member.UserID.String(), status, now, waitTime, &serviceTime)
	if err != nil {
		return err
	}
	if closed == 0 {
		s.log.WithField("queue_id", queueID).WithField("member_id", memberID).
			Warn("member terminated with no open history entry")
		monitoring.RecordHistoryAnomaly()
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM queue_members WHERE id = $1`, memberUUID)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}

	agg, err := recomputeAggregate(ctx, tx, queueUUID, q.EstimatedServiceTime)
	if err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit mark-status tx: %w", err)
	}

	monitoring.RecordQueueOperation("mark_"+string(status), "ok")
	monitoring.SetLiveMembers(queueID, agg.MemberCount)
	return nil
}
