package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db: db,
	}
}

// InsertOpen appends an open entry for a fresh membership. It runs on the
// caller's transaction so a failed join leaves no dangling history.
func InsertOpen(ctx context.Context, ext sqlx.ExtContext, queueID string, queueName string, userID string, joinTime time.Time) error {
	_, err := ext.ExecContext(ctx,
		`INSERT INTO queue_member_history (id, queue_id, queue_name, user_id, join_time)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), queueID, queueName, userID, joinTime.UTC())
	if err != nil {
		return fmt.Errorf("insert open history entry: %w", err)
	}
	return nil
}

// CloseOpen closes the open entry for (queue, user) and returns how many
// rows it closed. Zero rows means the bookkeeping was already inconsistent;
// callers decide whether that is fatal.
func CloseOpen(ctx context.Context, ext sqlx.ExtContext, queueID string, userID string, status Status, exitTime time.Time, waitTime *int, serviceTime *int) (int64, error) {
	res, err := ext.ExecContext(ctx,
		`UPDATE queue_member_history
		 SET exit_time = $3, status = $4, wait_time = $5, service_time = $6
		 WHERE queue_id = $1 AND user_id = $2 AND exit_time IS NULL`,
		queueID, userID, exitTime.UTC(), status, waitTime, serviceTime)
	if err != nil {
		return 0, fmt.Errorf("close history entry: %w", err)
	}
	closed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("close history entry: rows affected: %w", err)
	}
	return closed, nil
}

// ListWindow returns all entries for a queue whose join time falls within
// the trailing window, oldest first.
func (s *Store) ListWindow(ctx context.Context, queueID string, since time.Time) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	entries := []Entry{}
	err := s.db.SelectContext(ctx, &entries,
		`SELECT id, queue_id, queue_name, user_id, join_time, exit_time, status, wait_time, service_time
		 FROM queue_member_history
		 WHERE queue_id = $1 AND join_time >= $2
		 ORDER BY join_time ASC`,
		queueID, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("list history window: %w", err)
	}
	return entries, nil
}

// RecentForUser returns the user's most recently terminated memberships.
func (s *Store) RecentForUser(ctx context.Context, userID string, limit int) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user uuid: %w", err)
	}

	statuses := make([]string, 0, len(TerminalStatuses))
	for _, s := range TerminalStatuses {
		statuses = append(statuses, string(s))
	}

	entries := []Entry{}
	err = s.db.SelectContext(ctx, &entries,
		`SELECT id, queue_id, queue_name, user_id, join_time, exit_time, status, wait_time, service_time
		 FROM queue_member_history
		 WHERE user_id = $1 AND status = ANY($2)
		 ORDER BY exit_time DESC
		 LIMIT $3`,
		userUUID, pq.Array(statuses), limit)
	if err != nil {
		return nil, fmt.Errorf("list recent history: %w", err)
	}
	return entries, nil
}
