package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db: db,
	}
}

// Insert validates and stores a review, then refreshes the queue's average
// rating in the same transaction.
func (s *Store) Insert(ctx context.Context, queueID string, userID string, rating int, comment string) (*Review, error) {
	if err := validate(rating, comment); err != nil {
		return nil, err
	}

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
		return nil, fmt.Errorf("begin review tx: %w", err)
	}
	defer tx.Rollback()

	r := Review{}
	err = tx.GetContext(ctx, &r,
		`INSERT INTO reviews (id, queue_id, user_id, rating, comment)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, queue_id, user_id, rating, comment, created_at`,
		uuid.New(), queueUUID, userUUID, rating, comment)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateReview
		}
		return nil, fmt.Errorf("insert review: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE queues
		 SET average_rating = (SELECT AVG(rating) FROM reviews WHERE queue_id = $1)
		 WHERE id = $1`, queueUUID)
	if err != nil {
		return nil, fmt.Errorf("update average rating: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit review tx: %w", err)
	}
	return &r, nil
}

func (s *Store) ListForQueue(ctx context.Context, queueID string) ([]Review, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	queueUUID, err := uuid.Parse(queueID)
	if err != nil {
		return nil, fmt.Errorf("parse queue uuid: %w", err)
	}

	reviews := []Review{}
	err = s.db.SelectContext(ctx, &reviews,
		`SELECT id, queue_id, user_id, rating, comment, created_at
		 FROM reviews WHERE queue_id = $1
		 ORDER BY created_at DESC`, queueUUID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// Ratings returns just the rating values for a queue, for analytics.
func (s *Store) Ratings(ctx context.Context, queueID string) ([]int, error) {
	queueUUID, err := uuid.Parse(queueID)
	if err != nil {
		return nil, fmt.Errorf("parse queue uuid: %w", err)
	}

	ratings := []int{}
	err = s.db.SelectContext(ctx, &ratings,
		`SELECT rating FROM reviews WHERE queue_id = $1`, queueUUID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}
