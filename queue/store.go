package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
)

const uidAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

type Store struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewStore(db *sqlx.DB, log *logrus.Logger) *Store {
	return &Store{
		db:  db,
		log: log,
	}
}

type InsertQueueParams struct {
	OwnerID              string `json:"owner_id"`
	Name                 string `json:"name"`
	Description          string `json:"description"`
	Location             string `json:"location"`
	Category             string `json:"category"`
	EstimatedServiceTime int    `json:"estimated_service_time"`
	MaxCapacity          int    `json:"max_capacity"`
}

func (s *Store) Insert(ctx context.Context, params InsertQueueParams) (*Queue, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	ownerUUID, err := uuid.Parse(params.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("parse owner uuid: %w", err)
	}

	uid, err := gonanoid.Generate(uidAlphabet, 8)
	if err != nil {
		return nil, fmt.Errorf("generate queue uid: %w", err)
	}

	q := Queue{}
	err = s.db.GetContext(ctx, &q,
		`INSERT INTO queues (id, uid, owner_id, name, description, location, category, estimated_service_time, max_capacity)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, uid, owner_id, name, description, location, category, estimated_service_time,
		           max_capacity, member_count, total_estimated_wait_time, average_rating, is_paused,
		           service_start_time, created_at`,
		uuid.New(), uid, ownerUUID, params.Name, params.Description, params.Location,
		params.Category, params.EstimatedServiceTime, params.MaxCapacity)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

const queueColumns = `id, uid, owner_id, name, description, location, category, estimated_service_time,
	max_capacity, member_count, total_estimated_wait_time, average_rating, is_paused,
	service_start_time, created_at`

func (s *Store) GetByID(ctx context.Context, queueID string) (*Queue, error) {
	queueUUID, err := uuid.Parse(queueID)
	if err != nil {
		return nil, fmt.Errorf("parse queue uuid: %w", err)
	}

	q := Queue{}
	err = s.db.GetContext(ctx, &q,
		`SELECT `+queueColumns+` FROM queues WHERE id = $1`, queueUUID)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *Store) GetIDByUID(ctx context.Context, uid string) (string, error) {
	var id uuid.UUID
	err := s.db.GetContext(ctx, &id, `SELECT id FROM queues WHERE uid = $1`, uid)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (s *Store) All(ctx context.Context) ([]Queue, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	queues := []Queue{}
	err := s.db.SelectContext(ctx, &queues,
		`SELECT `+queueColumns+` FROM queues ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list queues: %w", err)
	}
	return queues, nil
}

// Category is a curated label queues can be filed under.
type Category struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

func (s *Store) Categories(ctx context.Context) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	categories := []Category{}
	err := s.db.SelectContext(ctx, &categories,
		`SELECT id, name FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// QueueWithCount pairs a queue with its live membership count, bypassing
// the cached counter.
type QueueWithCount struct {
	Queue
	LiveCount int `json:"memberCount" db:"live_count"`
}

func (s *Store) AllWithLiveCounts(ctx context.Context) ([]QueueWithCount, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	queues := []QueueWithCount{}
	err := s.db.SelectContext(ctx, &queues,
		`SELECT q.id, q.uid, q.owner_id, q.name, q.description, q.location, q.category,
		        q.estimated_service_time, q.max_capacity, q.member_count, q.total_estimated_wait_time,
		        q.average_rating, q.is_paused, q.service_start_time, q.created_at,
		        COUNT(m.id) AS live_count
		 FROM queues q
		 LEFT JOIN queue_members m ON m.queue_id = q.id
		 GROUP BY q.id
		 ORDER BY q.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list queues with counts: %w", err)
	}
	return queues, nil
}

type UpdateQueueParams struct {
	Name                 string `json:"name"`
	Description          string `json:"description"`
	Location             string `json:"location"`
	Category             string `json:"category"`
	EstimatedServiceTime int    `json:"estimated_service_time"`
	MaxCapacity          int    `json:"max_capacity"`
}

func (s *Store) Update(ctx context.Context, queueID string, params UpdateQueueParams) error {
	queueUUID, err := uuid.Parse(queueID)
	if err != nil {
		return fmt.Errorf("parse queue uuid: %w", err)
	}

	// estimated_service_time feeds the cached total, so recompute with it.
	_, err = s.db.ExecContext(ctx,
		`UPDATE queues
		 SET name = $2, description = $3, location = $4, category = $5,
		     estimated_service_time = $6, max_capacity = $7,
		     total_estimated_wait_time = member_count * $6
		 WHERE id = $1`,
		queueUUID, params.Name, params.Description, params.Location,
		params.Category, params.EstimatedServiceTime, params.MaxCapacity)
	if err != nil {
		return fmt.Errorf("update queue: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, queueID string) error {
	queueUUID, err := uuid.Parse(queueID)
	if err != nil {
		return fmt.Errorf("parse queue uuid: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM queues WHERE id = $1`, queueUUID)
	if err != nil {
		return fmt.Errorf("delete queue: %w", err)
	}
	return nil
}

func (s *Store) SetPaused(ctx context.Context, queueID string, paused bool) error {
	queueUUID, err := uuid.Parse(queueID)
	if err != nil {
		return fmt.Errorf("parse queue uuid: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE queues SET is_paused = $2 WHERE id = $1`, queueUUID, paused)
	if err != nil {
		return fmt.Errorf("set queue paused: %w", err)
	}
	return nil
}

// SetServiceStartTime stores a daily "HH:MM" clock time. Callers supply the
// time already in UTC; it is validated, not converted.
func (s *Store) SetServiceStartTime(ctx context.Context, queueID string, clock string) error {
	queueUUID, err := uuid.Parse(queueID)
	if err != nil {
		return fmt.Errorf("parse queue uuid: %w", err)
	}
	if _, err := time.Parse("15:04", clock); err != nil {
		return fmt.Errorf("parse service start time %q: %w", clock, err)
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE queues SET service_start_time = $2 WHERE id = $1`, queueUUID, clock)
	if err != nil {
		return fmt.Errorf("set service start time: %w", err)
	}
	return nil
}

func (s *Store) OwnerOf(ctx context.Context, queueID string) (string, error) {
	queueUUID, err := uuid.Parse(queueID)
	if err != nil {
		return "", fmt.Errorf("parse queue uuid: %w", err)
	}
	var ownerID uuid.UUID
	err = s.db.GetContext(ctx, &ownerID, `SELECT owner_id FROM queues WHERE id = $1`, queueUUID)
	if err != nil {
		return "", err
	}
	return ownerID.String(), nil
}

func (s *Store) IsJoined(ctx context.Context, queueID string, userID string) (bool, error) {
	var joined bool
	err := s.db.GetContext(ctx, &joined,
		`SELECT EXISTS (SELECT 1 FROM queue_members WHERE queue_id = $1 AND user_id = $2)`,
		queueID, userID)
	if err != nil {
		return false, fmt.Errorf("check joined: %w", err)
	}
	return joined, nil
}

func (s *Store) JoinedByUser(ctx context.Context, userID string) ([]Queue, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user uuid: %w", err)
	}

	queues := []Queue{}
	err = s.db.SelectContext(ctx, &queues,
		`SELECT q.id, q.uid, q.owner_id, q.name, q.description, q.location, q.category,
		        q.estimated_service_time, q.max_capacity, q.member_count, q.total_estimated_wait_time,
		        q.average_rating, q.is_paused, q.service_start_time, q.created_at
		 FROM queues q
		 JOIN queue_members m ON m.queue_id = q.id
		 WHERE m.user_id = $1
		 ORDER BY m.created_at DESC`, userUUID)
	if err != nil {
		return nil, fmt.Errorf("list joined queues: %w", err)
	}
	return queues, nil
}

// MembersOrdered lists a queue's members in service order with their names.
func (s *Store) MembersOrdered(ctx context.Context, queueID string) ([]MemberWithPosition, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	queueUUID, err := uuid.Parse(queueID)
	if err != nil {
		return nil, fmt.Errorf("parse queue uuid: %w", err)
	}

	rows := []struct {
		ID      uuid.UUID `db:"id"`
		Name    string    `db:"name"`
		Created time.Time `db:"created_at"`
	}{}
	err = s.db.SelectContext(ctx, &rows,
		`SELECT m.id, u.name, m.created_at
		 FROM queue_members m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.queue_id = $1
		 ORDER BY m.created_at ASC, m.id ASC`, queueUUID)
	if err != nil {
		return nil, fmt.Errorf("list queue members: %w", err)
	}

	members := make([]MemberWithPosition, 0, len(rows))
	for i, row := range rows {
		members = append(members, MemberWithPosition{
			ID:       row.ID.String(),
			Position: i + 1,
			Name:     row.Name,
			JoinTime: row.Created,
		})
	}
	return members, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
