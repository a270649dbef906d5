package user

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bhavishkl/NoQue/auth"
	"github.com/google/uuid"
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

type InsertUserParams struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Store) Insert(ctx context.Context, params InsertUserParams) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	hashed, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := User{}
	err = s.db.GetContext(ctx, &u,
		`INSERT INTO users (id, name, email, user_pass)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, name, email, bio, avatar_url, created_at`,
		uuid.New(), params.Name, params.Email, hashed)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Authenticate checks an email/password pair and returns the matching user.
// Returns sql.ErrNoRows when the email is unknown and nil, nil on a bad
// password.
func (s *Store) Authenticate(ctx context.Context, email string, password string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	row := struct {
		User
		UserPass string `db:"user_pass"`
	}{}
	err := s.db.GetContext(ctx, &row,
		`SELECT id, name, email, bio, avatar_url, created_at, user_pass
		 FROM users WHERE email = $1`, email)
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(row.UserPass, password) {
		return nil, nil
	}
	return &row.User, nil
}

func (s *Store) GetByID(ctx context.Context, userID string) (*User, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user uuid: %w", err)
	}

	u := User{}
	err = s.db.GetContext(ctx, &u,
		`SELECT id, name, email, bio, avatar_url, created_at
		 FROM users WHERE id = $1`, userUUID)
	if err == sql.ErrNoRows {
		return nil, err
	} else if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

func (s *Store) UpdateProfile(ctx context.Context, userID string, name string, bio string) (*User, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user uuid: %w", err)
	}

	u := User{}
	err = s.db.GetContext(ctx, &u,
		`UPDATE users SET name = $2, bio = $3 WHERE id = $1
		 RETURNING id, name, email, bio, avatar_url, created_at`,
		userUUID, name, bio)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &u, nil
}

func (s *Store) UpdateAvatarURL(ctx context.Context, userID string, avatarURL string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("parse user uuid: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE users SET avatar_url = $2 WHERE id = $1`, userUUID, avatarURL)
	if err != nil {
		return fmt.Errorf("update avatar url: %w", err)
	}
	return nil
}
