package queue

import (
	"errors"
	"time"
)

var (
	ErrAlreadyJoined = errors.New("user already joined this queue")
	ErrNotInQueue    = errors.New("user is not in this queue")
	ErrQueuePaused   = errors.New("queue is paused")
	ErrQueueFull     = errors.New("queue is at capacity")
	ErrNotOwner      = errors.New("caller does not own this queue")
)

type Queue struct {
	ID          string `json:"id" db:"id"`
	UID         string `json:"uid" db:"uid"`
	OwnerID     string `json:"owner_id" db:"owner_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Location    string `json:"location" db:"location"`
	Category    string `json:"category" db:"category"`
	// EstimatedServiceTime is minutes spent per member.
	EstimatedServiceTime int `json:"estimated_service_time" db:"estimated_service_time"`
	MaxCapacity          int `json:"max_capacity" db:"max_capacity"`
	// MemberCount and TotalEstimatedWaitTime are caches maintained in the
	// same transaction as membership mutations. Reads that need precision
	// count live membership rows instead.
	MemberCount            int     `json:"member_count" db:"member_count"`
	TotalEstimatedWaitTime int     `json:"total_estimated_wait_time" db:"total_estimated_wait_time"`
	AverageRating          float64 `json:"average_rating" db:"average_rating"`
	IsPaused               bool    `json:"is_paused" db:"is_paused"`
	// ServiceStartTime is an optional daily "HH:MM" clock time in UTC.
	ServiceStartTime *string   `json:"service_start_time" db:"service_start_time"`
	Created          time.Time `json:"created" db:"created_at"`
}

type Member struct {
	ID      string    `json:"id" db:"id"`
	QueueID string    `json:"queue_id" db:"queue_id"`
	UserID  string    `json:"user_id" db:"user_id"`
	Created time.Time `json:"created" db:"created_at"`
}

// MemberWithPosition is a row of the owner-facing member listing.
type MemberWithPosition struct {
	ID       string    `json:"id"`
	Position int       `json:"position"`
	Name     string    `json:"name"`
	JoinTime time.Time `json:"joinTime"`
}
