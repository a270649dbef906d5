package history

import "time"

// Status of a terminated membership. An entry with no exit time is "open":
// the member is still waiting.
type Status string

const (
	StatusServed Status = "served"
	StatusNoShow Status = "no-show"
	StatusLeft   Status = "left"
)

// TerminalStatuses are the statuses a closed entry may carry.
var TerminalStatuses = []Status{StatusServed, StatusNoShow, StatusLeft}

type Entry struct {
	ID        string     `json:"id" db:"id"`
	QueueID   string     `json:"queue_id" db:"queue_id"`
	QueueName string     `json:"queue_name" db:"queue_name"`
	UserID    string     `json:"user_id" db:"user_id"`
	JoinTime  time.Time  `json:"join_time" db:"join_time"`
	ExitTime  *time.Time `json:"exit_time" db:"exit_time"`
	Status    *Status    `json:"status" db:"status"`
	// WaitTime is minutes waited; only present when status is "served".
	WaitTime *int `json:"wait_time" db:"wait_time"`
	// ServiceTime snapshots the queue's estimated service time at exit.
	ServiceTime *int `json:"service_time" db:"service_time"`
}
