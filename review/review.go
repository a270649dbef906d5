package review

import (
	"errors"
	"time"
)

var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrCommentTooLong  = errors.New("comment exceeds 500 characters")
	ErrDuplicateReview = errors.New("user already reviewed this queue")
)

const maxCommentLength = 500

type Review struct {
	ID      string    `json:"id" db:"id"`
	QueueID string    `json:"queue_id" db:"queue_id"`
	UserID  string    `json:"user_id" db:"user_id"`
	Rating  int       `json:"rating" db:"rating"`
	Comment string    `json:"comment" db:"comment"`
	Created time.Time `json:"created" db:"created_at"`
}

func validate(rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	if len(comment) > maxCommentLength {
		return ErrCommentTooLong
	}
	return nil
}
