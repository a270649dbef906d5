package review

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	t.Run("accepts ratings in range", func(t *testing.T) {
		for rating := 1; rating <= 5; rating++ {
			assert.NoError(t, validate(rating, "fine"))
		}
	})

	t.Run("rejects out of range ratings", func(t *testing.T) {
		assert.ErrorIs(t, validate(0, ""), ErrInvalidRating)
		assert.ErrorIs(t, validate(6, ""), ErrInvalidRating)
		assert.ErrorIs(t, validate(-1, ""), ErrInvalidRating)
	})

	t.Run("rejects oversized comments", func(t *testing.T) {
		comment := strings.Repeat("a", maxCommentLength+1)
		assert.ErrorIs(t, validate(3, comment), ErrCommentTooLong)
	})

	t.Run("accepts comment at the limit", func(t *testing.T) {
		comment := strings.Repeat("a", maxCommentLength)
		assert.NoError(t, validate(3, comment))
	})
}
