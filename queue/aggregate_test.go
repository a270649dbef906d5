package queue

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestAggregateFor(t *testing.T) {
	t.Run("total wait is members times service minutes", func(t *testing.T) {
		agg := aggregateFor(4, 10)
		assert.Equal(t, 4, agg.MemberCount)
		assert.Equal(t, 40, agg.TotalEstimatedWait)
	})

	t.Run("empty queue has zero wait", func(t *testing.T) {
		agg := aggregateFor(0, 10)
		assert.Equal(t, 0, agg.MemberCount)
		assert.Equal(t, 0, agg.TotalEstimatedWait)
	})

	t.Run("same inputs yield the same aggregate", func(t *testing.T) {
		assert.Equal(t, aggregateFor(7, 5), aggregateFor(7, 5))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}

	assert.True(t, isUniqueViolation(unique))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert membership: %w", unique)))

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
	assert.False(t, isUniqueViolation(nil))
}
