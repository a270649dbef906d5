package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEstimatedWait(t *testing.T) {
	t.Run("rank 1 waits nothing", func(t *testing.T) {
		assert.Equal(t, 0, EstimatedWait(1, 10))
	})

	t.Run("rank n waits (n-1) service times", func(t *testing.T) {
		assert.Equal(t, 10, EstimatedWait(2, 10))
		assert.Equal(t, 40, EstimatedWait(5, 10))
	})

	t.Run("never negative", func(t *testing.T) {
		assert.Equal(t, 0, EstimatedWait(0, 10))
		assert.Equal(t, 0, EstimatedWait(-3, 10))
	})
}

func TestExpectedServiceAt(t *testing.T) {
	now := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)

	t.Run("no service start time anchors to now", func(t *testing.T) {
		got := ExpectedServiceAt(now, nil, 30)
		assert.Equal(t, now.Add(30*time.Minute), got)
	})

	t.Run("before opening anchors to opening", func(t *testing.T) {
		opening := "09:30"
		got := ExpectedServiceAt(now, &opening, 20)
		want := time.Date(2025, time.March, 3, 9, 50, 0, 0, time.UTC)
		assert.Equal(t, want, got)
	})

	t.Run("after opening anchors to now", func(t *testing.T) {
		opening := "07:00"
		got := ExpectedServiceAt(now, &opening, 20)
		assert.Equal(t, now.Add(20*time.Minute), got)
	})

	t.Run("unparseable clock falls back to now", func(t *testing.T) {
		opening := "not a clock"
		got := ExpectedServiceAt(now, &opening, 15)
		assert.Equal(t, now.Add(15*time.Minute), got)
	})

	t.Run("non-UTC input is normalized", func(t *testing.T) {
		loc := time.FixedZone("IST", 5*3600+1800)
		local := now.In(loc)
		got := ExpectedServiceAt(local, nil, 10)
		assert.Equal(t, now.Add(10*time.Minute), got)
		assert.Equal(t, time.UTC, got.Location())
	})
}
