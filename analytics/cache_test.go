package analytics

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCache(t *testing.T) {
	ctx := context.Background()
	report := Report{
		TotalCustomers:      3,
		AverageWaitTime:     12,
		QueueEfficiencyRate: 100,
		GeneratedAt:         time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC),
	}
	encoded, err := json.Marshal(report)
	require.NoError(t, err)

	t.Run("set then get", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		cache := NewReportCache(rdb)

		mock.ExpectSet("analytics:q1", encoded, cacheTTL).SetVal("OK")
		mock.ExpectGet("analytics:q1").SetVal(string(encoded))

		require.NoError(t, cache.Set(ctx, "q1", report))

		got, err := cache.Get(ctx, "q1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, report, *got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss returns nil", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		cache := NewReportCache(rdb)

		mock.ExpectGet("analytics:q2").RedisNil()

		got, err := cache.Get(ctx, "q2")
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalidate deletes the key", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		cache := NewReportCache(rdb)

		mock.ExpectDel("analytics:q3").SetVal(1)

		require.NoError(t, cache.Invalidate(ctx, "q3"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
