package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 10 * time.Minute

// ReportCache keeps computed reports in redis so the analytics endpoint
// doesn't rescan history on every read. Entries are replaced by the
// background refresh task and dropped on membership mutations.
type ReportCache struct {
	rdb *redis.Client
}

func NewReportCache(rdb *redis.Client) *ReportCache {
	return &ReportCache{
		rdb: rdb,
	}
}

func cacheKey(queueID string) string {
	return fmt.Sprintf("analytics:%s", queueID)
}

// Get returns the cached report, or nil on a miss.
func (c *ReportCache) Get(ctx context.Context, queueID string) (*Report, error) {
	data, err := c.rdb.Get(ctx, cacheKey(queueID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached report: %w", err)
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode cached report: %w", err)
	}
	return &report, nil
}

func (c *ReportCache) Set(ctx context.Context, queueID string, report Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := c.rdb.Set(ctx, cacheKey(queueID), data, cacheTTL).Err(); err != nil {
		return fmt.Errorf("cache report: %w", err)
	}
	return nil
}

func (c *ReportCache) Invalidate(ctx context.Context, queueID string) error {
	if err := c.rdb.Del(ctx, cacheKey(queueID)).Err(); err != nil {
		return fmt.Errorf("invalidate cached report: %w", err)
	}
	return nil
}
