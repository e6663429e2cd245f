package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/TanzilStore/store_api/internal/analytics"
)

// ReportCache caches computed sales reports in Redis so the dashboard
// does not rebuild the analytics join on every request. Entries are
// keyed by the topN the caller asked for and expire after a TTL;
// mutations to orders or products invalidate them early.
type ReportCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewReportCache creates a ReportCache with the given entry TTL.
func NewReportCache(redis *RedisClient, ttl time.Duration) *ReportCache {
	return &ReportCache{redis: redis, ttl: ttl}
}

func (c *ReportCache) key(topN int) string {
	return fmt.Sprintf("report:sales:%d", topN)
}

// Set stores a computed report.
func (c *ReportCache) Set(ctx context.Context, topN int, report *analytics.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return c.redis.Set(ctx, c.key(topN), string(data), c.ttl)
}

// Get retrieves a cached report, or a nil report when none is cached.
func (c *ReportCache) Get(ctx context.Context, topN int) (*analytics.Report, error) {
	data, err := c.redis.Get(ctx, c.key(topN))
	if err != nil {
		return nil, err
	}
	var report analytics.Report
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}

// Invalidate drops every cached report. Called after order or product
// mutations so stale classifications never outlive the data.
func (c *ReportCache) Invalidate(ctx context.Context) error {
	return c.redis.Delete(ctx, c.key(5), c.key(10))
}
