package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/careerfair/jobfair-api/internal/domain"
)

const (
	statsKeyPrefix  = "jobfair:stats:"
	statsVersionKey = statsKeyPrefix + "version"
)

// StatsCache keeps assignment statistics per event. Event 0 stands for the whole fair.
//
// Entries are stored under the version current when their computation started.
// Invalidate bumps the version, so a computation that overlaps a mutation writes
// an entry nobody reads again; it expires with the TTL.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{
		client: client,
		ttl:    ttl,
	}
}

func statsKey(version int64, eventID uint) string {
	return fmt.Sprintf("%s%d:%d", statsKeyPrefix, version, eventID)
}

// Version returns the current cache version, 0 before the first invalidation.
func (c *StatsCache) Version(ctx context.Context) (int64, error) {
	version, err := c.client.Get(ctx, statsVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("c.client.Get -> %w", err)
	}

	return version, nil
}

// Get reports false on a cache miss.
func (c *StatsCache) Get(ctx context.Context, version int64, eventID uint) (*domain.AssignmentStatistics, bool, error) {
	raw, err := c.client.Get(ctx, statsKey(version, eventID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("c.client.Get -> %w", err)
	}

	var stats domain.AssignmentStatistics
	if err = json.Unmarshal(raw, &stats); err != nil {
		return nil, false, fmt.Errorf("json.Unmarshal -> %w", err)
	}

	return &stats, true, nil
}

func (c *StatsCache) Set(ctx context.Context, version int64, eventID uint, stats *domain.AssignmentStatistics) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	if err = c.client.Set(ctx, statsKey(version, eventID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("c.client.Set -> %w", err)
	}

	return nil
}

// Invalidate retires every cached statistics entry. A single assignment change
// affects both its event's figures and the fair-wide ones.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, statsVersionKey).Err(); err != nil {
		return fmt.Errorf("c.client.Incr -> %w", err)
	}

	return nil
}

// Noop is used when redis is disabled.
type Noop struct{}

func (Noop) Version(context.Context) (int64, error) { return 0, nil }

func (Noop) Get(context.Context, int64, uint) (*domain.AssignmentStatistics, bool, error) {
	return nil, false, nil
}

func (Noop) Set(context.Context, int64, uint, *domain.AssignmentStatistics) error { return nil }

func (Noop) Invalidate(context.Context) error { return nil }
