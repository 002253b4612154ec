package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerfair/jobfair-api/internal/config"
	"github.com/careerfair/jobfair-api/internal/domain"
)

func setupStatsCache(t *testing.T) (*StatsCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStatsCache(client, time.Minute), mr
}

func TestStatsCache_GetSet(t *testing.T) {
	c, mr := setupStatsCache(t)
	ctx := context.Background()

	version, err := c.Version(ctx)
	require.NoError(t, err)
	assert.Zero(t, version)

	got, ok, err := c.Get(ctx, version, 7)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	stats := &domain.AssignmentStatistics{
		EventID:          7,
		TotalAssignments: 3,
		ByStatus: map[domain.AssignmentStatus]int{
			domain.AssignmentAssigned:  2,
			domain.AssignmentConfirmed: 1,
		},
		TotalCapacity:      20,
		UtilizationPercent: 15,
	}
	require.NoError(t, c.Set(ctx, version, 7, stats))
	assert.True(t, mr.Exists("jobfair:stats:0:7"))

	got, ok, err = c.Get(ctx, version, 7)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, stats, got)

	mr.FastForward(2 * time.Minute)

	_, ok, err = c.Get(ctx, version, 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStatsCache_Invalidate(t *testing.T) {
	c, mr := setupStatsCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 0, 0, &domain.AssignmentStatistics{}))
	require.NoError(t, c.Set(ctx, 0, 1, &domain.AssignmentStatistics{EventID: 1}))
	require.NoError(t, mr.Set("unrelated", "keep"))

	require.NoError(t, c.Invalidate(ctx))

	version, err := c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	_, ok, err := c.Get(ctx, version, 0)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = c.Get(ctx, version, 1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, mr.Exists("unrelated"))

	require.NoError(t, c.Invalidate(ctx))
	version, err = c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestStatsCache_LateWriteAfterInvalidate(t *testing.T) {
	c, _ := setupStatsCache(t)
	ctx := context.Background()

	// A reader picks up the version, then a mutation invalidates before the reader stores.
	started, err := c.Version(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.Set(ctx, started, 1, &domain.AssignmentStatistics{EventID: 1, TotalAssignments: 9}))

	current, err := c.Version(ctx)
	require.NoError(t, err)
	_, ok, err := c.Get(ctx, current, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStatsCache_CorruptEntry(t *testing.T) {
	c, mr := setupStatsCache(t)
	require.NoError(t, mr.Set("jobfair:stats:0:3", "not-json"))

	_, ok, err := c.Get(context.Background(), 0, 3)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client, err := NewRedisClient(ctx, &config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	_ = client.Close()

	client, err = NewRedisClient(ctx, &config.RedisConfig{URL: "redis://" + mr.Addr() + "/0"})
	require.NoError(t, err)
	_ = client.Close()

	_, err = NewRedisClient(ctx, &config.RedisConfig{URL: "not a url"})
	assert.Error(t, err)
}
