package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/vidhub/internal/model"
)

func setupStatsCache(t *testing.T) (*StatsCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStatsCache(client, time.Minute), mr
}

func TestStatsCacheAside(t *testing.T) {
	c, mr := setupStatsCache(t)
	ctx := context.Background()

	loads := 0
	load := func(ctx context.Context, ownerID string) (model.ChannelStats, error) {
		loads++
		return model.ChannelStats{TotalVideos: 2, TotalViews: 10}, nil
	}

	first, err := c.Get(ctx, "u1", load)
	require.NoError(t, err)
	second, err := c.Get(ctx, "u1", load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, loads)
	assert.Equal(t, StatsCounters{Hits: 1, Misses: 1}, c.Counters())
	assert.True(t, mr.Exists(statsKey("u1")))

	require.NoError(t, c.Invalidate(ctx, "u1"))
	assert.False(t, mr.Exists(statsKey("u1")))

	_, err = c.Get(ctx, "u1", load)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}

func TestStatsCacheTTL(t *testing.T) {
	c, mr := setupStatsCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "u1", func(context.Context, string) (model.ChannelStats, error) {
		return model.ChannelStats{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL(statsKey("u1")))
}

func TestStatsCacheLoadErrorNotCached(t *testing.T) {
	c, mr := setupStatsCache(t)
	boom := errors.New("boom")

	_, err := c.Get(context.Background(), "u1", func(context.Context, string) (model.ChannelStats, error) {
		return model.ChannelStats{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists(statsKey("u1")))
}

func TestStatsCacheWithoutRedis(t *testing.T) {
	c := NewStatsCache(nil, 0)
	got, err := c.Get(context.Background(), "u1", func(context.Context, string) (model.ChannelStats, error) {
		return model.ChannelStats{TotalLikes: 3}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.TotalLikes)
	assert.NoError(t, c.Invalidate(context.Background(), "u1"))
}
