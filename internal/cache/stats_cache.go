// Package cache keeps derived channel aggregates in redis in front of the
// entity store.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/pkg/logger"
)

const defaultStatsTTL = 5 * time.Minute

// Loader 缓存未命中时回源
type Loader func(ctx context.Context, ownerID string) (model.ChannelStats, error)

// StatsCache cache-aside 频道统计；client 为 nil 时直接回源
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = defaultStatsTTL
	}
	return &StatsCache{client: client, ttl: ttl}
}

func statsKey(ownerID string) string { return fmt.Sprintf("channel:stats:%s", ownerID) }

// Get 先读 redis，未命中则回源并回填。redis 故障不影响结果，只降级为回源。
func (c *StatsCache) Get(ctx context.Context, ownerID string, load Loader) (model.ChannelStats, error) {
	if c == nil || c.client == nil {
		return load(ctx, ownerID)
	}
	key := statsKey(ownerID)
	if data, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var out model.ChannelStats
		if uErr := json.Unmarshal(data, &out); uErr == nil {
			c.hits.Add(1)
			return out, nil
		}
	} else if err != redis.Nil {
		logger.Warn("stats cache read failed", zap.String("owner", ownerID), zap.Error(err))
	}

	c.misses.Add(1)
	stats, err := load(ctx, ownerID)
	if err != nil {
		return model.ChannelStats{}, err
	}
	if payload, err := json.Marshal(stats); err == nil {
		if sErr := c.client.Set(ctx, key, payload, c.ttl).Err(); sErr != nil {
			logger.Warn("stats cache write failed", zap.String("owner", ownerID), zap.Error(sErr))
		}
	}
	return stats, nil
}

// Invalidate 删除某频道的缓存条目
func (c *StatsCache) Invalidate(ctx context.Context, ownerID string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, statsKey(ownerID)).Err()
}

// Counters 命中/未命中计数
func (c *StatsCache) Counters() StatsCounters {
	return StatsCounters{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// ResetCounters clears recorded hit/miss counters.
func (c *StatsCache) ResetCounters() {
	c.hits.Store(0)
	c.misses.Store(0)
}

// StatsCounters summarises cache traffic during a run.
type StatsCounters struct {
	Hits   int64
	Misses int64
}
