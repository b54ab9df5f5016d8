// Package rediscache implements the hot-read caches on Redis: the per
// customer cart badge count and the daily platform stats snapshot.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	cartCountTTL  = time.Hour
	dailyStatsTTL = 48 * time.Hour
)

// CartCountCache stores cart line counts keyed by customer.
type CartCountCache struct {
	rdb *redis.Client
}

// NewCartCountCache creates a Redis-backed cart count cache.
func NewCartCountCache(rdb *redis.Client) *CartCountCache {
	return &CartCountCache{rdb: rdb}
}

func cartCountKey(customerID kernel.UUID) string {
	return fmt.Sprintf("cart:count:%s", customerID.String())
}

// Get returns the cached count or ports.ErrCacheMiss.
func (c *CartCountCache) Get(ctx context.Context, customerID kernel.UUID) (int64, error) {
	count, err := c.rdb.Get(ctx, cartCountKey(customerID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ports.ErrCacheMiss
		}
		return 0, err
	}
	return count, nil
}

// Set stores the count with a TTL so stale entries age out even if an
// invalidation is lost.
func (c *CartCountCache) Set(ctx context.Context, customerID kernel.UUID, count int64) error {
	return c.rdb.Set(ctx, cartCountKey(customerID), count, cartCountTTL).Err()
}

// Invalidate drops the entry; the next read repopulates it.
func (c *CartCountCache) Invalidate(ctx context.Context, customerID kernel.UUID) error {
	return c.rdb.Del(ctx, cartCountKey(customerID)).Err()
}

// DailyStatsCache stores rendered daily stats snapshots keyed by day.
type DailyStatsCache struct {
	rdb *redis.Client
}

// NewDailyStatsCache creates a Redis-backed daily stats cache.
func NewDailyStatsCache(rdb *redis.Client) *DailyStatsCache {
	return &DailyStatsCache{rdb: rdb}
}

func dailyStatsKey(day string) string {
	return fmt.Sprintf("stats:daily:%s", day)
}

// Get returns the cached snapshot or ports.ErrCacheMiss.
func (c *DailyStatsCache) Get(ctx context.Context, day string) ([]byte, error) {
	payload, err := c.rdb.Get(ctx, dailyStatsKey(day)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrCacheMiss
		}
		return nil, err
	}
	return payload, nil
}

// Set stores the snapshot. Two days of TTL keeps yesterday's snapshot
// readable while the clock rolls over.
func (c *DailyStatsCache) Set(ctx context.Context, day string, payload []byte) error {
	return c.rdb.Set(ctx, dailyStatsKey(day), payload, dailyStatsTTL).Err()
}
