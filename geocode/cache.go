// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package geocode

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores search results by normalised query. Failures are treated as
// misses; the cache never fails a lookup.
type Cache interface {
	Get(ctx context.Context, key string) ([]Result, bool)
	Set(ctx context.Context, key string, results []Result, ttl time.Duration)
}

type RedisCache struct {
	rc *redis.Client
}

func NewRedisCache(rc *redis.Client) *RedisCache {
	return &RedisCache{rc: rc}
}

// OpenRedis returns a client for addr, or nil when addr is empty.
func OpenRedis(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]Result, bool) {
	s, err := c.rc.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("geocode cache read failed", "error", err)
		}
		return nil, false
	}
	var results []Result
	if err := json.Unmarshal([]byte(s), &results); err != nil {
		return nil, false
	}
	return results, true
}

func (c *RedisCache) Set(ctx context.Context, key string, results []Result, ttl time.Duration) {
	b, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := c.rc.Set(ctx, key, b, ttl).Err(); err != nil {
		slog.Warn("geocode cache write failed", "error", err)
	}
}
