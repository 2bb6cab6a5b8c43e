package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	logger "quizhive-backend/pkg/logging"
)

const versionKey = "leaderboard:version"

// LeaderboardCache memoizes computed leaderboard pages in redis for a short
// TTL. Invalidation bumps a version counter baked into every key, so stale
// pages simply age out without any key scanning. A nil cache (redis disabled)
// is safe to call and always misses.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboardCache(client *redis.Client, ttl time.Duration) *LeaderboardCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &LeaderboardCache{client: client, ttl: ttl}
}

// Key builds a versioned cache key from the query's identifying parts.
func (c *LeaderboardCache) Key(parts ...interface{}) string {
	if c == nil {
		return ""
	}
	version, err := c.client.Get(context.Background(), versionKey).Int64()
	if err != nil && err != redis.Nil {
		version = 0
	}
	key := fmt.Sprintf("leaderboard:v%d", version)
	for _, p := range parts {
		key += fmt.Sprintf(":%v", p)
	}
	return key
}

// Get unmarshals a cached page into dest, reporting whether it was present.
func (c *LeaderboardCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || key == "" {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warn("dropping undecodable cache entry %s: %v", key, err)
		c.client.Del(ctx, key)
		return false
	}
	return true
}

// Set stores a computed page. Failures are logged and ignored; the cache is
// an optimization, never a source of truth.
func (c *LeaderboardCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || key == "" {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warn("failed to marshal cache entry %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.Warn("failed to store cache entry %s: %v", key, err)
	}
}

// Invalidate bumps the version so every previously written key becomes
// unreachable.
func (c *LeaderboardCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		logger.Warn("failed to invalidate leaderboard cache: %v", err)
	}
}
