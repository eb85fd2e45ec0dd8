// Package cache holds the redis-backed read caches. The only cache today
// is the follower-stats snapshot shown on profile pages; the source of
// truth stays in the database and entries expire on a short TTL.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FollowerStats is the cached profile counter pair.
type FollowerStats struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// FollowerStatsCache stores one JSON snapshot per user with a TTL.
type FollowerStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFollowerStatsCache(client *redis.Client, ttl time.Duration) *FollowerStatsCache {
	return &FollowerStatsCache{client: client, ttl: ttl}
}

func statsKey(userID string) string {
	return fmt.Sprintf("follower_stats:%s", userID)
}

// Get returns the cached snapshot and whether it was present. Redis
// errors count as a miss; the caller falls through to the database.
func (c *FollowerStatsCache) Get(ctx context.Context, userID string) (FollowerStats, bool) {
	data, err := c.client.Get(ctx, statsKey(userID)).Bytes()
	if err != nil {
		return FollowerStats{}, false
	}
	var st FollowerStats
	if err := json.Unmarshal(data, &st); err != nil {
		return FollowerStats{}, false
	}
	return st, true
}

// Set is best-effort; a failed write just means the next read misses.
func (c *FollowerStatsCache) Set(ctx context.Context, userID string, st FollowerStats) {
	payload, err := json.Marshal(st)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, statsKey(userID), payload, c.ttl).Err()
}

// Invalidate drops the snapshots for the given users. Called on every
// follow/unfollow for both sides of the edge.
func (c *FollowerStatsCache) Invalidate(ctx context.Context, userIDs ...string) error {
	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = statsKey(id)
	}
	return c.client.Del(ctx, keys...).Err()
}
