package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/social-api/pkg/logger"
)

// ListKind selects which side of the follow edge a cached page holds.
type ListKind string

const (
	KindFollowers ListKind = "followers"
	KindFollowing ListKind = "following"
)

// FollowerCache keeps paged follower/following id lists in Redis with a TTL.
// The cache is advisory: misses fall through to the store, and every
// follow/unfollow invalidates both sides of the edge. A nil *FollowerCache
// is a valid no-op cache.
type FollowerCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *FollowerCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &FollowerCache{rdb: rdb, ttl: ttl}
}

func key(kind ListKind, userID string, page, size int) string {
	return fmt.Sprintf("social:%s:%s:%d:%d", kind, userID, page, size)
}

func (c *FollowerCache) GetIDs(ctx context.Context, kind ListKind, userID string, page, size int) ([]string, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, key(kind, userID, page, size)).Bytes()
	if err != nil {
		return nil, false
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, false
	}
	return ids, true
}

func (c *FollowerCache) SetIDs(ctx context.Context, kind ListKind, userID string, page, size int, ids []string) {
	if c == nil || c.rdb == nil {
		return
	}
	payload, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key(kind, userID, page, size), payload, c.ttl).Err(); err != nil {
		logger.Warn("follower cache set failed", zap.String("user", userID), zap.Error(err))
	}
}

// Invalidate drops all cached pages for the given users, both directions.
func (c *FollowerCache) Invalidate(ctx context.Context, userIDs ...string) {
	if c == nil || c.rdb == nil {
		return
	}
	for _, id := range userIDs {
		for _, kind := range []ListKind{KindFollowers, KindFollowing} {
			pattern := fmt.Sprintf("social:%s:%s:*", kind, id)
			iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
			for iter.Next(ctx) {
				if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
					logger.Warn("follower cache invalidate failed", zap.String("key", iter.Val()), zap.Error(err))
				}
			}
		}
	}
}
