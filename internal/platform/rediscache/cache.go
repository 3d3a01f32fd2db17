// Package rediscache implements the cache store on Redis: the computed
// stats cache, the token revocation set, and the due-reminder sorted
// set. Like the document store, the connection is an explicit handle:
// operations on a closed handle fail and are never retried.
package rediscache

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// tokenBlacklistPrefix prefixes revoked-token keys. Stats and reminder
// key layout is owned by the packages that use them.
const tokenBlacklistPrefix = "blacklist:token:"

// Cache is an explicit handle on the Redis connection. Safe for
// concurrent use; the client maintains its own connection pool.
type Cache struct {
	rdb    *redis.Client
	logger *slog.Logger
}

// Connect establishes the Redis connection and verifies it with a ping.
func Connect(ctx context.Context, url string, logger *slog.Logger) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("redis connected")

	return &Cache{
		rdb:    rdb,
		logger: logger.With(slog.String("component", "rediscache")),
	}, nil
}

// Close tears the connection down. The handle is invalid afterwards.
func (c *Cache) Close() error {
	c.logger.Info("redis disconnected")
	return c.rdb.Close()
}

// Get returns the value for key. The second return value is false on a
// cache miss.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get %q: %w", key, err)
	}
	return val, true, nil
}

// Set stores value under key with the given TTL.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return nil
}

// DeleteByPrefix removes every key starting with prefix. This is a
// KEYS+DEL scan: coarse, but correct, and fine at this write volume.
func (c *Cache) DeleteByPrefix(ctx context.Context, prefix string) error {
	keys, err := c.rdb.Keys(ctx, prefix+"*").Result()
	if err != nil {
		return fmt.Errorf("cache scan %q: %w", prefix, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete %q: %w", prefix, err)
	}
	return nil
}

// BlacklistToken marks a token revoked for the given TTL. Tokens with no
// remaining validity need no entry and are skipped.
func (c *Cache) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := c.rdb.Set(ctx, tokenBlacklistPrefix+token, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

// IsTokenBlacklisted reports whether a token has been revoked.
func (c *Cache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := c.rdb.Exists(ctx, tokenBlacklistPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("blacklist check: %w", err)
	}
	return n == 1, nil
}

// ZAdd inserts member into the sorted set at key with the given score.
// Identical members are naturally deduplicated by set semantics.
func (c *Cache) ZAdd(ctx context.Context, key string, score float64, member string) error {
	if err := c.rdb.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err(); err != nil {
		return fmt.Errorf("zadd %q: %w", key, err)
	}
	return nil
}

// ZRangeByScoreMax returns all members of the sorted set at key with a
// score between 0 and max inclusive, in score order.
func (c *Cache) ZRangeByScoreMax(ctx context.Context, key string, max int64) ([]string, error) {
	members, err := c.rdb.ZRangeByScore(ctx, key, &redis.ZRangeBy{
		Min: "0",
		Max: strconv.FormatInt(max, 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("zrangebyscore %q: %w", key, err)
	}
	return members, nil
}

// ZRemove deletes the given members from the sorted set at key.
func (c *Cache) ZRemove(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	if err := c.rdb.ZRem(ctx, key, args...).Err(); err != nil {
		return fmt.Errorf("zrem %q: %w", key, err)
	}
	return nil
}
