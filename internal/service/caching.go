package service

import (
	"context"
	"time"
)

// Stats cache key layout and TTL.
const (
	// StatsKeyPrefix prefixes every per-scope stats cache key.
	StatsKeyPrefix = "stats:"

	// StatsAllKey is the shared admin-scope stats cache key.
	StatsAllKey = StatsKeyPrefix + "all"

	// StatsTTL is how long a computed stats snapshot may be served from
	// cache.
	StatsTTL = 180 * time.Second
)

// StatsCache is the slice of the cache store the services need:
// write-through reads of the stats snapshot and the coarse
// prefix-delete used for invalidation.
type StatsCache interface {
	// Get returns the cached value for key; false on a miss.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// DeleteByPrefix removes every key starting with prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// ReminderEnqueuer inserts a reminder entry for a newly created task.
type ReminderEnqueuer interface {
	Enqueue(ctx context.Context, title, dueDate string) error
}

// invalidateStats drops every scope's cached stats. Any write anywhere
// invalidates all scopes: correctness over hit rate, since tracking
// which scopes a write affects is not worth it at this volume.
func invalidateStats(ctx context.Context, cache StatsCache) error {
	return cache.DeleteByPrefix(ctx, StatsKeyPrefix)
}
