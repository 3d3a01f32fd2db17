// Package reminder maintains the due-reminder queue: a Redis sorted set
// scored by due time, fed on task creation and drained by a recurring
// sweep.
package reminder

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/phrazzld/crm-api/internal/platform/rediscache"
)

// SortedSetKey is the Redis key of the due-reminder sorted set.
const SortedSetKey = "reminders:due"

// payload is the serialized reminder entry. It deliberately carries no
// task ID: firing is side-effect-only and never mutates the task.
type payload struct {
	Title   string `json:"title"`
	DueDate string `json:"dueDate"`
}

// parseDueDate parses a task due date. Due dates are calendar date
// strings; a full timestamp is accepted as well.
func parseDueDate(dueDate string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", dueDate); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, dueDate); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Queue enqueues reminder entries into the sorted set.
type Queue struct {
	cache  *rediscache.Cache
	logger *slog.Logger
}

// NewQueue creates a reminder queue on the given cache handle.
func NewQueue(cache *rediscache.Cache, logger *slog.Logger) *Queue {
	return &Queue{
		cache:  cache,
		logger: logger.With(slog.String("component", "reminder_queue")),
	}
}

// Enqueue inserts a reminder scored by the parsed due instant in epoch
// milliseconds. An unparseable due date is a silent no-op: the task was
// already created and a missing reminder must not surface as an error.
// Identical title/dueDate pairs collapse into one entry by sorted-set
// semantics; that is accepted behavior, not identity-based dedup.
func (q *Queue) Enqueue(ctx context.Context, title, dueDate string) error {
	due, ok := parseDueDate(dueDate)
	if !ok {
		return nil
	}

	raw, err := json.Marshal(payload{Title: title, DueDate: dueDate})
	if err != nil {
		return err
	}

	return q.cache.ZAdd(ctx, SortedSetKey, float64(due.UnixMilli()), string(raw))
}
