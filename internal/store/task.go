package store

import (
	"context"

	"github.com/phrazzld/crm-api/internal/domain"
)

// TaskQuery selects a slice of the tasks collection. A non-empty
// AssigneeID restricts results to that owner. Offset and Limit paginate
// the creation-time-descending result order.
type TaskQuery struct {
	AssigneeID string
	Status     domain.TaskStatus
	Offset     int64
	Limit      int64
}

// TaskUpdate carries the mutable fields of a task. AssigneeID is present
// because every update reassigns the task to the acting principal.
type TaskUpdate struct {
	Title       string
	Description string
	ClientID    string
	AssigneeID  string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     string
}

// TaskStore persists tasks.
type TaskStore interface {
	// Create inserts a new task and returns it with generated ID,
	// timestamps, and assignee display name resolved.
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// List returns one page of tasks matching the query plus the total
	// number of matches. Same consistency and enrichment caveats as
	// ClientStore.List.
	List(ctx context.Context, q TaskQuery) ([]domain.Task, int64, error)

	// Count returns the number of tasks matching the query, ignoring
	// Offset and Limit.
	Count(ctx context.Context, q TaskQuery) (int64, error)

	// GetByID returns the task with the given ID or ErrTaskNotFound.
	GetByID(ctx context.Context, id string) (*domain.Task, error)

	// Update applies the given changes and returns the updated task, or
	// ErrTaskNotFound.
	Update(ctx context.Context, id string, upd TaskUpdate) (*domain.Task, error)

	// Delete removes the task or returns ErrTaskNotFound.
	Delete(ctx context.Context, id string) error

	// StatusCounts groups tasks by status, optionally restricted to one
	// assignee. Statuses with no tasks are absent from the map.
	StatusCounts(ctx context.Context, assigneeID string) (map[domain.TaskStatus]int64, error)
}
