package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/store"
)

// TaskInput carries the caller-settable fields of a task. The assignee
// is never part of the input: both creation and update pin it to the
// acting principal.
type TaskInput struct {
	Title       string
	Description string
	ClientID    string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     string
}

// TaskListFilter selects and paginates a task listing. AssigneeID is
// honored for admins only.
type TaskListFilter struct {
	Status     domain.TaskStatus
	AssigneeID string
	Pagination
}

// RandomTaskPayload is a generated, form-ready task suggestion.
type RandomTaskPayload struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	ClientID    string              `json:"clientId"`
	AssigneeID  string              `json:"assigneeId"`
	Status      domain.TaskStatus   `json:"status"`
	Priority    domain.TaskPriority `json:"priority"`
	DueDate     string              `json:"dueDate"`
}

// TaskService implements the scoped task operations.
type TaskService struct {
	tasks     store.TaskStore
	clients   store.ClientStore
	cache     StatsCache
	reminders ReminderEnqueuer
	faker     *gofakeit.Faker
	logger    *slog.Logger
}

// NewTaskService creates a TaskService over the given stores. reminders
// may be nil, in which case created tasks simply get no reminder.
func NewTaskService(tasks store.TaskStore, clients store.ClientStore, cache StatsCache, reminders ReminderEnqueuer, logger *slog.Logger) *TaskService {
	return &TaskService{
		tasks:     tasks,
		clients:   clients,
		cache:     cache,
		reminders: reminders,
		faker:     gofakeit.New(0),
		logger:    logger.With(slog.String("service", "task")),
	}
}

// List returns one page of tasks visible to the principal. Admins see
// every task and may narrow by assignee with filter.AssigneeID;
// managers always see exactly their own tasks.
func (s *TaskService) List(ctx context.Context, p domain.Principal, filter TaskListFilter) (*Page[domain.Task], error) {
	page, limit := filter.clamp()

	q := store.TaskQuery{
		Status: filter.Status,
		Offset: int64(page-1) * int64(limit),
		Limit:  int64(limit),
	}
	if p.IsAdmin() {
		q.AssigneeID = filter.AssigneeID
	} else {
		q.AssigneeID = p.ID
	}

	items, total, err := s.tasks.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return newPage(items, total, page, limit), nil
}

// Get returns a single task. A task that does not exist and a task
// assigned to someone else are both ErrNotVisible.
func (s *TaskService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Task, error) {
	return s.visibleTask(ctx, p, id)
}

// Create inserts a new task assigned to the acting principal and queues
// a due-date reminder for it. A failed enqueue is logged and swallowed:
// the task exists either way, and a missing reminder is not worth
// failing the request over. The stats cache is invalidated on success.
func (s *TaskService) Create(ctx context.Context, p domain.Principal, in TaskInput) (*domain.Task, error) {
	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		ClientID:    in.ClientID,
		AssigneeID:  p.ID,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	if s.reminders != nil {
		if err := s.reminders.Enqueue(ctx, created.Title, created.DueDate); err != nil {
			s.logger.Warn("failed to queue task reminder",
				"task_id", created.ID, "error", err)
		}
	}

	if err := invalidateStats(ctx, s.cache); err != nil {
		return nil, fmt.Errorf("invalidating stats after task create: %w", err)
	}

	s.logger.Info("task created", "task_id", created.ID, "assignee_id", p.ID)
	return created, nil
}

// Update applies the given changes to a task the principal can see and
// reassigns it to the principal: whoever touches a task owns it. The
// stats cache is invalidated on success.
func (s *TaskService) Update(ctx context.Context, p domain.Principal, id string, in TaskInput) (*domain.Task, error) {
	if _, err := s.visibleTask(ctx, p, id); err != nil {
		return nil, err
	}

	updated, err := s.tasks.Update(ctx, id, store.TaskUpdate{
		Title:       in.Title,
		Description: in.Description,
		ClientID:    in.ClientID,
		AssigneeID:  p.ID,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrNotVisible
		}
		return nil, fmt.Errorf("updating task: %w", err)
	}

	if err := invalidateStats(ctx, s.cache); err != nil {
		return nil, fmt.Errorf("invalidating stats after task update: %w", err)
	}
	return updated, nil
}

// Delete removes a task. Deletion is admin-only: managers get
// ErrNotVisible even for their own tasks.
func (s *TaskService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if !p.IsAdmin() {
		return ErrNotVisible
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return ErrNotVisible
		}
		return fmt.Errorf("deleting task: %w", err)
	}

	if err := invalidateStats(ctx, s.cache); err != nil {
		return fmt.Errorf("invalidating stats after task delete: %w", err)
	}

	s.logger.Info("task deleted", "task_id", id, "actor_id", p.ID)
	return nil
}

// RandomPayload generates a plausible task for form prefilling. Nothing
// is persisted. The task is attached to some existing client when one
// exists; the due date lands within the next two weeks.
func (s *TaskService) RandomPayload(ctx context.Context, p domain.Principal) (*RandomTaskPayload, error) {
	clientID := ""
	client, err := s.clients.First(ctx)
	switch {
	case err == nil:
		clientID = client.ID
	case errors.Is(err, store.ErrNotFound):
		// No clients yet; the caller picks one manually.
	default:
		return nil, fmt.Errorf("resolving client for random task: %w", err)
	}

	due := time.Now().UTC().AddDate(0, 0, s.faker.IntRange(1, 14))

	return &RandomTaskPayload{
		Title:       s.faker.VerbAction() + " " + s.faker.NounConcrete(),
		Description: s.faker.Sentence(10),
		ClientID:    clientID,
		AssigneeID:  p.ID,
		Status:      domain.TaskStatuses[s.faker.IntRange(0, len(domain.TaskStatuses)-1)],
		Priority:    domain.TaskPriorities[s.faker.IntRange(0, len(domain.TaskPriorities)-1)],
		DueDate:     due.Format("2006-01-02"),
	}, nil
}

// visibleTask fetches a task and enforces the scope rule: managers only
// see tasks assigned to them.
func (s *TaskService) visibleTask(ctx context.Context, p domain.Principal, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrNotVisible
		}
		return nil, fmt.Errorf("fetching task: %w", err)
	}
	if !p.IsAdmin() && task.AssigneeID != p.ID {
		return nil, ErrNotVisible
	}
	return task, nil
}
