package mocks

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/store"
)

// MockTaskStore implements store.TaskStore with an in-memory slice.
type MockTaskStore struct {
	CreateFn       func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	ListFn         func(ctx context.Context, q store.TaskQuery) ([]domain.Task, int64, error)
	CountFn        func(ctx context.Context, q store.TaskQuery) (int64, error)
	GetByIDFn      func(ctx context.Context, id string) (*domain.Task, error)
	UpdateFn       func(ctx context.Context, id string, upd store.TaskUpdate) (*domain.Task, error)
	DeleteFn       func(ctx context.Context, id string) error
	StatusCountsFn func(ctx context.Context, assigneeID string) (map[domain.TaskStatus]int64, error)

	mu     sync.Mutex
	tasks  []domain.Task
	nextID int
	now    time.Time
}

// NewMockTaskStore creates an empty mock store.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{now: time.Now().UTC()}
}

// Seed inserts a task directly, with the same ordering convention as
// MockClientStore.Seed.
func (m *MockTaskStore) Seed(task domain.Task) domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	if task.ID == "" {
		m.nextID++
		task.ID = "task-" + strconv.Itoa(m.nextID)
	}
	if task.CreatedAt.IsZero() {
		m.now = m.now.Add(time.Second)
		task.CreatedAt = m.now
		task.UpdatedAt = m.now
	}
	m.tasks = append(m.tasks, task)
	return task
}

func (m *MockTaskStore) match(t domain.Task, q store.TaskQuery) bool {
	if q.AssigneeID != "" && t.AssigneeID != q.AssigneeID {
		return false
	}
	if q.Status != "" && t.Status != q.Status {
		return false
	}
	return true
}

// Create implements store.TaskStore.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	stored := m.Seed(*task)
	return &stored, nil
}

// List implements store.TaskStore.
func (m *MockTaskStore) List(ctx context.Context, q store.TaskQuery) ([]domain.Task, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, q)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []domain.Task
	for _, t := range m.tasks {
		if m.match(t, q) {
			matched = append(matched, t)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if q.Offset >= int64(len(matched)) {
		return []domain.Task{}, total, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && q.Limit < int64(len(matched)) {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}

// Count implements store.TaskStore.
func (m *MockTaskStore) Count(ctx context.Context, q store.TaskQuery) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, q)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, t := range m.tasks {
		if m.match(t, q) {
			n++
		}
	}
	return n, nil
}

// GetByID implements store.TaskStore.
func (m *MockTaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			t := m.tasks[i]
			return &t, nil
		}
	}
	return nil, store.ErrTaskNotFound
}

// Update implements store.TaskStore.
func (m *MockTaskStore) Update(ctx context.Context, id string, upd store.TaskUpdate) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, upd)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks[i].Title = upd.Title
			m.tasks[i].Description = upd.Description
			m.tasks[i].ClientID = upd.ClientID
			m.tasks[i].AssigneeID = upd.AssigneeID
			m.tasks[i].Status = upd.Status
			m.tasks[i].Priority = upd.Priority
			m.tasks[i].DueDate = upd.DueDate
			m.tasks[i].UpdatedAt = time.Now().UTC()
			t := m.tasks[i]
			return &t, nil
		}
	}
	return nil, store.ErrTaskNotFound
}

// Delete implements store.TaskStore.
func (m *MockTaskStore) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return store.ErrTaskNotFound
}

// StatusCounts implements store.TaskStore.
func (m *MockTaskStore) StatusCounts(ctx context.Context, assigneeID string) (map[domain.TaskStatus]int64, error) {
	if m.StatusCountsFn != nil {
		return m.StatusCountsFn(ctx, assigneeID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[domain.TaskStatus]int64)
	for _, t := range m.tasks {
		if assigneeID == "" || t.AssigneeID == assigneeID {
			counts[t.Status]++
		}
	}
	return counts, nil
}
