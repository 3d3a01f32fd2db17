package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/store"
)

// MockUserStore implements store.UserStore with an in-memory map.
type MockUserStore struct {
	CreateFn          func(ctx context.Context, user *domain.User) error
	GetByIDFn         func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFn      func(ctx context.Context, email string) (*domain.User, error)
	UpdateFn          func(ctx context.Context, id string, upd store.UserUpdate) (*domain.User, error)
	ListFn            func(ctx context.Context) ([]domain.User, error)
	FindFirstByRoleFn func(ctx context.Context, role domain.Role) (*domain.User, error)

	mu     sync.Mutex
	users  []domain.User
	nextID int
}

// NewMockUserStore creates an empty mock store.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{}
}

// Seed inserts a user directly, bypassing duplicate checks. Returns the
// stored copy.
func (m *MockUserStore) Seed(user domain.User) domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == "" {
		m.nextID++
		user.ID = "user-" + strconv.Itoa(m.nextID)
	}
	m.users = append(m.users, user)
	return user
}

// Create implements store.UserStore.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	m.nextID++
	user.ID = "user-" + strconv.Itoa(m.nextID)
	user.CreatedAt = time.Now().UTC()
	m.users = append(m.users, *user)
	return nil
}

// GetByID implements store.UserStore.
func (m *MockUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByEmail implements store.UserStore.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Email == email {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// Update implements store.UserStore.
func (m *MockUserStore) Update(ctx context.Context, id string, upd store.UserUpdate) (*domain.User, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, upd)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			if upd.Name != nil {
				m.users[i].Name = *upd.Name
			}
			if upd.Avatar != nil {
				m.users[i].Avatar = *upd.Avatar
			}
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// List implements store.UserStore.
func (m *MockUserStore) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.User, len(m.users))
	copy(out, m.users)
	return out, nil
}

// FindFirstByRole implements store.UserStore.
func (m *MockUserStore) FindFirstByRole(ctx context.Context, role domain.Role) (*domain.User, error) {
	if m.FindFirstByRoleFn != nil {
		return m.FindFirstByRoleFn(ctx, role)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Role == role {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}
