package mocks

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/store"
)

// MockClientStore implements store.ClientStore with an in-memory slice.
// The default List honors owner, status and search filters, sorts by
// creation time descending, and applies offset and limit, so service
// tests exercise real query semantics.
type MockClientStore struct {
	CreateFn  func(ctx context.Context, client *domain.Client) (*domain.Client, error)
	ListFn    func(ctx context.Context, q store.ClientQuery) ([]domain.Client, int64, error)
	CountFn   func(ctx context.Context, q store.ClientQuery) (int64, error)
	GetByIDFn func(ctx context.Context, id string) (*domain.Client, error)
	UpdateFn  func(ctx context.Context, id string, upd store.ClientUpdate) (*domain.Client, error)
	DeleteFn  func(ctx context.Context, id string) error
	FirstFn   func(ctx context.Context) (*domain.Client, error)

	mu      sync.Mutex
	clients []domain.Client
	nextID  int
	now     time.Time
}

// NewMockClientStore creates an empty mock store.
func NewMockClientStore() *MockClientStore {
	return &MockClientStore{now: time.Now().UTC()}
}

// Seed inserts a client directly. Each seeded client is created one
// second after the previous one so insertion order matches the
// creation-time ordering List uses.
func (m *MockClientStore) Seed(client domain.Client) domain.Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	if client.ID == "" {
		m.nextID++
		client.ID = "client-" + strconv.Itoa(m.nextID)
	}
	if client.CreatedAt.IsZero() {
		m.now = m.now.Add(time.Second)
		client.CreatedAt = m.now
		client.UpdatedAt = m.now
	}
	m.clients = append(m.clients, client)
	return client
}

func (m *MockClientStore) match(c domain.Client, q store.ClientQuery) bool {
	if q.ManagerID != "" && c.ManagerID != q.ManagerID {
		return false
	}
	if q.Status != "" && c.Status != q.Status {
		return false
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(c.Name), needle) &&
			!strings.Contains(strings.ToLower(c.Email), needle) &&
			!strings.Contains(strings.ToLower(c.Company), needle) {
			return false
		}
	}
	return true
}

// Create implements store.ClientStore.
func (m *MockClientStore) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, client)
	}
	stored := m.Seed(*client)
	return &stored, nil
}

// List implements store.ClientStore.
func (m *MockClientStore) List(ctx context.Context, q store.ClientQuery) ([]domain.Client, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, q)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []domain.Client
	for _, c := range m.clients {
		if m.match(c, q) {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if q.Offset >= int64(len(matched)) {
		return []domain.Client{}, total, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && q.Limit < int64(len(matched)) {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}

// Count implements store.ClientStore.
func (m *MockClientStore) Count(ctx context.Context, q store.ClientQuery) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, q)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, c := range m.clients {
		if m.match(c, q) {
			n++
		}
	}
	return n, nil
}

// GetByID implements store.ClientStore.
func (m *MockClientStore) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.clients {
		if m.clients[i].ID == id {
			c := m.clients[i]
			return &c, nil
		}
	}
	return nil, store.ErrClientNotFound
}

// Update implements store.ClientStore.
func (m *MockClientStore) Update(ctx context.Context, id string, upd store.ClientUpdate) (*domain.Client, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, upd)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.clients {
		if m.clients[i].ID == id {
			m.clients[i].Name = upd.Name
			m.clients[i].Email = upd.Email
			m.clients[i].Phone = upd.Phone
			m.clients[i].Company = upd.Company
			m.clients[i].Status = upd.Status
			m.clients[i].Notes = upd.Notes
			m.clients[i].UpdatedAt = time.Now().UTC()
			c := m.clients[i]
			return &c, nil
		}
	}
	return nil, store.ErrClientNotFound
}

// Delete implements store.ClientStore.
func (m *MockClientStore) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.clients {
		if m.clients[i].ID == id {
			m.clients = append(m.clients[:i], m.clients[i+1:]...)
			return nil
		}
	}
	return store.ErrClientNotFound
}

// First implements store.ClientStore.
func (m *MockClientStore) First(ctx context.Context) (*domain.Client, error) {
	if m.FirstFn != nil {
		return m.FirstFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.clients) == 0 {
		return nil, store.ErrClientNotFound
	}
	c := m.clients[0]
	return &c, nil
}
