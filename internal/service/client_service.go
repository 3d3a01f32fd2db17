package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/store"
)

// ClientInput carries the caller-settable fields of a client. The owner
// is never part of the input: creation pins it to the acting principal
// and updates leave it untouched.
type ClientInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Status  domain.ClientStatus
	Notes   string
}

// ClientListFilter selects and paginates a client listing. ManagerID
// and Status are optional; ManagerID is honored for admins only.
type ClientListFilter struct {
	Status    domain.ClientStatus
	Search    string
	ManagerID string
	Pagination
}

// RandomClientPayload is a generated, form-ready client suggestion.
type RandomClientPayload struct {
	Name      string              `json:"name"`
	Email     string              `json:"email"`
	Phone     string              `json:"phone"`
	Company   string              `json:"company"`
	Status    domain.ClientStatus `json:"status"`
	ManagerID string              `json:"managerId"`
	Notes     string              `json:"notes"`
}

// ClientService implements the scoped client operations.
type ClientService struct {
	clients store.ClientStore
	users   store.UserStore
	cache   StatsCache
	faker   *gofakeit.Faker
	logger  *slog.Logger
}

// NewClientService creates a ClientService over the given stores.
func NewClientService(clients store.ClientStore, users store.UserStore, cache StatsCache, logger *slog.Logger) *ClientService {
	return &ClientService{
		clients: clients,
		users:   users,
		cache:   cache,
		faker:   gofakeit.New(0),
		logger:  logger.With(slog.String("service", "client")),
	}
}

// List returns one page of clients visible to the principal. Admins see
// every client and may narrow by owner with filter.ManagerID; managers
// always see exactly their own clients, and the ManagerID filter is
// ignored for them.
func (s *ClientService) List(ctx context.Context, p domain.Principal, filter ClientListFilter) (*Page[domain.Client], error) {
	page, limit := filter.clamp()

	q := store.ClientQuery{
		Status: filter.Status,
		Search: filter.Search,
		Offset: int64(page-1) * int64(limit),
		Limit:  int64(limit),
	}
	if p.IsAdmin() {
		q.ManagerID = filter.ManagerID
	} else {
		q.ManagerID = p.ID
	}

	items, total, err := s.clients.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	return newPage(items, total, page, limit), nil
}

// Get returns a single client. A client that does not exist and a
// client owned by someone else are both ErrNotVisible.
func (s *ClientService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Client, error) {
	return s.visibleClient(ctx, p, id)
}

// Create inserts a new client owned by the acting principal. Any owner
// the caller supplied upstream has already been discarded; ownership is
// not a caller choice. The stats cache is invalidated on success.
func (s *ClientService) Create(ctx context.Context, p domain.Principal, in ClientInput) (*domain.Client, error) {
	client := &domain.Client{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Company:   in.Company,
		Status:    in.Status,
		ManagerID: p.ID,
		Notes:     in.Notes,
	}

	created, err := s.clients.Create(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	if err := invalidateStats(ctx, s.cache); err != nil {
		return nil, fmt.Errorf("invalidating stats after client create: %w", err)
	}

	s.logger.Info("client created", "client_id", created.ID, "manager_id", p.ID)
	return created, nil
}

// Update applies the given changes to a client the principal can see.
// Ownership is never part of the update. The stats cache is invalidated
// on success.
func (s *ClientService) Update(ctx context.Context, p domain.Principal, id string, in ClientInput) (*domain.Client, error) {
	if _, err := s.visibleClient(ctx, p, id); err != nil {
		return nil, err
	}

	updated, err := s.clients.Update(ctx, id, store.ClientUpdate{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Company: in.Company,
		Status:  in.Status,
		Notes:   in.Notes,
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			// Deleted between the visibility check and the write.
			return nil, ErrNotVisible
		}
		return nil, fmt.Errorf("updating client: %w", err)
	}

	if err := invalidateStats(ctx, s.cache); err != nil {
		return nil, fmt.Errorf("invalidating stats after client update: %w", err)
	}
	return updated, nil
}

// Delete removes a client. Deletion is admin-only: managers get
// ErrNotVisible even for their own clients.
func (s *ClientService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if !p.IsAdmin() {
		return ErrNotVisible
	}

	if err := s.clients.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return ErrNotVisible
		}
		return fmt.Errorf("deleting client: %w", err)
	}

	if err := invalidateStats(ctx, s.cache); err != nil {
		return fmt.Errorf("invalidating stats after client delete: %w", err)
	}

	s.logger.Info("client deleted", "client_id", id, "actor_id", p.ID)
	return nil
}

// RandomPayload generates a plausible client for form prefilling.
// Nothing is persisted. The suggested owner is the principal itself for
// managers; for admins it is some manager account, falling back to the
// admin when none exists.
func (s *ClientService) RandomPayload(ctx context.Context, p domain.Principal) (*RandomClientPayload, error) {
	managerID := p.ID
	if p.IsAdmin() {
		manager, err := s.users.FindFirstByRole(ctx, domain.RoleManager)
		switch {
		case err == nil:
			managerID = manager.ID
		case errors.Is(err, store.ErrNotFound):
			// No manager accounts yet; keep the admin as owner.
		default:
			return nil, fmt.Errorf("resolving manager for random client: %w", err)
		}
	}

	return &RandomClientPayload{
		Name:      s.faker.Name(),
		Email:     s.faker.Email(),
		Phone:     s.faker.Phone(),
		Company:   s.faker.Company(),
		Status:    domain.ClientStatuses[s.faker.IntRange(0, len(domain.ClientStatuses)-1)],
		ManagerID: managerID,
		Notes:     s.faker.Sentence(8),
	}, nil
}

// visibleClient fetches a client and enforces the scope rule: managers
// only see their own. Missing and out-of-scope collapse into the same
// ErrNotVisible.
func (s *ClientService) visibleClient(ctx context.Context, p domain.Principal, id string) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrNotVisible
		}
		return nil, fmt.Errorf("fetching client: %w", err)
	}
	if !p.IsAdmin() && client.ManagerID != p.ID {
		return nil, ErrNotVisible
	}
	return client, nil
}
