package store

import (
	"context"

	"github.com/phrazzld/crm-api/internal/domain"
)

// ClientQuery selects a slice of the clients collection. A non-empty
// ManagerID restricts results to that owner; Search matches name, email
// and company as a case-insensitive substring (logical OR). Offset and
// Limit paginate the creation-time-descending result order.
type ClientQuery struct {
	ManagerID string
	Status    domain.ClientStatus
	Search    string
	Offset    int64
	Limit     int64
}

// ClientUpdate carries the mutable fields of a client. ManagerID is
// deliberately absent: ownership transfer is unsupported.
type ClientUpdate struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Status  domain.ClientStatus
	Notes   string
}

// ClientStore persists CRM clients.
type ClientStore interface {
	// Create inserts a new client and returns it with generated ID,
	// timestamps, and manager display name resolved.
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)

	// List returns one page of clients matching the query plus the total
	// number of matches. The page and the total come from two separate
	// store operations and may disagree briefly under concurrent writes.
	// ManagerName on each item is best-effort enrichment: a failed
	// display-name lookup never fails the read.
	List(ctx context.Context, q ClientQuery) ([]domain.Client, int64, error)

	// Count returns the number of clients matching the query, ignoring
	// Offset and Limit.
	Count(ctx context.Context, q ClientQuery) (int64, error)

	// GetByID returns the client with the given ID or ErrClientNotFound.
	GetByID(ctx context.Context, id string) (*domain.Client, error)

	// Update applies the given changes and returns the updated client,
	// or ErrClientNotFound.
	Update(ctx context.Context, id string, upd ClientUpdate) (*domain.Client, error)

	// Delete removes the client or returns ErrClientNotFound.
	Delete(ctx context.Context, id string) error

	// First returns an arbitrary client, or ErrClientNotFound when the
	// collection is empty.
	First(ctx context.Context) (*domain.Client, error)
}
