package domain

import "time"

// ClientStatus is the lifecycle state of a CRM client.
type ClientStatus string

// Known client statuses.
const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
	ClientStatusLead     ClientStatus = "lead"
)

// ClientStatuses lists the known client statuses in display order.
var ClientStatuses = []ClientStatus{ClientStatusActive, ClientStatusInactive, ClientStatusLead}

// Valid reports whether the status is one of the known client statuses.
func (s ClientStatus) Valid() bool {
	return s == ClientStatusActive || s == ClientStatusInactive || s == ClientStatusLead
}

// Client is a CRM client record. Each client is owned by exactly one
// manager; ManagerID never changes after creation. ManagerName is a
// denormalized display name resolved at read time and may be empty when
// the owning user no longer exists.
type Client struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Company     string       `json:"company"`
	Status      ClientStatus `json:"status"`
	ManagerID   string       `json:"managerId"`
	ManagerName string       `json:"managerName,omitempty"`
	Notes       string       `json:"notes"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
