package api

// Request models for the HTTP API. The validate tags are enforced by
// shared.ValidateRequest before any service call; owner fields are
// absent throughout because ownership is never a caller choice.

// RegisterRequest is the payload for POST /api/register.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=72"`
	Name     string `json:"name"     validate:"omitempty,max=100"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin manager"`
}

// LoginRequest is the payload for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest is the payload for PUT /api/me. Absent fields
// are left unchanged.
type UpdateProfileRequest struct {
	Name   *string `json:"name"   validate:"omitempty,max=100"`
	Avatar *string `json:"avatar" validate:"omitempty,url"`
}

// ClientRequest is the payload for creating or updating a client.
type ClientRequest struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"omitempty,max=50"`
	Company string `json:"company" validate:"omitempty,max=200"`
	Status  string `json:"status"  validate:"required,oneof=active inactive lead"`
	Notes   string `json:"notes"   validate:"omitempty,max=2000"`
}

// TaskRequest is the payload for creating or updating a task. DueDate
// is required but deliberately not format-checked: a date the reminder
// scheduler cannot parse simply produces no reminder.
type TaskRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	ClientID    string `json:"clientId"    validate:"required"`
	Status      string `json:"status"      validate:"required,oneof=pending in_progress completed"`
	Priority    string `json:"priority"    validate:"required,oneof=low medium high"`
	DueDate     string `json:"dueDate"     validate:"required"`
}
