package service

import "errors"

// Service-level errors surfaced to the API layer.
var (
	// ErrNotVisible is returned when an entity either does not exist or
	// is outside the acting principal's scope. The two cases are
	// deliberately indistinguishable here; the API layer maps the error
	// to a status code based on the caller's role.
	ErrNotVisible = errors.New("entity not visible")

	// ErrInvalidCredentials is returned on a failed login. Unknown email
	// and wrong password are indistinguishable by design.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
