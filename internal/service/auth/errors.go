// Package auth provides token issuing/validation and password hashing.
package auth

import "errors"

// Token validation errors.
var (
	// ErrInvalidToken is returned when a token is malformed, has a bad
	// signature, or carries unusable claims.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token is past its expiry.
	ErrExpiredToken = errors.New("token expired")

	// ErrRevokedToken is returned when a token has been blacklisted by a
	// logout.
	ErrRevokedToken = errors.New("token revoked")
)
