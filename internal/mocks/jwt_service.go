package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService. The default behavior
// issues the token "token-<userID>" and validates only tokens of that
// shape, registered via GenerateToken.
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, user *domain.User) (string, time.Time, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	issued map[string]*auth.Claims
}

// NewMockJWTService creates an empty mock service.
func NewMockJWTService() *MockJWTService {
	return &MockJWTService{issued: make(map[string]*auth.Claims)}
}

// GenerateToken implements auth.JWTService.
func (m *MockJWTService) GenerateToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, user)
	}
	now := time.Now().UTC()
	expiresAt := now.Add(time.Hour)
	token := "token-" + user.ID
	m.issued[token] = &auth.Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}
	return token, expiresAt, nil
}

// ValidateToken implements auth.JWTService.
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	claims, ok := m.issued[tokenString]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return claims, nil
}
