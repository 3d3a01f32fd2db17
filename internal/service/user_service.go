package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/service/auth"
	"github.com/phrazzld/crm-api/internal/store"
)

// RegisterInput carries a new account's details. An empty role defaults
// to manager; admin accounts are normally created by seeding, not
// self-registration, but the API does not forbid it.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
}

// ProfileUpdate carries the self-service profile changes. Nil fields
// are left untouched.
type ProfileUpdate struct {
	Name   *string
	Avatar *string
}

// AuthResult is a successful register or login: the issued token and
// the account it authenticates.
type AuthResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}

// TokenBlacklist revokes issued tokens until they expire on their own.
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, token string, ttl time.Duration) error
}

// UserService implements account registration, login, logout and
// profile management.
type UserService struct {
	users     store.UserStore
	hasher    auth.PasswordHasher
	jwt       auth.JWTService
	blacklist TokenBlacklist
	timeFunc  func() time.Time
	logger    *slog.Logger
}

// NewUserService creates a UserService over the given collaborators.
func NewUserService(users store.UserStore, hasher auth.PasswordHasher, jwt auth.JWTService, blacklist TokenBlacklist, logger *slog.Logger) *UserService {
	return &UserService{
		users:     users,
		hasher:    hasher,
		jwt:       jwt,
		blacklist: blacklist,
		timeFunc:  time.Now,
		logger:    logger.With(slog.String("service", "user")),
	}
}

// Register creates an account and signs the caller in. Returns
// store.ErrEmailExists when the email is taken.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleManager
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, in.Role)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.jwt.GenerateToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password both return ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwt.GenerateToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Logout revokes the presented token for the remainder of its validity.
// An already-expired token needs no revocation entry.
func (s *UserService) Logout(ctx context.Context, token string, claims *auth.Claims) error {
	ttl := claims.RemainingValidity(s.timeFunc())
	if err := s.blacklist.BlacklistToken(ctx, token, ttl); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	s.logger.Info("user logged out", "user_id", claims.UserID)
	return nil
}

// Me returns the principal's own account.
func (s *UserService) Me(ctx context.Context, p domain.Principal) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return user, nil
}

// UpdateMe applies profile changes to the principal's own account.
func (s *UserService) UpdateMe(ctx context.Context, p domain.Principal, upd ProfileUpdate) (*domain.User, error) {
	user, err := s.users.Update(ctx, p.ID, store.UserUpdate{
		Name:   upd.Name,
		Avatar: upd.Avatar,
	})
	if err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return user, nil
}

// ListUsers returns all accounts. Used by the manager-assignment
// dropdowns in the UI; visible to any authenticated principal.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}
