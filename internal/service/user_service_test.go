package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/mocks"
	"github.com/phrazzld/crm-api/internal/service/auth"
	"github.com/phrazzld/crm-api/internal/store"
)

func newUserFixture(t *testing.T) (*UserService, *mocks.MockUserStore, *mocks.MockCache) {
	t.Helper()
	users := mocks.NewMockUserStore()
	cache := mocks.NewMockCache()
	svc := NewUserService(users, auth.NewBcryptHasher(), mocks.NewMockJWTService(), cache, testLogger())
	return svc, users, cache
}

func TestUserServiceRegisterDefaultsToManagerRole(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	result, err := svc.Register(context.Background(), RegisterInput{
		Email:    "new@example.com",
		Password: "secret",
		Name:     "New User",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleManager, result.User.Role)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.User.ID)
}

func TestUserServiceRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "dup@example.com", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Email: "dup@example.com", Password: "other"})
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestUserServiceRegisterRejectsUnknownRole(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "x@example.com",
		Password: "secret",
		Role:     domain.Role("superuser"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestUserServiceLogin(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	_, err := svc.Register(context.Background(), RegisterInput{Email: "login@example.com", Password: "hunter2"})
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), "login@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "login@example.com", result.User.Email)

	_, err = svc.Login(context.Background(), "login@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email is indistinguishable from a wrong password.
	_, err = svc.Login(context.Background(), "nobody@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserServiceLogoutRevokesForRemainingValidity(t *testing.T) {
	svc, _, cache := newUserFixture(t)
	now := time.Now().UTC()
	svc.timeFunc = func() time.Time { return now }

	claims := &auth.Claims{
		UserID:    "user-1",
		ExpiresAt: now.Add(30 * time.Minute),
	}
	require.NoError(t, svc.Logout(context.Background(), "the-token", claims))

	ttl, revoked := cache.Revoked["the-token"]
	require.True(t, revoked)
	assert.Equal(t, 30*time.Minute, ttl)
}

func TestUserServiceLogoutExpiredTokenNeedsNoEntry(t *testing.T) {
	svc, _, cache := newUserFixture(t)
	now := time.Now().UTC()
	svc.timeFunc = func() time.Time { return now }

	claims := &auth.Claims{UserID: "user-1", ExpiresAt: now.Add(-time.Minute)}
	require.NoError(t, svc.Logout(context.Background(), "stale-token", claims))
	assert.Empty(t, cache.Revoked)
}

func TestUserServiceProfile(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	seeded := users.Seed(domain.User{Email: "me@example.com", Name: "Old", Role: domain.RoleManager})
	p := domain.Principal{ID: seeded.ID, Email: seeded.Email, Role: seeded.Role}

	me, err := svc.Me(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "Old", me.Name)

	newName := "New Name"
	avatar := "https://example.com/a.png"
	updated, err := svc.UpdateMe(context.Background(), p, ProfileUpdate{Name: &newName, Avatar: &avatar})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, avatar, updated.Avatar)

	// Nil fields leave the stored values alone.
	updated, err = svc.UpdateMe(context.Background(), p, ProfileUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
}

func TestUserServiceListUsers(t *testing.T) {
	svc, users, _ := newUserFixture(t)

	list, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	users.Seed(domain.User{Email: "a@example.com"})
	users.Seed(domain.User{Email: "b@example.com"})

	list, err = svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
