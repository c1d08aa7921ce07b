package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"leaseflow-backend/internal/domain"
	"leaseflow-backend/internal/security"
)

func newTestAuthService(t *testing.T) (AuthService, *MockUserRepo) {
	t.Helper()
	users := new(MockUserRepo)
	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	return NewAuthService(users, tokens), users
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, users := newTestAuthService(t)
		users.On("GetByEmail", mock.Anything, "alice@test.com").Return(&domain.User{
			ID:           "user-1",
			Email:        "alice@test.com",
			Name:         "Alice",
			Role:         domain.RoleAdmin,
			PasswordHash: hashPassword(t, "correct horse"),
		}, nil)

		token, user, err := svc.Login(ctx, "alice@test.com", "correct horse")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "user-1", user.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		svc, users := newTestAuthService(t)
		users.On("GetByEmail", mock.Anything, "alice@test.com").Return(&domain.User{
			ID:           "user-1",
			Email:        "alice@test.com",
			PasswordHash: hashPassword(t, "correct horse"),
		}, nil)

		_, _, err := svc.Login(ctx, "alice@test.com", "battery staple")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		svc, users := newTestAuthService(t)
		users.On("GetByEmail", mock.Anything, "nobody@test.com").Return(nil, domain.ErrNotFound)

		_, _, err := svc.Login(ctx, "nobody@test.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_CreateUser(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{ID: "admin-1", Name: "Root", Role: domain.RoleAdmin}

	t.Run("HashesPasswordAndDefaultsRole", func(t *testing.T) {
		svc, users := newTestAuthService(t)
		users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := svc.CreateUser(ctx, admin, &domain.User{
			Email: "bob@test.com",
			Name:  "Bob",
		}, "long enough password")
		require.NoError(t, err)
		assert.Equal(t, domain.RolePartner, user.Role)
		assert.NotEqual(t, "long enough password", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("long enough password")))
		users.AssertExpectations(t)
	})

	t.Run("NonAdminRejected", func(t *testing.T) {
		svc, users := newTestAuthService(t)

		_, err := svc.CreateUser(ctx, domain.Actor{ID: "user-1", Role: domain.RolePartner},
			&domain.User{Email: "bob@test.com"}, "long enough password")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		users.AssertNotCalled(t, "Create")
	})

	t.Run("ShortPasswordRejected", func(t *testing.T) {
		svc, users := newTestAuthService(t)

		_, err := svc.CreateUser(ctx, admin, &domain.User{Email: "bob@test.com"}, "short")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		users.AssertNotCalled(t, "Create")
	})
}
