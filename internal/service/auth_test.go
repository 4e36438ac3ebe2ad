package service

import (
	"context"
	"errors"
	"testing"

	"genset-rental-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepo)
		tokens := new(MockTokenManager)
		svc := NewAuthService(users, tokens)

		user := &domain.User{ID: 1, Username: "admin", Email: "admin@example.com", Role: domain.UserRoleAdmin, PasswordHash: hashPassword(t, "secret123")}
		users.On("GetByLogin", mock.Anything, "admin@example.com").Return(user, nil).Once()
		tokens.On("GenerateAccessToken", user).Return("signed-token", nil).Once()

		result, err := svc.Login(ctx, domain.LoginInput{Username: " admin@example.com ", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "signed-token", result.Token)
		assert.Equal(t, "admin", result.User.Username)
		users.AssertExpectations(t)
		tokens.AssertExpectations(t)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		users := new(MockUserRepo)
		tokens := new(MockTokenManager)
		svc := NewAuthService(users, tokens)

		users.On("GetByLogin", mock.Anything, "admin").Return(&domain.User{ID: 1, PasswordHash: hashPassword(t, "secret123")}, nil).Once()

		_, err := svc.Login(ctx, domain.LoginInput{Username: "admin", Password: "nope"})
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
		assert.Equal(t, "Invalid credentials", err.(*domain.Error).Message)
		tokens.AssertNotCalled(t, "GenerateAccessToken", mock.Anything)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := NewAuthService(users, new(MockTokenManager))

		users.On("GetByLogin", mock.Anything, "ghost").Return(nil, domain.NewNotFoundError("user", "ghost")).Once()

		_, err := svc.Login(ctx, domain.LoginInput{Username: "ghost", Password: "whatever"})
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	})

	t.Run("MissingPassword", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := NewAuthService(users, new(MockTokenManager))

		_, err := svc.Login(ctx, domain.LoginInput{Username: "admin"})
		assert.True(t, errors.Is(err, domain.ErrValidation))
		users.AssertNotCalled(t, "GetByLogin", mock.Anything, mock.Anything)
	})
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("AlreadyExists", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := NewAuthService(users, new(MockTokenManager))

		users.On("GetByLogin", mock.Anything, "admin").Return(&domain.User{ID: 1}, nil).Once()

		require.NoError(t, svc.EnsureAdmin(ctx, "admin", "admin@example.com", "secret123"))
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := NewAuthService(users, new(MockTokenManager))

		users.On("GetByLogin", mock.Anything, "admin").Return(nil, domain.NewNotFoundError("user", "admin")).Once()
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "admin" && u.Role == domain.UserRoleAdmin &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")) == nil
		})).Return(nil).Once()

		require.NoError(t, svc.EnsureAdmin(ctx, "admin", "admin@example.com", "secret123"))
		users.AssertExpectations(t)
	})
}
