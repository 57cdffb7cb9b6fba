package service

import (
	"context"
	"testing"

	"library-backend/internal/domain"
	"library-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

func TestRegister(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager(testJWTSecret, 60)

	t.Run("Success defaults to patron role", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewAuthService(repo, tokens)

		repo.On("GetByEmail", ctx, "new@example.com").Return(nil, domain.ErrBorrowerNotFound)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 1
		}).Return(nil)

		user, err := svc.Register(ctx, "New", "Reader", "new@example.com", "s3cret-pass", "", "", "")

		require.NoError(t, err)
		assert.Equal(t, domain.RolePatron, user.Role)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))
	})

	t.Run("Duplicate email", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewAuthService(repo, tokens)

		repo.On("GetByEmail", ctx, "taken@example.com").Return(&domain.User{ID: 1, Email: "taken@example.com"}, nil)

		_, err := svc.Register(ctx, "New", "Reader", "taken@example.com", "s3cret-pass", "", "", "")

		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
		repo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager(testJWTSecret, 60)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	existing := &domain.User{ID: 1, Email: "pat@example.com", PasswordHash: string(hash), Role: domain.RolePatron}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewAuthService(repo, tokens)

		repo.On("GetByEmail", ctx, "pat@example.com").Return(existing, nil)

		token, user, err := svc.Login(ctx, "pat@example.com", "s3cret-pass")

		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)

		claims, err := tokens.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, int64(1), claims.UserID)
		assert.Equal(t, string(domain.RolePatron), claims.Role)
	})

	t.Run("Wrong password", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewAuthService(repo, tokens)

		repo.On("GetByEmail", ctx, "pat@example.com").Return(existing, nil)

		_, _, err := svc.Login(ctx, "pat@example.com", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewAuthService(repo, tokens)

		repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrBorrowerNotFound)

		_, _, err := svc.Login(ctx, "ghost@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
