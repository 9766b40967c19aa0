package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notes-service/internal/application/command"
	"notes-service/internal/domain"
	"notes-service/internal/domain/entities"
	"notes-service/internal/infrastructure"
	"notes-service/internal/logger"
)

func hashedUser(t *testing.T, username, password string) *entities.User {
	t.Helper()
	u := entities.NewUser(username, password)
	require.NoError(t, u.HashPassword())
	return u
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	jwtService := infrastructure.NewJWTService("secret", time.Minute)

	t.Run("duplicate", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("FindByUsername", ctx, "alice").Return(entities.NewUser("alice", "x"), nil)
		svc := NewUserService(repo, jwtService, logger.Discard())

		_, err := svc.CreateUser(ctx, &command.CreateUserCommand{Username: "alice", Password: "secret"})
		assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("lost race", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("FindByUsername", ctx, "alice").Return(nil, nil)
		repo.On("Create", ctx, mock.Anything).Return(nil, domain.ErrDuplicateUsername)
		svc := NewUserService(repo, jwtService, logger.Discard())

		_, err := svc.CreateUser(ctx, &command.CreateUserCommand{Username: "alice", Password: "secret"})
		assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
	})

	t.Run("created with default role", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("FindByUsername", ctx, "alice").Return(nil, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(v *entities.ValidatedUser) bool {
			return v.Username == "alice" && v.Role == domain.RoleUser
		})).Return(entities.NewUser("alice", "hash"), nil)
		svc := NewUserService(repo, jwtService, logger.Discard())

		res, err := svc.CreateUser(ctx, &command.CreateUserCommand{Username: "alice", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, "alice", res.Result.Username)
		assert.Equal(t, domain.RoleUser, res.Result.Role)
		repo.AssertExpectations(t)
	})
}

func TestUserService_LoginUser(t *testing.T) {
	ctx := context.Background()
	jwtService := infrastructure.NewJWTService("secret", time.Minute)
	repo := new(mockUserRepo)
	repo.On("FindByUsername", ctx, "alice").Return(hashedUser(t, "alice", "right-pw"), nil)
	repo.On("FindByUsername", ctx, "ghost").Return(nil, nil)
	svc := NewUserService(repo, jwtService, logger.Discard())

	_, err := svc.LoginUser(ctx, &command.LoginUserCommand{Username: "alice", Password: "wrong-pw"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.LoginUser(ctx, &command.LoginUserCommand{Username: "ghost", Password: "right-pw"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	res, err := svc.LoginUser(ctx, &command.LoginUserCommand{Username: "alice", Password: "right-pw"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", res.TokenType)

	username, err := jwtService.Verify(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestUserService_PromoteUser(t *testing.T) {
	ctx := context.Background()
	alice := entities.NewUser("alice", "hash")
	repo := new(mockUserRepo)
	repo.On("FindByUsername", ctx, "alice").Return(alice, nil)
	repo.On("FindByUsername", ctx, "ghost").Return(nil, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(v *entities.ValidatedUser) bool {
		return v.Role == domain.RoleAdmin
	})).Return(alice, nil).Once()
	svc := NewUserService(repo, infrastructure.NewJWTService("secret", time.Minute), logger.Discard())

	res, err := svc.PromoteUser(ctx, &command.PromoteUserCommand{Username: "alice", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, res.Result.Role)

	_, err = svc.PromoteUser(ctx, &command.PromoteUserCommand{Username: "ghost", Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.PromoteUser(ctx, &command.PromoteUserCommand{Username: "alice", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertExpectations(t)
}

func TestAuthGuard(t *testing.T) {
	ctx := context.Background()
	jwtService := infrastructure.NewJWTService("secret", time.Minute)
	alice := entities.NewUser("alice", "hash")
	repo := new(mockUserRepo)
	repo.On("FindByUsername", ctx, "alice").Return(alice, nil)
	repo.On("FindByUsername", ctx, "deleted").Return(nil, nil)
	guard := NewAuthGuard(repo, jwtService)

	token, err := jwtService.Issue("alice")
	require.NoError(t, err)
	user, err := guard.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, alice.Id, user.Id)

	_, err = guard.Authenticate(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = guard.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	orphan, err := jwtService.Issue("deleted")
	require.NoError(t, err)
	_, err = guard.Authenticate(ctx, orphan)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.ErrorIs(t, guard.RequireRole(alice, domain.RoleAdmin), domain.ErrForbidden)
	assert.NoError(t, guard.RequireRole(alice, domain.RoleUser))
	assert.ErrorIs(t, guard.RequireRole(nil, domain.RoleUser), domain.ErrUnauthorized)
}
