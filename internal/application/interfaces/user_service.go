package interfaces

import (
	"context"

	"notes-service/internal/application/command"
	"notes-service/internal/application/query"
	"notes-service/internal/domain/entities"
)

type UserService interface {
	CreateUser(ctx context.Context, createCommand *command.CreateUserCommand) (*command.CreateUserCommandResult, error)
	LoginUser(ctx context.Context, loginCommand *command.LoginUserCommand) (*command.LoginUserCommandResult, error)
	ListUsers(ctx context.Context) (*query.UserQueryListResult, error)
	PromoteUser(ctx context.Context, promoteCommand *command.PromoteUserCommand) (*command.PromoteUserCommandResult, error)
}

type AuthGuard interface {
	Authenticate(ctx context.Context, token string) (*entities.User, error)
	RequireRole(user *entities.User, role string) error
}
