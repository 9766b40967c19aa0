package services

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"notes-service/internal/application/command"
	"notes-service/internal/application/interfaces"
	"notes-service/internal/application/mapper"
	"notes-service/internal/application/query"
	"notes-service/internal/domain"
	"notes-service/internal/domain/entities"
	"notes-service/internal/domain/repositories"
	"notes-service/internal/infrastructure"
)

type UserService struct {
	userRepo   repositories.UserRepository
	jwtService *infrastructure.JWTService
	log        *slog.Logger
}

func NewUserService(
	userRepo repositories.UserRepository,
	jwtService *infrastructure.JWTService,
	log *slog.Logger,
) interfaces.UserService {
	return &UserService{
		userRepo:   userRepo,
		jwtService: jwtService,
		log:        log.With(slog.String("component", "user_service")),
	}
}

// CreateUser registers a new account with the default role. The lookup catches
// the common duplicate case; the repository translates the unique constraint
// for concurrent registrations.
func (s *UserService) CreateUser(ctx context.Context, createCommand *command.CreateUserCommand) (*command.CreateUserCommandResult, error) {
	existingUser, err := s.userRepo.FindByUsername(ctx, createCommand.Username)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, domain.ErrDuplicateUsername
	}

	newUser := entities.NewUser(createCommand.Username, createCommand.Password)
	validatedUser, err := entities.NewValidatedUser(newUser)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	createdUser, err := s.userRepo.Create(ctx, validatedUser)
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", slog.String("user_id", createdUser.Id.String()))
	return &command.CreateUserCommandResult{
		Result: mapper.NewUserResultFromEntity(createdUser),
	}, nil
}

func (s *UserService) LoginUser(ctx context.Context, loginCommand *command.LoginUserCommand) (*command.LoginUserCommandResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, loginCommand.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := user.CheckPassword(loginCommand.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user.Username)
	if err != nil {
		return nil, err
	}

	return &command.LoginUserCommandResult{
		AccessToken: token,
		TokenType:   command.TokenTypeBearer,
	}, nil
}

func (s *UserService) ListUsers(ctx context.Context) (*query.UserQueryListResult, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return &query.UserQueryListResult{
		Result: mapper.NewUserResultsFromEntities(users),
	}, nil
}

func (s *UserService) PromoteUser(ctx context.Context, promoteCommand *command.PromoteUserCommand) (*command.PromoteUserCommandResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, promoteCommand.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	if err := user.ChangeRole(promoteCommand.Role); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	validatedUser, err := entities.NewValidatedUser(user)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	updatedUser, err := s.userRepo.Update(ctx, validatedUser)
	if err != nil {
		return nil, err
	}

	s.log.Info("user role changed",
		slog.String("user_id", updatedUser.Id.String()),
		slog.String("role", updatedUser.Role),
	)
	return &command.PromoteUserCommandResult{
		Result: mapper.NewUserResultFromEntity(updatedUser),
	}, nil
}

// AuthGuard resolves bearer tokens to users and checks roles.
type AuthGuard struct {
	userRepo   repositories.UserRepository
	jwtService *infrastructure.JWTService
}

func NewAuthGuard(userRepo repositories.UserRepository, jwtService *infrastructure.JWTService) interfaces.AuthGuard {
	return &AuthGuard{userRepo: userRepo, jwtService: jwtService}
}

func (g *AuthGuard) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	username, err := g.jwtService.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := g.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: account no longer exists", domain.ErrUnauthorized)
	}
	return user, nil
}

func (g *AuthGuard) RequireRole(user *entities.User, role string) error {
	if user == nil {
		return domain.ErrUnauthorized
	}
	if !user.HasRole(role) {
		return domain.ErrForbidden
	}
	return nil
}

