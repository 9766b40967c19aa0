package repositories

import (
	"context"

	"github.com/google/uuid"

	"notes-service/internal/domain/entities"
)

// UserRepository is the credential store. Find* methods return (nil, nil) when
// no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error)
	FindById(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
	Update(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error)
}
