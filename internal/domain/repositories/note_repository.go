package repositories

import (
	"context"

	"github.com/google/uuid"

	"notes-service/internal/domain/entities"
)

type NoteFilter struct {
	Offset int
	Limit  int
	Search string
}

// NoteRepository scopes every query by owner. A note owned by someone else is
// reported as domain.ErrNotFound.
type NoteRepository interface {
	List(ctx context.Context, ownerID uuid.UUID, filter NoteFilter) ([]*entities.Note, error)
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)
	Get(ctx context.Context, id, ownerID uuid.UUID) (*entities.Note, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, patch entities.NoteUpdate) (*entities.Note, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) (*entities.Note, error)
}
