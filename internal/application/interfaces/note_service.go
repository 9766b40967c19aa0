package interfaces

import (
	"context"

	"github.com/google/uuid"

	"notes-service/internal/application/command"
	"notes-service/internal/application/query"
	"notes-service/internal/domain/entities"
)

type NoteService interface {
	ListNotes(ctx context.Context, owner *entities.User, listQuery query.ListNotesQuery) (*query.NoteQueryListResult, error)
	CreateNote(ctx context.Context, owner *entities.User, createCommand *command.CreateNoteCommand) (*command.NoteCommandResult, error)
	GetNote(ctx context.Context, owner *entities.User, id uuid.UUID) (*query.NoteQueryResult, error)
	UpdateNote(ctx context.Context, owner *entities.User, updateCommand *command.UpdateNoteCommand) (*command.NoteCommandResult, error)
	DeleteNote(ctx context.Context, owner *entities.User, id uuid.UUID) (*command.NoteCommandResult, error)
}
