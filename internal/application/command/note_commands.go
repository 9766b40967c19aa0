package command

import (
	"github.com/google/uuid"

	"notes-service/internal/application/common"
)

type CreateNoteCommand struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content"`
}

// UpdateNoteCommand is a partial update: nil fields are left unchanged.
type UpdateNoteCommand struct {
	Id      uuid.UUID `json:"-"`
	Title   *string   `json:"title" validate:"omitempty,max=255"`
	Content *string   `json:"content"`
}

type NoteCommandResult struct {
	Result *common.NoteResult `json:"result"`
}
