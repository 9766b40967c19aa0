package common

import (
	"github.com/google/uuid"
)

type NoteResult struct {
	Id      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	OwnerId uuid.UUID `json:"owner_id"`
}
