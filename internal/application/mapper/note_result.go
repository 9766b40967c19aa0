package mapper

import (
	"notes-service/internal/application/common"
	"notes-service/internal/domain/entities"
)

func NewNoteResultFromEntity(note *entities.Note) *common.NoteResult {
	return &common.NoteResult{
		Id:      note.Id,
		Title:   note.Title,
		Content: note.Content,
		OwnerId: note.OwnerId,
	}
}

func NewNoteResultsFromEntities(notes []*entities.Note) []*common.NoteResult {
	results := make([]*common.NoteResult, 0, len(notes))
	for _, n := range notes {
		results = append(results, NewNoteResultFromEntity(n))
	}
	return results
}
