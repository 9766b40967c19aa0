package query

import "notes-service/internal/application/common"

const (
	DefaultNotesLimit = 100
	MaxNotesLimit     = 1000
)

type ListNotesQuery struct {
	Offset int
	Limit  int
	Search string
}

// Normalize applies the pagination defaults: a non-positive limit becomes
// DefaultNotesLimit, larger ones are capped at MaxNotesLimit and a negative
// offset becomes zero.
func (q ListNotesQuery) Normalize() ListNotesQuery {
	if q.Limit <= 0 {
		q.Limit = DefaultNotesLimit
	}
	if q.Limit > MaxNotesLimit {
		q.Limit = MaxNotesLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

type NoteQueryResult struct {
	Result *common.NoteResult `json:"result"`
}

type NoteQueryListResult struct {
	Result []*common.NoteResult `json:"result"`
}
