package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Title     string
	Content   string
	OwnerId   uuid.UUID
}

// NoteUpdate carries only the fields a caller supplied. Nil means "leave as is".
type NoteUpdate struct {
	Title   *string
	Content *string
}

func (p NoteUpdate) IsEmpty() bool {
	return p.Title == nil && p.Content == nil
}

func NewNote(ownerID uuid.UUID, title, content string) (*Note, error) {
	now := time.Now()
	n := &Note{
		Id:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Title:     title,
		Content:   content,
		OwnerId:   ownerID,
	}
	if err := n.validate(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Note) validate() error {
	if n.OwnerId == uuid.Nil {
		return errors.New("note must have an owner")
	}
	if n.Title == "" {
		return errors.New("title must not be empty")
	}
	return nil
}

// Apply copies the supplied fields onto the note and reports whether anything changed.
func (n *Note) Apply(p NoteUpdate) (bool, error) {
	changed := false
	if p.Title != nil && *p.Title != n.Title {
		n.Title = *p.Title
		changed = true
	}
	if p.Content != nil && *p.Content != n.Content {
		n.Content = *p.Content
		changed = true
	}
	if !changed {
		return false, nil
	}
	n.UpdatedAt = time.Now()
	return true, n.validate()
}

func (n *Note) OwnedBy(userID uuid.UUID) bool {
	return n.OwnerId == userID
}
