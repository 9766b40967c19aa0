package entities

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewNote(t *testing.T) {
	owner := uuid.New()

	n, err := NewNote(owner, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, owner, n.OwnerId)
	assert.NotEqual(t, uuid.Nil, n.Id)

	_, err = NewNote(owner, "", "b")
	assert.Error(t, err)

	_, err = NewNote(uuid.Nil, "a", "b")
	assert.Error(t, err)
}

func TestNote_Apply(t *testing.T) {
	tests := []struct {
		name        string
		patch       NoteUpdate
		wantChanged bool
		wantTitle   string
		wantContent string
		wantErr     bool
	}{
		{name: "empty patch", patch: NoteUpdate{}, wantTitle: "title", wantContent: "content"},
		{name: "title only", patch: NoteUpdate{Title: strPtr("new")}, wantChanged: true, wantTitle: "new", wantContent: "content"},
		{name: "content only", patch: NoteUpdate{Content: strPtr("")}, wantChanged: true, wantTitle: "title", wantContent: ""},
		{name: "same values", patch: NoteUpdate{Title: strPtr("title"), Content: strPtr("content")}, wantTitle: "title", wantContent: "content"},
		{name: "blank title", patch: NoteUpdate{Title: strPtr("")}, wantChanged: true, wantErr: true, wantContent: "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewNote(uuid.New(), "title", "content")
			require.NoError(t, err)
			before := n.UpdatedAt

			changed, err := n.Apply(tt.patch)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.wantTitle, n.Title)
			assert.Equal(t, tt.wantContent, n.Content)
			if !tt.wantChanged {
				assert.Equal(t, before, n.UpdatedAt)
			}
		})
	}
}

func TestUser_PasswordAndRole(t *testing.T) {
	u := NewUser("alice", "pw1")
	require.NoError(t, u.HashPassword())
	assert.NotEqual(t, "pw1", u.Password)
	assert.NoError(t, u.CheckPassword("pw1"))
	assert.Error(t, u.CheckPassword("pw2"))

	assert.True(t, u.HasRole("user"))
	require.NoError(t, u.ChangeRole("admin"))
	assert.True(t, u.HasRole("admin"))
	assert.Error(t, u.ChangeRole("root"))

	_, err := NewValidatedUser(&User{Username: "", Password: "x", Role: "user"})
	assert.Error(t, err)
}
