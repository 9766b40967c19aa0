package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"notes-service/internal/domain/entities"
	"notes-service/internal/domain/repositories"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	args := m.Called(ctx, user)
	u, _ := args.Get(0).(*entities.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindById(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entities.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*entities.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).([]*entities.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	args := m.Called(ctx, user)
	u, _ := args.Get(0).(*entities.User)
	return u, args.Error(1)
}

type mockNoteRepo struct {
	mock.Mock
}

func (m *mockNoteRepo) List(ctx context.Context, ownerID uuid.UUID, filter repositories.NoteFilter) ([]*entities.Note, error) {
	args := m.Called(ctx, ownerID, filter)
	n, _ := args.Get(0).([]*entities.Note)
	return n, args.Error(1)
}

func (m *mockNoteRepo) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	n, _ := args.Get(0).(*entities.Note)
	return n, args.Error(1)
}

func (m *mockNoteRepo) Get(ctx context.Context, id, ownerID uuid.UUID) (*entities.Note, error) {
	args := m.Called(ctx, id, ownerID)
	n, _ := args.Get(0).(*entities.Note)
	return n, args.Error(1)
}

func (m *mockNoteRepo) Update(ctx context.Context, id, ownerID uuid.UUID, patch entities.NoteUpdate) (*entities.Note, error) {
	args := m.Called(ctx, id, ownerID, patch)
	n, _ := args.Get(0).(*entities.Note)
	return n, args.Error(1)
}

func (m *mockNoteRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) (*entities.Note, error) {
	args := m.Called(ctx, id, ownerID)
	n, _ := args.Get(0).(*entities.Note)
	return n, args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) GetList(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	b, _ := args.Get(0).([]byte)
	return b, args.Bool(1), args.Error(2)
}

func (m *mockCache) PutList(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) InvalidateOwner(ctx context.Context, ownerID uuid.UUID) error {
	return m.Called(ctx, ownerID).Error(0)
}

type mockQueue struct {
	mock.Mock
}

func (m *mockQueue) Submit(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *mockQueue) Close() error {
	return m.Called().Error(0)
}
