package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"notes-service/internal/domain"
	"notes-service/internal/domain/entities"
	"notes-service/internal/domain/repositories"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) repositories.NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) List(ctx context.Context, ownerID uuid.UUID, filter repositories.NoteFilter) ([]*entities.Note, error) {
	q := r.db.WithContext(ctx).Model(&NoteModel{}).Where("owner_id = ?", ownerID)
	if filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(filter.Search)) + "%"
		q = q.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	var noteModels []NoteModel
	err := q.Order("created_at ASC").Order("id ASC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&noteModels).Error
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	notes := make([]*entities.Note, 0, len(noteModels))
	for i := range noteModels {
		notes = append(notes, r.mapToEntity(&noteModels[i]))
	}
	return notes, nil
}

func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	noteModel := NoteModel{
		Id:        note.Id,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
		Title:     note.Title,
		Content:   note.Content,
		OwnerId:   note.OwnerId,
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&noteModel).Error; err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}

	return r.Get(ctx, note.Id, note.OwnerId)
}

func (r *NoteRepository) Get(ctx context.Context, id, ownerID uuid.UUID) (*entities.Note, error) {
	return r.get(r.db.WithContext(ctx), id, ownerID)
}

func (r *NoteRepository) Update(ctx context.Context, id, ownerID uuid.UUID, patch entities.NoteUpdate) (*entities.Note, error) {
	var note *entities.Note
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		note, err = r.get(tx, id, ownerID)
		if err != nil {
			return err
		}

		changed, err := note.Apply(patch)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		if !changed {
			return nil
		}

		// map form so that an empty content string is written too
		return tx.Model(&NoteModel{}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Updates(map[string]interface{}{
				"title":      note.Title,
				"content":    note.Content,
				"updated_at": note.UpdatedAt,
			}).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	return note, nil
}

func (r *NoteRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (*entities.Note, error) {
	var snapshot *entities.Note
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		snapshot, err = r.get(tx, id, ownerID)
		if err != nil {
			return err
		}

		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&NoteModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("delete note: %w", err)
	}
	return snapshot, nil
}

func (r *NoteRepository) get(db *gorm.DB, id, ownerID uuid.UUID) (*entities.Note, error) {
	var noteModel NoteModel
	if err := db.Where("id = ? AND owner_id = ?", id, ownerID).First(&noteModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return r.mapToEntity(&noteModel), nil
}

func (r *NoteRepository) mapToEntity(noteModel *NoteModel) *entities.Note {
	return &entities.Note{
		Id:        noteModel.Id,
		CreatedAt: noteModel.CreatedAt,
		UpdatedAt: noteModel.UpdatedAt,
		Title:     noteModel.Title,
		Content:   noteModel.Content,
		OwnerId:   noteModel.OwnerId,
	}
}
