package postgres

import (
	"time"

	"github.com/google/uuid"
)

type NoteModel struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	Title     string    `gorm:"size:255;not null"`
	Content   string    `gorm:"type:text;not null"`
	OwnerId   uuid.UUID `gorm:"type:uuid;not null;index"`
	Owner     UserModel `gorm:"foreignKey:OwnerId;references:Id;constraint:OnDelete:CASCADE"`
}

func (NoteModel) TableName() string {
	return "notes"
}
