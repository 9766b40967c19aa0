package postgres

import (
	"time"

	"github.com/google/uuid"
)

type UserModel struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string `gorm:"uniqueIndex;size:191;not null"`
	Password  string `gorm:"size:255;not null"`
	Role      string `gorm:"size:32;not null;default:user"`
}

func (UserModel) TableName() string {
	return "users"
}
