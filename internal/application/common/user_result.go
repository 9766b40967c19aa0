package common

import (
	"github.com/google/uuid"
)

type UserResult struct {
	Id       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}
