package command

import "notes-service/internal/application/common"

type CreateUserCommand struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

type CreateUserCommandResult struct {
	Result *common.UserResult `json:"result"`
}
