package command

import "notes-service/internal/application/common"

type PromoteUserCommand struct {
	Username string `validate:"required"`
	Role     string `validate:"required,oneof=user admin"`
}

type PromoteUserCommandResult struct {
	Result *common.UserResult `json:"result"`
}
