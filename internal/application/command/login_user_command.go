package command

const TokenTypeBearer = "bearer"

type LoginUserCommand struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginUserCommandResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
