package interfaces

import (
	"context"

	"notes-service/internal/application/command"
)

type EmailService interface {
	SendEmail(ctx context.Context, sendCommand *command.SendEmailCommand) (*command.SendEmailCommandResult, error)
}
