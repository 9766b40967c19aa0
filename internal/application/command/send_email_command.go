package command

const EmailStatusStarted = "Email sending started"

type SendEmailCommand struct {
	Email string `json:"email" query:"email" validate:"required,email"`
}

type SendEmailCommandResult struct {
	TaskId string `json:"task_id"`
	Status string `json:"status"`
}
