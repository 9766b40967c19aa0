package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"notes-service/internal/application/command"
	"notes-service/internal/application/interfaces"
	"notes-service/internal/domain"
)

type EmailHandler struct {
	emailService interfaces.EmailService
}

func NewEmailHandler(emailService interfaces.EmailService) *EmailHandler {
	return &EmailHandler{emailService: emailService}
}

// SendEmail takes the address from the JSON body or the email query parameter.
func (h *EmailHandler) SendEmail(c echo.Context) error {
	var req command.SendEmailCommand
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput)
	}
	if req.Email == "" {
		req.Email = c.QueryParam("email")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.emailService.SendEmail(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, res)
}
