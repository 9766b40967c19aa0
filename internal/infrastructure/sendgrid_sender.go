package infrastructure

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"golang.org/x/exp/slog"

	"notes-service/internal/config"
)

type SendGridSender struct {
	client  *sendgrid.Client
	from    *mail.Email
	subject string
	body    string
	log     *slog.Logger
}

func NewSendGridSender(cfg config.Email, log *slog.Logger) *SendGridSender {
	return &SendGridSender{
		client:  sendgrid.NewSendClient(cfg.APIKey),
		from:    mail.NewEmail("Notes", cfg.Sender),
		subject: cfg.Subject,
		body:    cfg.Body,
		log:     log,
	}
}

func (s *SendGridSender) Send(ctx context.Context, to string) error {
	message := mail.NewSingleEmail(s.from, s.subject, mail.NewEmail("", to), s.body, fmt.Sprintf("<p>%s</p>", s.body))

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", response.StatusCode, response.Body)
	}

	s.log.Info("email sent", slog.String("to", to), slog.Int("status", response.StatusCode))
	return nil
}
