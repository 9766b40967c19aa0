package infrastructure

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"golang.org/x/exp/slog"

	"notes-service/internal/config"
)

type ResendSender struct {
	client  *resend.Client
	sender  string
	subject string
	body    string
	log     *slog.Logger
}

func NewResendSender(cfg config.Email, log *slog.Logger) *ResendSender {
	return &ResendSender{
		client:  resend.NewClient(cfg.APIKey),
		sender:  cfg.Sender,
		subject: cfg.Subject,
		body:    cfg.Body,
		log:     log,
	}
}

func (s *ResendSender) Send(ctx context.Context, to string) error {
	params := &resend.SendEmailRequest{
		From:    s.sender,
		To:      []string{to},
		Subject: s.subject,
		Text:    s.body,
	}

	response, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}

	s.log.Info("email sent", slog.String("to", to), slog.String("id", response.Id))
	return nil
}
