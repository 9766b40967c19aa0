package infrastructure

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"

	"notes-service/internal/config"
)

const (
	ProviderLog      = "log"
	ProviderSendGrid = "sendgrid"
	ProviderResend   = "resend"
)

// EmailSender delivers one notification email.
type EmailSender interface {
	Send(ctx context.Context, to string) error
}

// NewEmailSender picks the provider named by EMAIL_PROVIDER. Real providers
// without an API key fall back to the log sender.
func NewEmailSender(cfg config.Email, log *slog.Logger) (EmailSender, error) {
	log = log.With(slog.String("component", "email"))

	provider := strings.ToLower(cfg.Provider)
	if provider != ProviderLog && cfg.APIKey == "" {
		log.Warn("EMAIL_API_KEY is empty, emails will only be logged", slog.String("provider", provider))
		provider = ProviderLog
	}

	log.Info("email sender configured",
		slog.String("provider", provider),
		slog.String("api_key", maskKey(cfg.APIKey)),
		slog.String("sender", cfg.Sender),
	)

	switch provider {
	case ProviderLog:
		return NewLogSender(log), nil
	case ProviderSendGrid:
		return NewSendGridSender(cfg, log), nil
	case ProviderResend:
		return NewResendSender(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown EMAIL_PROVIDER %q", cfg.Provider)
	}
}

// maskKey keeps only the first and last four characters of an API key.
func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + "****" + key[len(key)-4:]
}

// LogSender only records that an email would have been sent.
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, to string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.log.Info(fmt.Sprintf("Email sent to %s", to))
	return nil
}
