package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"notes-service/internal/application/command"
	"notes-service/internal/application/interfaces"
	"notes-service/internal/domain"
	"notes-service/internal/infrastructure"
	"notes-service/internal/logger"
	"notes-service/internal/messaging"
)

type EmailService struct {
	queue   messaging.Queue
	metrics *infrastructure.Metrics
	log     *slog.Logger
}

func NewEmailService(queue messaging.Queue, metrics *infrastructure.Metrics, log *slog.Logger) interfaces.EmailService {
	return &EmailService{
		queue:   queue,
		metrics: metrics,
		log:     log.With(slog.String("component", "email_service")),
	}
}

// SendEmail hands the job to the queue and returns without waiting for delivery.
func (s *EmailService) SendEmail(ctx context.Context, sendCommand *command.SendEmailCommand) (*command.SendEmailCommandResult, error) {
	if sendCommand.Email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	taskID, err := s.queue.Submit(ctx, sendCommand.Email)
	if err != nil {
		s.log.Error("email job rejected", logger.Err(err))
		if errors.Is(err, domain.ErrQueueFull) {
			return nil, err
		}
		if s.metrics != nil {
			s.metrics.BackendFailures.WithLabelValues(infrastructure.ComponentQueue).Inc()
		}
		return nil, fmt.Errorf("submit email job: %w", err)
	}

	if s.metrics != nil {
		s.metrics.EmailJobs.WithLabelValues("submitted").Inc()
	}
	s.log.Debug("email job submitted", slog.String("task_id", taskID))

	return &command.SendEmailCommandResult{
		TaskId: taskID,
		Status: command.EmailStatusStarted,
	}, nil
}
