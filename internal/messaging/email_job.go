package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"notes-service/internal/infrastructure"
	"notes-service/internal/logger"
)

const (
	EmailSubject    = "email.send"
	EmailQueueGroup = "email-workers"

	jobTimeout = 30 * time.Second
)

var ErrQueueClosed = errors.New("task queue is closed")

type EmailJob struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func NewEmailJob(email string) EmailJob {
	return EmailJob{
		ID:          uuid.NewString(),
		Email:       email,
		SubmittedAt: time.Now().UTC(),
	}
}

func decodeJob(data []byte) (EmailJob, error) {
	var job EmailJob
	if err := json.Unmarshal(data, &job); err != nil {
		return EmailJob{}, fmt.Errorf("decode email job: %w", err)
	}
	if job.ID == "" || job.Email == "" {
		return EmailJob{}, errors.New("decode email job: missing id or email")
	}
	return job, nil
}

// Queue accepts email jobs and returns as soon as the job is handed off.
type Queue interface {
	Submit(ctx context.Context, email string) (jobID string, err error)
	Close() error
}

// JobHandler runs one job on a worker.
type JobHandler func(ctx context.Context, job EmailJob) error

// NewEmailHandler sends the job's email and records the outcome. Failures
// are only logged and counted, nobody waits on the result.
func NewEmailHandler(sender infrastructure.EmailSender, metrics *infrastructure.Metrics, log *slog.Logger) JobHandler {
	log = log.With(slog.String("component", "email_worker"))
	return func(ctx context.Context, job EmailJob) error {
		err := sender.Send(ctx, job.Email)
		if err != nil {
			log.Error("email job failed", slog.String("job_id", job.ID), logger.Err(err))
			if metrics != nil {
				metrics.EmailJobs.WithLabelValues("failed").Inc()
			}
			return err
		}
		log.Debug("email job done", slog.String("job_id", job.ID), slog.Duration("latency", time.Since(job.SubmittedAt)))
		if metrics != nil {
			metrics.EmailJobs.WithLabelValues("sent").Inc()
		}
		return nil
	}
}
