package messaging

import (
	"context"
	"sync"

	"golang.org/x/exp/slog"

	"notes-service/internal/domain"
)

// LocalQueue is a bounded in-process worker pool used when no broker is
// configured. Submit never blocks: a full buffer is reported as
// domain.ErrQueueFull.
type LocalQueue struct {
	jobs   chan EmailJob
	handle JobHandler
	log    *slog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewLocalQueue(workers, size int, handle JobHandler, log *slog.Logger) *LocalQueue {
	q := &LocalQueue{
		jobs:   make(chan EmailJob, size),
		handle: handle,
		log:    log.With(slog.String("component", "local_queue")),
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.work()
	}
	return q
}

func (q *LocalQueue) Submit(_ context.Context, email string) (string, error) {
	job := NewEmailJob(email)

	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return "", ErrQueueClosed
	}

	select {
	case q.jobs <- job:
		return job.ID, nil
	default:
		return "", domain.ErrQueueFull
	}
}

// Close stops accepting jobs and waits for the buffered ones to finish.
func (q *LocalQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
	q.log.Info("local queue drained")
	return nil
}

func (q *LocalQueue) work() {
	defer q.wg.Done()
	for job := range q.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		_ = q.handle(ctx, job)
		cancel()
	}
}
