package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"golang.org/x/exp/slog"

	"notes-service/internal/logger"
)

var natsConfig = natsConfiguration{
	connectionTimeout: 5 * time.Second,
	reconnectWait:     1 * time.Second,
	maxReconnects:     10,
	drainTimeout:      10 * time.Second,
}

type natsConfiguration struct {
	connectionTimeout time.Duration
	reconnectWait     time.Duration
	maxReconnects     int
	drainTimeout      time.Duration
}

// ConnectNats dials the broker with reconnect handling that reports through log.
func ConnectNats(url, name string, log *slog.Logger, extra ...nats.Option) (*nats.Conn, error) {
	log = log.With(slog.String("component", "nats"))

	opts := []nats.Option{
		nats.Name(name),
		nats.Timeout(natsConfig.connectionTimeout),
		nats.ReconnectWait(natsConfig.reconnectWait),
		nats.MaxReconnects(natsConfig.maxReconnects),
		nats.DrainTimeout(natsConfig.drainTimeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("nats disconnected", logger.Err(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("nats reconnected", slog.String("url", nc.ConnectedUrl()))
		}),
		nats.ErrorHandler(func(_ *nats.Conn, sub *nats.Subscription, err error) {
			subject := ""
			if sub != nil {
				subject = sub.Subject
			}
			log.Error("nats error", slog.String("subject", subject), logger.Err(err))
		}),
	}

	nc, err := nats.Connect(url, append(opts, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	log.Info("connected to nats", slog.String("url", nc.ConnectedUrl()))
	return nc, nil
}

// NatsQueue publishes jobs to EmailSubject for NatsWorker instances.
type NatsQueue struct {
	nc *nats.Conn
}

func NewNatsQueue(nc *nats.Conn) *NatsQueue {
	return &NatsQueue{nc: nc}
}

func (q *NatsQueue) Submit(_ context.Context, email string) (string, error) {
	if q.nc == nil || q.nc.IsClosed() {
		return "", nats.ErrConnectionClosed
	}

	job := NewEmailJob(email)
	data, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("encode email job: %w", err)
	}
	if err := q.nc.Publish(EmailSubject, data); err != nil {
		return "", fmt.Errorf("publish email job: %w", err)
	}
	return job.ID, nil
}

func (q *NatsQueue) Close() error {
	if q.nc == nil || q.nc.IsClosed() {
		return nil
	}
	return q.nc.Flush()
}

// NatsWorker consumes EmailSubject in the EmailQueueGroup so that each job is
// handled by exactly one worker process.
type NatsWorker struct {
	nc     *nats.Conn
	handle JobHandler
	log    *slog.Logger
	sub    *nats.Subscription
}

func NewNatsWorker(nc *nats.Conn, handle JobHandler, log *slog.Logger) *NatsWorker {
	return &NatsWorker{
		nc:     nc,
		handle: handle,
		log:    log.With(slog.String("component", "nats_worker")),
	}
}

func (w *NatsWorker) Start() error {
	sub, err := w.nc.QueueSubscribe(EmailSubject, EmailQueueGroup, w.handleMsg)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", EmailSubject, err)
	}
	w.sub = sub
	w.log.Info("consuming email jobs", slog.String("subject", EmailSubject), slog.String("queue", EmailQueueGroup))
	return nil
}

// Stop drains the connection so in-flight messages are still handled. The
// connection is closed once draining completes.
func (w *NatsWorker) Stop() error {
	if w.sub == nil {
		return nil
	}
	return w.nc.Drain()
}

func (w *NatsWorker) handleMsg(msg *nats.Msg) {
	job, err := decodeJob(msg.Data)
	if err != nil {
		w.log.Error("dropping malformed email job", logger.Err(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	_ = w.handle(ctx, job)
}
