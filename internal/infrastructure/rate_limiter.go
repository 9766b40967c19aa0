package infrastructure

import (
	"context"
	"time"

	"golang.org/x/exp/slog"

	"notes-service/internal/logger"
)

// Window is the per-client fixed-window state.
type Window struct {
	Count int
	Start time.Time
}

// WindowStore persists per-client windows. Get reports found=false when the
// client has no live window.
type WindowStore interface {
	Get(ctx context.Context, client string) (w Window, found bool, err error)
	Reset(ctx context.Context, client string, start time.Time, ttl time.Duration) error
	Increment(ctx context.Context, client string) error
}

// RateLimiter is a fixed-window counter keyed by client identifier. It fails
// open: when the store errors the request is allowed and the failure reported.
type RateLimiter struct {
	store   WindowStore
	limit   int
	window  time.Duration
	now     func() time.Time
	log     *slog.Logger
	metrics *Metrics
}

func NewRateLimiter(store WindowStore, limit int, window time.Duration, log *slog.Logger, metrics *Metrics) *RateLimiter {
	return &RateLimiter{
		store:   store,
		limit:   limit,
		window:  window,
		now:     time.Now,
		log:     log.With(slog.String("component", ComponentRateLimiter)),
		metrics: metrics,
	}
}

func (rl *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	rl.now = now
	return rl
}

// Allow checks if a request from the given client should be allowed.
func (rl *RateLimiter) Allow(ctx context.Context, client string) bool {
	now := rl.now()

	w, found, err := rl.store.Get(ctx, client)
	if err != nil {
		rl.degrade("read window", client, err)
		return true
	}

	// Reset counter if window has passed
	if !found || now.Sub(w.Start) > rl.window {
		if err := rl.store.Reset(ctx, client, now, rl.window); err != nil {
			rl.degrade("reset window", client, err)
		}
		return true
	}

	if w.Count >= rl.limit {
		if rl.metrics != nil {
			rl.metrics.RateLimited.Inc()
		}
		return false
	}

	if err := rl.store.Increment(ctx, client); err != nil {
		rl.degrade("increment window", client, err)
	}
	return true
}

func (rl *RateLimiter) degrade(op, client string, err error) {
	rl.log.Error("rate limiter backend failure, allowing request",
		slog.String("op", op),
		slog.String("client", client),
		logger.Err(err),
	)
	if rl.metrics != nil {
		rl.metrics.BackendFailures.WithLabelValues(ComponentRateLimiter).Inc()
	}
}
