package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"notes-service/internal/application/command"
	"notes-service/internal/application/interfaces"
	"notes-service/internal/application/services"
	"notes-service/internal/config"
	"notes-service/internal/delivery/handler"
	"notes-service/internal/domain/repositories"
	"notes-service/internal/infrastructure"
	"notes-service/internal/infrastructure/db/postgres"
	"notes-service/internal/logger"
	"notes-service/internal/messaging"
)

const (
	serviceName     = "notes-service"
	shutdownTimeout = 10 * time.Second
	cleanupInterval = time.Minute
)

// App owns the process-wide resources shared by the serve, worker and
// promote commands.
type App struct {
	cfg *config.Config
	log *slog.Logger

	db       *gorm.DB
	redis    *redis.Client
	registry *prometheus.Registry
	metrics  *infrastructure.Metrics

	userRepo   repositories.UserRepository
	jwtService *infrastructure.JWTService
	users      interfaces.UserService

	stop context.CancelFunc
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	db, err := postgres.Open(cfg.DB.Driver, cfg.DB.URL, log)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	userRepo := postgres.NewUserRepository(db)
	jwtService := infrastructure.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	a := &App{
		cfg:        cfg,
		log:        log,
		db:         db,
		registry:   registry,
		metrics:    infrastructure.NewMetrics(registry),
		userRepo:   userRepo,
		jwtService: jwtService,
		users:      services.NewUserService(userRepo, jwtService, log),
	}
	return a, nil
}

// Serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func (a *App) Serve(ctx context.Context) error {
	ctx, a.stop = context.WithCancel(ctx)

	a.redis = infrastructure.NewRedisClient(ctx, a.cfg.Redis, a.log)

	queue, err := a.newQueue()
	if err != nil {
		return err
	}
	defer func() {
		if err := queue.Close(); err != nil {
			a.log.Error("close queue", logger.Err(err))
		}
	}()

	hub := handler.NewHub(a.log)
	defer hub.Close()

	e := handler.NewRouter(handler.RouterDeps{
		UserService:  a.users,
		NoteService:  services.NewNoteService(postgres.NewNoteRepository(a.db), infrastructure.NewNotesCache(a.redis), a.cfg.Cache.TTL, a.metrics, a.log),
		EmailService: services.NewEmailService(queue, a.metrics, a.log),
		AuthGuard:    services.NewAuthGuard(a.userRepo, a.jwtService),
		RateLimiter:  infrastructure.NewRateLimiter(a.windowStore(ctx), a.cfg.RateLimit.Requests, a.cfg.RateLimit.Window, a.log, a.metrics),
		GlobalLimit:  rate.NewLimiter(rate.Limit(a.cfg.RateLimit.GlobalRPS), a.cfg.RateLimit.GlobalBurst),
		Hub:          hub,
		Health:       handler.NewHealthHandler(a.healthChecks()),
		Metrics:      a.metrics,
		Gatherer:     a.registry,
		Log:          a.log,
	})
	e.Server.ReadTimeout = a.cfg.HTTP.Timeout
	e.Server.WriteTimeout = a.cfg.HTTP.Timeout
	e.Server.IdleTimeout = a.cfg.HTTP.IdleTimeout

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http server started", slog.String("addr", a.cfg.HTTP.Addr))
		if err := e.Start(a.cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// RunWorker consumes email jobs from NATS until ctx is cancelled.
func (a *App) RunWorker(ctx context.Context) error {
	if a.cfg.Queue.NatsURL == "" {
		return errors.New("NATS_URL is required to run a standalone worker")
	}

	sender, err := infrastructure.NewEmailSender(a.cfg.Email, a.log)
	if err != nil {
		return err
	}

	closed := make(chan struct{})
	nc, err := messaging.ConnectNats(a.cfg.Queue.NatsURL, serviceName+"-worker", a.log,
		nats.ClosedHandler(func(*nats.Conn) { close(closed) }),
	)
	if err != nil {
		return err
	}

	worker := messaging.NewNatsWorker(nc, messaging.NewEmailHandler(sender, a.metrics, a.log), a.log)
	if err := worker.Start(); err != nil {
		nc.Close()
		return err
	}

	<-ctx.Done()
	a.log.Info("stopping email worker")
	if err := worker.Stop(); err != nil {
		nc.Close()
		return err
	}
	<-closed
	return nil
}

// Promote changes a user's role from the command line.
func (a *App) Promote(ctx context.Context, username, role string) (*command.PromoteUserCommandResult, error) {
	return a.users.PromoteUser(ctx, &command.PromoteUserCommand{Username: username, Role: role})
}

func (a *App) Close() error {
	if a.stop != nil {
		a.stop()
	}

	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if sqlDB, err := a.db.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	}
	return errors.Join(errs...)
}

// newQueue publishes to NATS when configured, otherwise runs the email
// workers inside this process.
func (a *App) newQueue() (messaging.Queue, error) {
	if a.cfg.Queue.NatsURL != "" {
		nc, err := messaging.ConnectNats(a.cfg.Queue.NatsURL, serviceName, a.log)
		if err != nil {
			return nil, err
		}
		return &natsQueue{NatsQueue: messaging.NewNatsQueue(nc), nc: nc}, nil
	}

	sender, err := infrastructure.NewEmailSender(a.cfg.Email, a.log)
	if err != nil {
		return nil, err
	}
	handle := messaging.NewEmailHandler(sender, a.metrics, a.log)
	return messaging.NewLocalQueue(a.cfg.Queue.Workers, a.cfg.Queue.Size, handle, a.log), nil
}

type natsQueue struct {
	*messaging.NatsQueue
	nc *nats.Conn
}

func (q *natsQueue) Close() error {
	err := q.NatsQueue.Close()
	q.nc.Close()
	return err
}

func (a *App) windowStore(ctx context.Context) infrastructure.WindowStore {
	if a.cfg.RateLimit.Backend == "redis" && a.redis != nil {
		return infrastructure.NewRedisWindowStore(a.redis)
	}
	if a.cfg.RateLimit.Backend == "redis" {
		a.log.Warn("redis unavailable, rate limiting per process")
	}
	store := infrastructure.NewMemoryWindowStore()
	go store.RunCleanup(ctx, cleanupInterval)
	return store
}

func (a *App) healthChecks() map[string]handler.Pinger {
	checks := map[string]handler.Pinger{
		"database": func(ctx context.Context) error {
			sqlDB, err := a.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if a.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return a.redis.Ping(ctx).Err()
		}
	}
	return checks
}
