package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/exp/slog"

	"notes-service/internal/config"
	"notes-service/internal/logger"
)

// NewRedisClient connects to Redis using REDIS_URL when given, otherwise the
// individual host settings. It returns nil when Redis cannot be reached; callers
// then run with caching and Redis-backed rate limiting disabled.
func NewRedisClient(ctx context.Context, cfg config.Redis, log *slog.Logger) *redis.Client {
	log = log.With(slog.String("component", "redis"))

	if cfg.URL != "" {
		opt, err := redis.ParseURL(cfg.URL)
		if err != nil {
			log.Warn("invalid REDIS_URL, falling back to host settings", logger.Err(err))
		} else {
			applyTimeouts(opt)
			client := redis.NewClient(opt)
			if err := ping(ctx, client); err != nil {
				log.Warn("redis connection failed with REDIS_URL", logger.Err(err))
				_ = client.Close()
			} else {
				log.Info("connected to redis", slog.String("addr", opt.Addr))
				return client
			}
		}
	}

	opt := &redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	applyTimeouts(opt)
	client := redis.NewClient(opt)

	if err := ping(ctx, client); err != nil {
		log.Warn("redis connection failed, redis features disabled", logger.Err(err))
		_ = client.Close()
		return nil
	}

	log.Info("connected to redis", slog.String("addr", opt.Addr))
	return client
}

func applyTimeouts(opt *redis.Options) {
	opt.PoolSize = 10
	opt.MinIdleConns = 5
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second
}

func ping(ctx context.Context, client *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return client.Ping(ctx).Err()
}
