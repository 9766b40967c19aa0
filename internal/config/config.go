package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultSecret = "1234567890abcdef1234567890abcdef"
)

type Config struct {
	Env      string
	LogLevel string

	HTTP      HTTP
	DB        DB
	Auth      Auth
	Redis     Redis
	Cache     Cache
	RateLimit RateLimit
	Queue     Queue
	Email     Email
}

type HTTP struct {
	Addr        string
	Timeout     time.Duration
	IdleTimeout time.Duration
}

type DB struct {
	Driver string
	URL    string
}

type Auth struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type Redis struct {
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

type Cache struct {
	TTL time.Duration
}

type RateLimit struct {
	Requests    int
	Window      time.Duration
	Backend     string
	GlobalRPS   int
	GlobalBurst int
}

type Queue struct {
	NatsURL string
	Workers int
	Size    int
}

type Email struct {
	Provider string
	APIKey   string
	Sender   string
	Subject  string
	Body     string
}

// Load reads the optional .env files into the process environment and then
// resolves every setting from the environment.
func Load(envFiles ...string) *Config {
	// a missing .env is fine, the environment may already be populated
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.AutomaticEnv()
	return FromViper(v)
}

func FromViper(v *viper.Viper) *Config {
	return &Config{
		Env:      GetEnvAsString(v, "APP_ENV", EnvLocal),
		LogLevel: GetEnvAsString(v, "LOG_LEVEL", "info"),
		HTTP: HTTP{
			Addr:        GetEnvAsString(v, "HTTP_ADDR", ":8080"),
			Timeout:     GetEnvAsDuration(v, "HTTP_TIMEOUT", 10*time.Second),
			IdleTimeout: GetEnvAsDuration(v, "HTTP_IDLE_TIMEOUT", 60*time.Second),
		},
		DB: DB{
			Driver: GetEnvAsString(v, "DB_DRIVER", "sqlite"),
			URL:    GetEnvAsString(v, "DATABASE_URL", "notes.db"),
		},
		Auth: Auth{
			JWTSecret: GetEnvAsString(v, "JWT_SECRET", defaultSecret),
			TokenTTL:  GetEnvAsDuration(v, "ACCESS_TOKEN_EXPIRE", 30*time.Minute),
		},
		Redis: Redis{
			URL:      GetEnvAsString(v, "REDIS_URL", ""),
			Host:     GetEnvAsString(v, "REDIS_HOST", "localhost"),
			Port:     GetEnvAsString(v, "REDIS_PORT", "6379"),
			Password: GetEnvAsString(v, "REDIS_PASSWORD", ""),
			DB:       GetEnvAsInt(v, "REDIS_DB", 0),
		},
		Cache: Cache{
			TTL: GetEnvAsDuration(v, "CACHE_TTL", 60*time.Second),
		},
		RateLimit: RateLimit{
			Requests:    GetEnvAsInt(v, "RATE_LIMIT_REQUESTS", 2000),
			Window:      GetEnvAsDuration(v, "RATE_LIMIT_WINDOW", 60*time.Second),
			Backend:     GetEnvAsString(v, "RATE_LIMIT_BACKEND", "redis"),
			GlobalRPS:   GetEnvAsInt(v, "GLOBAL_RATE_LIMIT", 5000),
			GlobalBurst: GetEnvAsInt(v, "GLOBAL_RATE_BURST", 1000),
		},
		Queue: Queue{
			NatsURL: GetEnvAsString(v, "NATS_URL", ""),
			Workers: GetEnvAsInt(v, "EMAIL_WORKERS", 4),
			Size:    GetEnvAsInt(v, "EMAIL_QUEUE_SIZE", 256),
		},
		Email: Email{
			Provider: GetEnvAsString(v, "EMAIL_PROVIDER", "log"),
			APIKey:   GetEnvAsString(v, "EMAIL_API_KEY", ""),
			Sender:   GetEnvAsString(v, "EMAIL_SENDER", "notes@example.com"),
			Subject:  GetEnvAsString(v, "EMAIL_SUBJECT", "Notification from Notes"),
			Body:     GetEnvAsString(v, "EMAIL_BODY", "You have a new notification."),
		},
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Env == EnvProd && c.Auth.JWTSecret == defaultSecret {
		errs = append(errs, errors.New("JWT_SECRET must be set in prod"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("ACCESS_TOKEN_EXPIRE must be positive, got %s", c.Auth.TokenTTL))
	}
	if c.RateLimit.Requests <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.RateLimit.Requests))
	}
	if c.RateLimit.Backend != "redis" && c.RateLimit.Backend != "memory" {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BACKEND must be redis or memory, got %q", c.RateLimit.Backend))
	}
	if c.Queue.Workers <= 0 || c.Queue.Size <= 0 {
		errs = append(errs, errors.New("EMAIL_WORKERS and EMAIL_QUEUE_SIZE must be positive"))
	}
	return errors.Join(errs...)
}
