package handler

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"

	"notes-service/internal/application/interfaces"
	"notes-service/internal/delivery/middleware"
	"notes-service/internal/domain"
	"notes-service/internal/infrastructure"
)

const maxConcurrentRequests = 10000

type RouterDeps struct {
	UserService  interfaces.UserService
	NoteService  interfaces.NoteService
	EmailService interfaces.EmailService
	AuthGuard    interfaces.AuthGuard
	RateLimiter  *infrastructure.RateLimiter
	GlobalLimit  *rate.Limiter
	Hub          *Hub
	Health       *HealthHandler
	Metrics      *infrastructure.Metrics
	Gatherer     prometheus.Gatherer
	Log          *slog.Logger
}

// NewRouter builds the echo instance. Every API route passes the per-client
// rate limiter first, then authentication where required.
func NewRouter(d RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = ErrorHandler(d.Log)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.Metrics(d.Metrics))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.ConcurrencyLimit(maxConcurrentRequests))

	e.GET("/health", d.Health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))

	public := []echo.MiddlewareFunc{
		middleware.GlobalLimit(d.GlobalLimit),
		middleware.ClientRateLimit(d.RateLimiter),
	}
	authed := append(public[:len(public):len(public)], middleware.Auth(d.AuthGuard))
	admin := append(authed[:len(authed):len(authed)], middleware.RequireRole(d.AuthGuard, domain.RoleAdmin))

	users := NewUserHandler(d.UserService)
	e.POST("/register", users.Register, public...)
	e.POST("/login", users.Login, public...)
	e.GET("/users/me", users.Me, authed...)
	e.GET("/admin/users", users.ListUsers, admin...)

	notes := NewNoteHandler(d.NoteService)
	e.GET("/notes", notes.List, authed...)
	e.POST("/notes", notes.Create, authed...)
	e.GET("/notes/:id", notes.Get, authed...)
	e.PUT("/notes/:id", notes.Update, authed...)
	e.DELETE("/notes/:id", notes.Delete, authed...)

	e.POST("/send-email", NewEmailHandler(d.EmailService).SendEmail, authed...)

	e.GET("/ws", d.Hub.ServeWS, authed...)

	return e
}
