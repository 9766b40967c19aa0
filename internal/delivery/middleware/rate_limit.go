package middleware

import (
	"net/http"
	"sync/atomic"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"notes-service/internal/domain"
	"notes-service/internal/infrastructure"
)

// GlobalLimit is a process-wide token bucket in front of every route.
func GlobalLimit(limiter *rate.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow() {
				return domain.ErrRateLimited
			}
			return next(c)
		}
	}
}

// ClientRateLimit applies the fixed-window limiter per client IP.
func ClientRateLimit(limiter *infrastructure.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(c.Request().Context(), c.RealIP()) {
				return domain.ErrRateLimited
			}
			return next(c)
		}
	}
}

// ConcurrencyLimit rejects requests beyond max in flight with 503.
func ConcurrencyLimit(max int32) echo.MiddlewareFunc {
	var active int32
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if atomic.AddInt32(&active, 1) > max {
				atomic.AddInt32(&active, -1)
				return echo.NewHTTPError(http.StatusServiceUnavailable, "server overloaded")
			}
			defer atomic.AddInt32(&active, -1)
			return next(c)
		}
	}
}
