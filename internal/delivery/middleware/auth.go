package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"notes-service/internal/application/interfaces"
	"notes-service/internal/domain"
)

const tokenQueryParam = "token"

// Auth resolves the bearer token to a user. Browsers cannot set headers on a
// websocket handshake, so the token is also accepted as ?token=.
func Auth(guard interfaces.AuthGuard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := guard.Authenticate(c.Request().Context(), bearerToken(c))
			if err != nil {
				return err
			}
			SetUser(c, user)
			return next(c)
		}
	}
}

// RequireRole must run after Auth.
func RequireRole(guard interfaces.AuthGuard, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := UserFrom(c)
			if !ok {
				return domain.ErrUnauthorized
			}
			if err := guard.RequireRole(user, role); err != nil {
				return err
			}
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "bearer") {
		return strings.TrimSpace(token)
	}
	return c.QueryParam(tokenQueryParam)
}
