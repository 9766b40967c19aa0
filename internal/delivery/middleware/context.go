package middleware

import (
	"github.com/labstack/echo/v4"

	"notes-service/internal/domain/entities"
)

const userContextKey = "user"

func SetUser(c echo.Context, user *entities.User) {
	c.Set(userContextKey, user)
}

// UserFrom returns the user stored by Auth.
func UserFrom(c echo.Context) (*entities.User, bool) {
	user, ok := c.Get(userContextKey).(*entities.User)
	return user, ok && user != nil
}
