package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/exp/slog"

	"notes-service/internal/domain"
	"notes-service/internal/logger"
)

// Response represents a standard API response format
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
}

func sendJSONResponse(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, Response{
		Status: "success",
		Code:   statusCode,
		Data:   data,
	})
}

func sendJSONError(c echo.Context, statusCode int, msg string) error {
	return c.JSON(statusCode, Response{
		Status:  "error",
		Message: msg,
		Code:    statusCode,
	})
}

var errorStatus = []struct {
	err    error
	status int
}{
	{domain.ErrDuplicateUsername, http.StatusBadRequest},
	{domain.ErrInvalidInput, http.StatusBadRequest},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrInvalidToken, http.StatusUnauthorized},
	{domain.ErrUnauthorized, http.StatusUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrRateLimited, http.StatusTooManyRequests},
	{domain.ErrQueueFull, http.StatusServiceUnavailable},
}

// statusFor maps an error to its HTTP status and the message shown to clients.
// Unknown errors become 500 with a generic message.
func statusFor(err error) (int, string) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			if e.err == domain.ErrInvalidInput {
				return e.status, err.Error()
			}
			return e.status, e.err.Error()
		}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			msg = m
		} else if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
		return he.Code, msg
	}

	return http.StatusInternalServerError, "internal server error"
}

// ErrorHandler renders every error returned by handlers and middleware in the
// response envelope.
func ErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg := statusFor(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				logger.Err(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = sendJSONError(c, status, msg)
		}
		if err != nil {
			log.Error("write error response", logger.Err(err))
		}
	}
}
