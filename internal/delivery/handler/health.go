package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a dependency is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health reports "ok" per dependency. Only the database is critical; the other
// dependencies degrade gracefully and are reported without failing the check.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	report := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			report[name] = err.Error()
			if name == "database" {
				status = http.StatusServiceUnavailable
			}
			continue
		}
		report[name] = "ok"
	}

	if status != http.StatusOK {
		return c.JSON(status, Response{Status: "error", Code: status, Message: "database unavailable", Data: report})
	}
	return sendJSONResponse(c, status, report)
}
