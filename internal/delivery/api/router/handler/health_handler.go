package handler

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"jobtracker/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
)

const healthPingTimeout = 2 * time.Second

type pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports liveness and database reachability
type HealthHandler struct {
	db     pinger
	logger *slog.Logger
}

// NewHealthHandler is the constructor for HealthHandler
func NewHealthHandler(db *sql.DB, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

// HealthCheck pings the database and reports the service status.
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthPingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("Health check database ping failed", slog.Any("error", err))

		return response.Error(c, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", "Database is unreachable", nil)
	}

	return response.Success(c, http.StatusOK, map[string]string{"status": "ok", "database": "ok"})
}
