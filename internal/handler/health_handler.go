package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a plain function to Pinger.
type PingFunc func(ctx context.Context) error

// PingContext implements Pinger.
func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

// HealthHandler reports dependency status.
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler creates a health handler. cache may be nil.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health godoc
// @Summary Liveness and dependency status
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok", "database": "ok"}
	code := http.StatusOK
	if err := h.db.PingContext(ctx); err != nil {
		status["status"] = "unavailable"
		status["database"] = "unavailable"
		code = http.StatusServiceUnavailable
	}
	if h.cache != nil {
		status["cache"] = "ok"
		if err := h.cache.PingContext(ctx); err != nil {
			status["cache"] = "degraded"
		}
	}
	return c.JSON(code, status)
}
