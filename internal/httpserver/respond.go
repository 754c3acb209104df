package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/finegraphics/printstore/internal/events"
	"github.com/finegraphics/printstore/internal/service"
)

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, echo.Map{"success": false, "message": message})
}

// respondError maps service sentinel errors onto the HTTP surface. The
// handler boundary is where every per-request error is recovered; nothing
// escapes as a crash.
func respondError(c echo.Context, l *slog.Logger, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn("request_failed", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		l.Warn("request_failed", "status", 404, "error", err)
		return fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		l.Warn("request_failed", "status", 409, "error", err)
		return fail(c, http.StatusConflict, err.Error())
	default:
		l.Error("request_failed", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
}

// publish fires an event with a bounded timeout. A nil producer means
// events are disabled (tests, minimal deployments); publish failures are
// logged, never surfaced to the caller.
func publish(c echo.Context, l *slog.Logger, p *events.Producer, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		l.Error("kafka_publish_failed", "topic", topic, "error", err)
	}
}
