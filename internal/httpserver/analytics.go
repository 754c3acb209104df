package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/finegraphics/printstore/internal/logging"
	"github.com/finegraphics/printstore/internal/service"
)

type AnalyticsHTTP struct {
	Svc *service.AnalyticsService
}

func (h *AnalyticsHTTP) Summary(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "analytics.summary")

	summary, err := h.Svc.Summary(ctx)
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "analytics": summary})
}

func (h *AnalyticsHTTP) Period(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "analytics.period")

	var req struct {
		Period string `json:"period"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	period, err := h.Svc.Period(ctx, req.Period)
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "period_analytics": period})
}

func (h *AnalyticsHTTP) Export(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "analytics.export")

	export, err := h.Svc.Export(ctx)
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "export_data": export})
}

func (h *AnalyticsHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "analytics.stats")

	stats, err := h.Svc.Stats(ctx)
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "stats": stats})
}
