package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/finegraphics/printstore/internal/events"
	"github.com/finegraphics/printstore/internal/logging"
	"github.com/finegraphics/printstore/internal/service"
	"github.com/finegraphics/printstore/internal/transport"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer *events.Producer
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.place_order")

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_failed", "status", 400, "reason", "invalid body", "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	orderID, err := h.Svc.PlaceOrder(ctx, req)
	if err != nil {
		return respondError(c, l, err)
	}

	publish(c, l, h.Producer, events.TopicOrderEvents, req.Username, map[string]any{
		"type":     "order_placed",
		"order_id": orderID,
		"username": req.Username,
		"items":    len(req.Items),
	})

	l.Info("place_order_success", "order_id", orderID)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "order_id": orderID})
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.get_orders")

	orders, err := h.Svc.GetOrders(ctx, c.Param("username"))
	if err != nil {
		return respondError(c, l, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "orders": orders})
}

func (h *OrderHTTP) ListAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.list_all")

	lines, err := h.Svc.ListAll(ctx)
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "orders": lines})
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.update_status")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid order line id")
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateStatus(ctx, uint(id), req.Status); err != nil {
		return respondError(c, l, err)
	}

	publish(c, l, h.Producer, events.TopicOrderEvents, c.Param("id"), map[string]any{
		"type":   "order_status_updated",
		"id":     id,
		"status": req.Status,
	})

	l.Info("update_status_success", "id", id, "order_status", req.Status)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Order status updated"})
}

func (h *OrderHTTP) DeleteLine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.delete_line")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid order line id")
	}

	if err := h.Svc.DeleteLine(ctx, uint(id)); err != nil {
		return respondError(c, l, err)
	}

	l.Info("delete_line_success", "id", id)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Order deleted"})
}
