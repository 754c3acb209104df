package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/finegraphics/printstore/internal/events"
	"github.com/finegraphics/printstore/internal/logging"
	"github.com/finegraphics/printstore/internal/service"
	"github.com/finegraphics/printstore/internal/transport"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *events.Producer
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		return respondError(c, l, err)
	}

	publish(c, l, h.Producer, events.TopicUserEvents, user.Username, map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})

	l.Info("register_success", "username", user.Username)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	user, token, err := h.Svc.Login(ctx, req)
	if err != nil {
		return respondError(c, l, err)
	}

	l.Info("login_success", "username", user.Username)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user, "access_token": token})
}

func (h *AuthHTTP) AdminLogin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.admin_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	admin, token, err := h.Svc.AdminLogin(ctx, req)
	if err != nil {
		return respondError(c, l, err)
	}

	l.Info("admin_login_success", "username", admin.Username)
	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"user":         admin,
		"is_admin":     true,
		"access_token": token,
	})
}

func (h *AuthHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.update_profile")

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.UpdateProfile(ctx, req)
	if err != nil {
		return respondError(c, l, err)
	}

	l.Info("update_profile_success", "username", user.Username)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}
