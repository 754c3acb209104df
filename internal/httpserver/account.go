package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/finegraphics/printstore/internal/logging"
	"github.com/finegraphics/printstore/internal/service"
	"github.com/finegraphics/printstore/internal/transport"
)

type AccountHTTP struct {
	Svc *service.AccountService
}

func (h *AccountHTTP) SaveCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.save_cart")

	var req transport.SaveCartRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.SaveCart(ctx, req); err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Cart saved"})
}

func (h *AccountHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.get_cart")

	items, err := h.Svc.GetCart(ctx, c.Param("username"))
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "cart": items})
}

func (h *AccountHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.clear_cart")

	if err := h.Svc.ClearCart(ctx, c.Param("username")); err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Cart cleared"})
}

func (h *AccountHTTP) SaveWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.save_wishlist")

	var req transport.SaveWishlistRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.SaveWishlist(ctx, req); err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Wishlist saved"})
}

func (h *AccountHTTP) GetWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.get_wishlist")

	items, err := h.Svc.GetWishlist(ctx, c.Param("username"))
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "wishlist": items})
}

func (h *AccountHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.list_users")

	users, err := h.Svc.ListUsers(ctx)
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "users": users})
}
