package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	AuthHandler      *AuthHTTP
	AccountHandler   *AccountHTTP
	CatalogHandler   *CatalogHTTP
	OrderHandler     *OrderHTTP
	AnalyticsHandler *AnalyticsHTTP
	JWTSecret        []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/profile", d.AuthHandler.UpdateProfile)

	v1.GET("/designs", d.CatalogHandler.ListDesigns)
	v1.GET("/designs/:id", d.CatalogHandler.GetDesign)
	v1.GET("/search", d.CatalogHandler.Search)

	v1.POST("/cart", d.AccountHandler.SaveCart)
	v1.GET("/cart/:username", d.AccountHandler.GetCart)
	v1.POST("/cart/:username/clear", d.AccountHandler.ClearCart)

	v1.POST("/wishlist", d.AccountHandler.SaveWishlist)
	v1.GET("/wishlist/:username", d.AccountHandler.GetWishlist)

	v1.POST("/orders", d.OrderHandler.PlaceOrder)
	v1.GET("/orders/:username", d.OrderHandler.GetOrders)

	v1.POST("/admin/login", d.AuthHandler.AdminLogin)

	admin := v1.Group("/admin", RequireAdmin(d.JWTSecret))

	admin.GET("/designs", d.CatalogHandler.ListDesignsAdmin)
	admin.POST("/designs", d.CatalogHandler.SaveDesign)
	admin.DELETE("/designs/:id", d.CatalogHandler.DeleteDesign)

	admin.GET("/designs/:id/previews", d.CatalogHandler.ListPreviews)
	admin.POST("/designs/:id/previews", d.CatalogHandler.AddPreview)
	admin.DELETE("/designs/:id/previews/:previewID", d.CatalogHandler.DeletePreview)
	admin.PUT("/designs/:id/previews/reorder", d.CatalogHandler.ReorderPreviews)

	admin.GET("/users", d.AccountHandler.ListUsers)

	admin.GET("/orders", d.OrderHandler.ListAll)
	admin.PUT("/orders/:id", d.OrderHandler.UpdateStatus)
	admin.DELETE("/orders/:id", d.OrderHandler.DeleteLine)

	admin.GET("/stats", d.AnalyticsHandler.Stats)
	admin.GET("/analytics", d.AnalyticsHandler.Summary)
	admin.POST("/analytics/period", d.AnalyticsHandler.Period)
	admin.GET("/analytics/export", d.AnalyticsHandler.Export)
}
