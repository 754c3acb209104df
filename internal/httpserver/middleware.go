package httpserver

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// RequireAdmin guards the admin console routes: a valid bearer token with
// the admin role is required.
func RequireAdmin(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || raw == "" {
				return fail(c, http.StatusUnauthorized, "missing token")
			}

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return fail(c, http.StatusUnauthorized, "invalid token")
			}

			role, _ := claims["role"].(string)
			if role != "admin" {
				return fail(c, http.StatusUnauthorized, "admin access required")
			}

			if sub, ok := claims["sub"].(string); ok {
				c.Set("username", sub)
			}
			return next(c)
		}
	}
}
