package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wanxuanju/monument-api/internal/core/domain"
)

// RequireAdmin enforces that the request carries an authenticated admin
// identity. Must run after Session.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Get("identity") == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if isAdmin, _ := c.Get("is_admin").(bool); !isAdmin {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
