package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wanxuanju/monument-api/internal/api/metrics"
	"github.com/wanxuanju/monument-api/internal/core/service"
)

// PageGuard applies the admin navigation rules to page requests: anonymous
// visitors on protected admin pages are redirected to the login page, and
// signed-in users landing on the login page are sent to the dashboard.
// Must run after Session.
func PageGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authenticated := c.Get("identity") != nil

			decision := service.Decide(c.Request().URL.Path, authenticated)
			if decision.Allowed {
				return next(c)
			}

			reason := "unauthenticated"
			if authenticated {
				reason = "already_authenticated"
			}
			metrics.GuardRedirectsTotal.WithLabelValues(reason).Inc()

			return c.Redirect(http.StatusFound, decision.RedirectTo)
		}
	}
}
