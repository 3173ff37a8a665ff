package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wanxuanju/monument-api/internal/core/ports"
)

// SessionCookie is the cookie carrying the access token for page requests.
// API clients may send the same token as a bearer header instead.
const SessionCookie = "mnmt_session"

// Session resolves the request's access token to an identity and injects it
// into context. It NEVER rejects a request: anonymous and expired-token
// requests proceed without an identity, and the guard or RequireAdmin
// middleware decides what anonymity means for the route.
//
// Context keys set for authenticated requests:
//   - "identity":     *domain.Identity
//   - "is_admin":     bool
//   - "access_token": string
//   - "user_meta":    *domain.UserMeta (only when the lookup succeeds)
func Session(backend ports.AuthBackend, meta ports.MetaRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			sess, err := backend.GetSession(ctx, token)
			if err != nil || sess == nil || sess.User == nil {
				return next(c)
			}

			c.Set("identity", sess.User)
			c.Set("access_token", token)

			isAdmin := false
			if m, err := meta.FindByUserID(ctx, sess.User.ID); err == nil {
				isAdmin = m.IsAdmin()
				c.Set("user_meta", m)
			}
			c.Set("is_admin", isAdmin)

			return next(c)
		}
	}
}

// extractToken prefers the session cookie and falls back to a bearer header.
func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
