package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wanxuanju/monument-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Session middleware.
// Routes behind RequireAdmin always have one; public routes may not, in
// which case the caller decides what anonymity means.
func ctxIdentity(c echo.Context) (*domain.Identity, bool) {
	id, ok := c.Get("identity").(*domain.Identity)
	return id, ok
}

// requireIdentity is ctxIdentity for routes where anonymity is a bug: the
// middleware should have rejected the request already, so a missing
// identity means the route is miswired.
func requireIdentity(c echo.Context) (*domain.Identity, error) {
	id, ok := ctxIdentity(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
