package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wanxuanju/monument-api/internal/api/metrics"
	"github.com/wanxuanju/monument-api/internal/api/middleware"
	"github.com/wanxuanju/monument-api/internal/core/domain"
	"github.com/wanxuanju/monument-api/internal/core/ports"
)

// AuthHandler exposes the session store over HTTP. Per-client state (cookie,
// session report) always comes from the request itself, never from the shared
// store: the cookie is set from the signing call's own result and the session
// report reads the identity the Session middleware resolved for this request.
type AuthHandler struct {
	store ports.SessionActions
}

func NewAuthHandler(store ports.SessionActions) *AuthHandler {
	return &AuthHandler{store: store}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type sessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	User          *domain.Identity `json:"user,omitempty"`
	DisplayName   string           `json:"display_name"`
	IsAdmin       bool             `json:"is_admin"`
}

// Login authenticates with email and password and sets the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result := h.store.SignIn(c.Request().Context(), req.Email, req.Password)
	if !result.Success {
		metrics.SignInsTotal.WithLabelValues("failure").Inc()
		return c.JSON(http.StatusUnauthorized, result)
	}
	metrics.SignInsTotal.WithLabelValues("success").Inc()

	if result.Session != nil {
		setSessionCookie(c, result.Session)
	}
	return c.JSON(http.StatusOK, result)
}

// Logout revokes the requester's own session and clears the session cookie.
// The cookie is cleared even when the backend revocation fails. Requests that
// carry no resolvable token have nothing to revoke and just lose the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get("access_token").(string)
	clearSessionCookie(c)
	if token == "" {
		return c.JSON(http.StatusOK, ports.ActionResult{Success: true})
	}

	result := h.store.SignOut(c.Request().Context(), token)
	if !result.Success {
		return c.JSON(http.StatusBadGateway, result)
	}
	return c.JSON(http.StatusOK, result)
}

// Register creates a new account. When the backend auto-confirms, the new
// session cookie is set immediately; otherwise the response flags that email
// confirmation is still pending.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var metadata map[string]any
	if req.FullName != "" {
		metadata = map[string]any{"full_name": req.FullName}
	}

	result := h.store.SignUp(c.Request().Context(), req.Email, req.Password, metadata)
	if !result.Success {
		metrics.SignUpsTotal.WithLabelValues("failure").Inc()
		return c.JSON(http.StatusBadRequest, result)
	}

	if result.NeedsEmailConfirmation {
		metrics.SignUpsTotal.WithLabelValues("pending_confirmation").Inc()
		return c.JSON(http.StatusCreated, result)
	}

	metrics.SignUpsTotal.WithLabelValues("success").Inc()
	if result.Session != nil {
		setSessionCookie(c, result.Session)
	}
	return c.JSON(http.StatusCreated, result)
}

// ForgotPassword triggers a reset email. Always answers 200 so the endpoint
// cannot be used to probe which addresses have accounts.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_ = h.store.ResetPassword(c.Request().Context(), req.Email)
	return c.JSON(http.StatusOK, ports.ActionResult{Success: true})
}

// Session reports the authentication state of the requester, as resolved by
// the Session middleware from this request's own token.
func (h *AuthHandler) Session(c echo.Context) error {
	identity, _ := c.Get("identity").(*domain.Identity)
	if identity == nil {
		return c.JSON(http.StatusOK, sessionResponse{
			DisplayName: domain.FallbackDisplayName,
		})
	}

	meta, _ := c.Get("user_meta").(*domain.UserMeta)
	isAdmin, _ := c.Get("is_admin").(bool)
	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: true,
		User:          identity,
		DisplayName:   domain.DisplayName(identity, meta),
		IsAdmin:       isAdmin,
	})
}

func setSessionCookie(c echo.Context, sess *domain.Session) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sess.AccessToken,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
