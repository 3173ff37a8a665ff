package ports

import (
	"context"

	"github.com/wanxuanju/monument-api/internal/core/domain"
)

// ActionResult is the structured outcome every session action returns.
// Backend failures are converted into {Success: false, Error: message}
// rather than propagated; callers check the result, not a returned error.
type ActionResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SignInResult carries the authenticated identity on success. Session is
// the session issued by THIS call, for the transport layer to hand to the
// caller (cookie, header); it is never serialized.
type SignInResult struct {
	ActionResult
	User    *domain.Identity `json:"user,omitempty"`
	Session *domain.Session  `json:"-"`
}

// RegisterResult reports whether email confirmation is still pending.
// Session is set only when the backend auto-confirms; like SignInResult it
// belongs to this call's caller and is never serialized.
type RegisterResult struct {
	ActionResult
	User                   *domain.Identity `json:"user,omitempty"`
	Session                *domain.Session  `json:"-"`
	NeedsEmailConfirmation bool             `json:"needs_email_confirmation"`
}

// SessionActions is the surface the transport layer uses to drive the
// session store.
type SessionActions interface {
	Init(ctx context.Context, accessToken string)
	SignIn(ctx context.Context, email, password string) SignInResult

	// SignOut revokes the given access token. An empty token means the
	// store's own cached session.
	SignOut(ctx context.Context, accessToken string) ActionResult
	SignUp(ctx context.Context, email, password string, metadata map[string]any) RegisterResult
	ResetPassword(ctx context.Context, email string) ActionResult

	IsAuthenticated() bool
	IsAdmin() bool
	DisplayName() string
	CurrentSession() *domain.Session
}
