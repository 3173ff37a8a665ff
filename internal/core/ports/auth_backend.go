package ports

import (
	"context"

	"github.com/wanxuanju/monument-api/internal/core/domain"
)

// Session change event types pushed by the auth backend.
const (
	SessionEventSignedIn  = "SIGNED_IN"
	SessionEventSignedOut = "SIGNED_OUT"
	SessionEventRefreshed = "TOKEN_REFRESHED"
)

// SessionEvent is a backend-pushed notification that the live session
// changed. Session is nil for sign-out events.
type SessionEvent struct {
	Type    string
	Session *domain.Session
}

// SignUpParams carries everything the backend needs to register an account.
type SignUpParams struct {
	Email    string
	Password string
	// Metadata is an arbitrary payload stored on the account and echoed
	// back as provider metadata on the identity.
	Metadata map[string]any
	// EmailRedirectTo is the URL the confirmation link lands on.
	EmailRedirectTo string
}

// SignUpResult is returned by AuthBackend.SignUp. Session is nil while the
// account still awaits email confirmation.
type SignUpResult struct {
	User    *domain.Identity
	Session *domain.Session
}

// AuthBackend abstracts the managed authentication service.
//
// Every call may fail with a network or credential error; implementations
// return the backend's human-readable message wrapped in the error.
type AuthBackend interface {
	// GetSession resolves an access token to its live session. Returns
	// (nil, nil) when the token is empty, unknown, or expired.
	GetSession(ctx context.Context, accessToken string) (*domain.Session, error)

	SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error)

	// SignOut revokes the session behind the access token.
	SignOut(ctx context.Context, accessToken string) error

	SignUp(ctx context.Context, params SignUpParams) (*SignUpResult, error)

	// SendPasswordReset triggers an out-of-band reset message; redirectTo
	// is the URL the reset link lands on.
	SendPasswordReset(ctx context.Context, email, redirectTo string) error

	// OnSessionChange registers a standing callback invoked for every
	// session change pushed by the backend. The returned function removes
	// the subscription.
	OnSessionChange(fn func(event SessionEvent)) (unsubscribe func())
}
