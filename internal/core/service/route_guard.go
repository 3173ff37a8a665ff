package service

import (
	"context"
	"strings"
	"sync"
)

const (
	AdminHomePath  = "/admin"
	AdminLoginPath = "/admin/login"
)

// adminPublicPaths are the admin-prefixed paths reachable without a session.
var adminPublicPaths = map[string]struct{}{
	"/admin/login":           {},
	"/admin/register":        {},
	"/admin/forgot-password": {},
	"/admin/reset-password":  {},
}

// GuardDecision is the outcome of evaluating one navigation.
type GuardDecision struct {
	Allowed bool
	// RedirectTo is set when Allowed is false.
	RedirectTo string
}

func proceed() GuardDecision               { return GuardDecision{Allowed: true} }
func redirect(target string) GuardDecision { return GuardDecision{RedirectTo: target} }

// Decide evaluates a navigation target against the authentication state.
// Non-admin paths always proceed. Public admin paths redirect authenticated
// visitors to the admin home; all other admin paths require authentication
// and redirect to the login page otherwise.
func Decide(path string, authenticated bool) GuardDecision {
	if !strings.HasPrefix(path, AdminHomePath) {
		return proceed()
	}

	if _, public := adminPublicPaths[path]; public {
		if authenticated {
			return redirect(AdminHomePath)
		}
		return proceed()
	}

	if !authenticated {
		return redirect(AdminLoginPath)
	}
	return proceed()
}

// RouteGuard evaluates navigations against a session store, lazily
// initializing it on the first evaluation. Evaluation blocks until the
// initialization resolves rather than racing ahead with stale state.
type RouteGuard struct {
	store    *SessionStore
	initOnce sync.Once
	// token supplies the persisted access token for the lazy init.
	token func() string
}

// NewRouteGuard wraps a session store. token resolves the persisted access
// token at init time; nil means no persisted session.
func NewRouteGuard(store *SessionStore, token func() string) *RouteGuard {
	if token == nil {
		token = func() string { return "" }
	}
	return &RouteGuard{store: store, token: token}
}

// Check initializes the store if needed, then evaluates the navigation.
func (g *RouteGuard) Check(ctx context.Context, path string) GuardDecision {
	g.initOnce.Do(func() {
		if g.store.Status() == StatusUninitialized {
			g.store.Init(ctx, g.token())
		}
	})
	return Decide(path, g.store.IsAuthenticated())
}
