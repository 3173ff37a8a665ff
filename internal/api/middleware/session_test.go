package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/wanxuanju/monument-api/internal/core/domain"
	"github.com/wanxuanju/monument-api/internal/core/ports"
)

type stubBackend struct {
	sessions map[string]*domain.Session
}

func (b *stubBackend) GetSession(_ context.Context, token string) (*domain.Session, error) {
	return b.sessions[token], nil
}

func (b *stubBackend) SignInWithPassword(context.Context, string, string) (*domain.Session, error) {
	return nil, nil
}

func (b *stubBackend) SignOut(context.Context, string) error { return nil }

func (b *stubBackend) SignUp(context.Context, ports.SignUpParams) (*ports.SignUpResult, error) {
	return nil, nil
}

func (b *stubBackend) SendPasswordReset(context.Context, string, string) error { return nil }

func (b *stubBackend) OnSessionChange(func(ports.SessionEvent)) func() { return func() {} }

type stubMetaRepo struct {
	records map[string]*domain.UserMeta
}

func (r *stubMetaRepo) FindByUserID(_ context.Context, userID string) (*domain.UserMeta, error) {
	if m, ok := r.records[userID]; ok {
		return m, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubMetaRepo) Insert(_ context.Context, m *domain.UserMeta) (*domain.UserMeta, error) {
	return m, nil
}

func (r *stubMetaRepo) DeleteByUserID(context.Context, string) error { return nil }

func newStubDeps() (*stubBackend, *stubMetaRepo) {
	backend := &stubBackend{
		sessions: map[string]*domain.Session{
			"tok-admin": {
				AccessToken: "tok-admin",
				User:        &domain.Identity{ID: "u1", Email: "admin@example.com"},
			},
			"tok-user": {
				AccessToken: "tok-user",
				User:        &domain.Identity{ID: "u2", Email: "user@example.com"},
			},
		},
	}
	meta := &stubMetaRepo{
		records: map[string]*domain.UserMeta{
			"u1": {UserID: "u1", FullName: "Admin", Role: domain.RoleAdmin},
			"u2": {UserID: "u2", FullName: "User", Role: domain.RoleUser},
		},
	}
	return backend, meta
}

func TestSessionMiddleware_CookieToken(t *testing.T) {
	backend, meta := newStubDeps()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "tok-admin"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(backend, meta)(func(c echo.Context) error {
		id, ok := c.Get("identity").(*domain.Identity)
		if !ok || id.ID != "u1" {
			t.Fatalf("identity not set: %v", c.Get("identity"))
		}
		if isAdmin, _ := c.Get("is_admin").(bool); !isAdmin {
			t.Fatalf("expected admin")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestSessionMiddleware_BearerFallback(t *testing.T) {
	backend, meta := newStubDeps()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok-user")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(backend, meta)(func(c echo.Context) error {
		id, ok := c.Get("identity").(*domain.Identity)
		if !ok || id.ID != "u2" {
			t.Fatalf("identity not set")
		}
		if isAdmin, _ := c.Get("is_admin").(bool); isAdmin {
			t.Fatalf("regular user flagged admin")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestSessionMiddleware_AnonymousProceeds(t *testing.T) {
	backend, meta := newStubDeps()
	e := echo.New()

	for name, build := range map[string]func(*http.Request){
		"no token":      func(*http.Request) {},
		"unknown token": func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") },
		"bad header":    func(r *http.Request) { r.Header.Set("Authorization", "Token abc") },
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		build(req)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		called := false
		handler := Session(backend, meta)(func(c echo.Context) error {
			called = true
			if c.Get("identity") != nil {
				t.Fatalf("%s: identity should not be set", name)
			}
			return c.NoContent(http.StatusOK)
		})

		if err := handler(c); err != nil {
			t.Fatalf("%s: handler error: %v", name, err)
		}
		if !called {
			t.Fatalf("%s: next not called", name)
		}
	}
}
