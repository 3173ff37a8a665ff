package auth

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/wanxuanju/monument-api/internal/core/domain"
	"github.com/wanxuanju/monument-api/internal/core/ports"
)

type memAccounts struct {
	byEmail map[string]*domain.Account
	nextID  int
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byEmail: make(map[string]*domain.Account)}
}

func (r *memAccounts) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if _, exists := r.byEmail[account.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	clone := *account
	clone.ID = "acct-" + string(rune('0'+r.nextID))
	r.byEmail[clone.Email] = &clone
	return &clone, nil
}

func (r *memAccounts) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	a, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *memAccounts) FindByID(_ context.Context, id string) (*domain.Account, error) {
	for _, a := range r.byEmail {
		if a.ID == id {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type memCache struct {
	sessions map[string]*domain.Session
}

func newMemCache() *memCache {
	return &memCache{sessions: make(map[string]*domain.Session)}
}

func (c *memCache) Store(_ context.Context, s *domain.Session) error {
	c.sessions[s.AccessToken] = s
	return nil
}

func (c *memCache) Get(_ context.Context, token string) (*domain.Session, error) {
	return c.sessions[token], nil
}

func (c *memCache) Delete(_ context.Context, token string) error {
	delete(c.sessions, token)
	return nil
}

type memFeed struct {
	events    []ports.SessionEvent
	listeners []func(ports.SessionEvent)
}

func (f *memFeed) Publish(_ context.Context, event ports.SessionEvent) error {
	f.events = append(f.events, event)
	for _, fn := range f.listeners {
		fn(event)
	}
	return nil
}

func (f *memFeed) Subscribe(fn func(ports.SessionEvent)) func() {
	f.listeners = append(f.listeners, fn)
	return func() { f.listeners = nil }
}

func newTestBackend(autoConfirm bool) (*Backend, *memAccounts, *memCache, *memFeed) {
	accounts := newMemAccounts()
	cache := newMemCache()
	feed := &memFeed{}
	b := NewBackend(accounts, cache, feed, Config{
		JWTSecret:   "secret",
		TokenTTL:    time.Hour,
		AutoConfirm: autoConfirm,
	}, zerolog.Nop())
	return b, accounts, cache, feed
}

func TestBackend_SignUpAndSignIn(t *testing.T) {
	b, _, _, feed := newTestBackend(true)

	res, err := b.SignUp(context.Background(), ports.SignUpParams{Email: "alice@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if res.Session == nil {
		t.Fatalf("auto-confirm sign-up must return a live session")
	}
	if res.User == nil || res.User.Email != "alice@example.com" {
		t.Fatalf("unexpected identity: %+v", res.User)
	}

	session, err := b.SignInWithPassword(context.Background(), "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if session.AccessToken == "" || session.User.ID != res.User.ID {
		t.Fatalf("unexpected session: %+v", session)
	}
	if len(feed.events) != 2 {
		t.Fatalf("expected sign-up and sign-in events, got %d", len(feed.events))
	}
}

func TestBackend_SignUp_ConfirmationPending(t *testing.T) {
	b, _, _, _ := newTestBackend(false)

	res, err := b.SignUp(context.Background(), ports.SignUpParams{
		Email:           "bob@example.com",
		Password:        "pw",
		EmailRedirectTo: "https://monument.example/admin",
	})
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if res.Session != nil {
		t.Fatalf("confirmation-pending sign-up must not return a session")
	}
}

func TestBackend_SignUp_Duplicate(t *testing.T) {
	b, _, _, _ := newTestBackend(true)

	if _, err := b.SignUp(context.Background(), ports.SignUpParams{Email: "a@b.c", Password: "pw"}); err != nil {
		t.Fatalf("seed sign-up failed: %v", err)
	}
	if _, err := b.SignUp(context.Background(), ports.SignUpParams{Email: "a@b.c", Password: "pw2"}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestBackend_SignIn_InvalidCredentials(t *testing.T) {
	b, _, _, _ := newTestBackend(true)
	b.SignUp(context.Background(), ports.SignUpParams{Email: "a@b.c", Password: "good"})

	if _, err := b.SignInWithPassword(context.Background(), "a@b.c", "bad"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := b.SignInWithPassword(context.Background(), "ghost@b.c", "pw"); err != domain.ErrInvalidCredentials {
		t.Fatalf("unknown address must not be distinguishable, got %v", err)
	}
}

func TestBackend_GetSessionAndSignOut(t *testing.T) {
	b, _, cache, _ := newTestBackend(true)
	res, _ := b.SignUp(context.Background(), ports.SignUpParams{Email: "a@b.c", Password: "pw"})

	session, err := b.GetSession(context.Background(), res.Session.AccessToken)
	if err != nil || session == nil {
		t.Fatalf("expected live session, got %v / %v", session, err)
	}

	if s, err := b.GetSession(context.Background(), ""); err != nil || s != nil {
		t.Fatalf("empty token must resolve to no session, got %v / %v", s, err)
	}

	if err := b.SignOut(context.Background(), res.Session.AccessToken); err != nil {
		t.Fatalf("SignOut returned error: %v", err)
	}
	if len(cache.sessions) != 0 {
		t.Fatalf("sign-out must revoke the cached session")
	}
}

func TestBackend_PasswordReset_DoesNotRevealAccounts(t *testing.T) {
	b, _, _, _ := newTestBackend(true)
	b.SignUp(context.Background(), ports.SignUpParams{Email: "a@b.c", Password: "pw"})

	if err := b.SendPasswordReset(context.Background(), "a@b.c", "https://monument.example/admin/reset-password"); err != nil {
		t.Fatalf("reset for known address failed: %v", err)
	}
	if err := b.SendPasswordReset(context.Background(), "ghost@b.c", "https://monument.example/admin/reset-password"); err != nil {
		t.Fatalf("reset for unknown address must not error, got %v", err)
	}
}
