// Package auth implements the AuthBackend port: password credentials in the
// account store, HS256 access tokens, live sessions in the session cache,
// and session-change events over the event feed.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/wanxuanju/monument-api/internal/core/domain"
	"github.com/wanxuanju/monument-api/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

const resetTokenTTL = 30 * time.Minute

// SessionCache stores live sessions keyed by access token.
type SessionCache interface {
	Store(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, accessToken string) (*domain.Session, error)
	Delete(ctx context.Context, accessToken string) error
}

// EventFeed distributes session-change events.
type EventFeed interface {
	Publish(ctx context.Context, event ports.SessionEvent) error
	Subscribe(fn func(ports.SessionEvent)) func()
}

// Config tunes the backend.
type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
	// AutoConfirm skips email confirmation: sign-up returns an
	// immediately-usable session.
	AutoConfirm bool
}

// Backend implements ports.AuthBackend.
type Backend struct {
	accounts ports.AccountRepository
	cache    SessionCache
	feed     EventFeed
	cfg      Config
	log      zerolog.Logger
}

func NewBackend(accounts ports.AccountRepository, cache SessionCache, feed EventFeed, cfg Config, log zerolog.Logger) *Backend {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	return &Backend{accounts: accounts, cache: cache, feed: feed, cfg: cfg, log: log}
}

func (b *Backend) GetSession(ctx context.Context, accessToken string) (*domain.Session, error) {
	if accessToken == "" {
		return nil, nil
	}
	return b.cache.Get(ctx, accessToken)
}

func (b *Backend) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := b.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	session, err := b.issueSession(ctx, account)
	if err != nil {
		return nil, err
	}

	b.publish(ctx, ports.SessionEvent{Type: ports.SessionEventSignedIn, Session: session})
	return session, nil
}

func (b *Backend) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	if err := b.cache.Delete(ctx, accessToken); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	b.publish(ctx, ports.SessionEvent{Type: ports.SessionEventSignedOut})
	return nil
}

func (b *Backend) SignUp(ctx context.Context, params ports.SignUpParams) (*ports.SignUpResult, error) {
	if params.Email == "" || params.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account, err := b.accounts.Create(ctx, &domain.Account{
		Email:          params.Email,
		PasswordHash:   string(hash),
		Metadata:       params.Metadata,
		EmailConfirmed: b.cfg.AutoConfirm,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if !b.cfg.AutoConfirm {
		// Mail delivery is outside this backend; the confirmation link is
		// logged for the operator.
		b.log.Info().
			Str("email", account.Email).
			Str("redirect_to", params.EmailRedirectTo).
			Msg("sign-up pending email confirmation")
		return &ports.SignUpResult{User: account.Identity()}, nil
	}

	session, err := b.issueSession(ctx, account)
	if err != nil {
		return nil, err
	}
	b.publish(ctx, ports.SessionEvent{Type: ports.SessionEventSignedIn, Session: session})
	return &ports.SignUpResult{User: account.Identity(), Session: session}, nil
}

func (b *Backend) SendPasswordReset(ctx context.Context, email, redirectTo string) error {
	account, err := b.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Do not reveal whether the address is registered.
			b.log.Info().Str("email", email).Msg("password reset requested for unknown address")
			return nil
		}
		return err
	}

	token, err := b.signToken(jwt.MapClaims{
		"sub":     account.ID,
		"purpose": "password_reset",
		"exp":     time.Now().Add(resetTokenTTL).Unix(),
	})
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}

	b.log.Info().
		Str("email", email).
		Str("reset_link", redirectTo+"?token="+token).
		Msg("password reset link issued")
	return nil
}

func (b *Backend) OnSessionChange(fn func(ports.SessionEvent)) func() {
	return b.feed.Subscribe(fn)
}

func (b *Backend) issueSession(ctx context.Context, account *domain.Account) (*domain.Session, error) {
	expiresAt := time.Now().Add(b.cfg.TokenTTL)
	token, err := b.signToken(jwt.MapClaims{
		"sub":   account.ID,
		"email": account.Email,
		"exp":   expiresAt.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	session := &domain.Session{
		AccessToken: token,
		ExpiresAt:   expiresAt.UTC(),
		User:        account.Identity(),
	}
	if err := b.cache.Store(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (b *Backend) signToken(claims jwt.MapClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(b.cfg.JWTSecret))
}

// publish is best-effort: a lost event degrades cache freshness, not
// authentication.
func (b *Backend) publish(ctx context.Context, event ports.SessionEvent) {
	if err := b.feed.Publish(ctx, event); err != nil {
		b.log.Warn().Err(err).Str("type", event.Type).Msg("session event publish failed")
	}
}
