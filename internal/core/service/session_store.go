package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/wanxuanju/monument-api/internal/core/domain"
	"github.com/wanxuanju/monument-api/internal/core/ports"
)

// SessionStatus is the lifecycle state of the session store.
type SessionStatus string

const (
	StatusUninitialized SessionStatus = "uninitialized"
	StatusLoading       SessionStatus = "loading"
	StatusAuthenticated SessionStatus = "authenticated"
	StatusAnonymous     SessionStatus = "anonymous"
	StatusError         SessionStatus = "error"
)

const reconcileTimeout = 5 * time.Second

// SessionStore holds the current authentication state and a cached copy of
// the identity's metadata record. It delegates all persistence to the auth
// backend and the metadata repository; the cache is valid only for the
// current session lifetime.
//
// All mutations — actions and the backend session-change subscription — are
// serialized through one mutex, so readers observe a defined last-write-wins
// order.
type SessionStore struct {
	backend  ports.AuthBackend
	metaRepo ports.MetaRepository
	baseURL  string
	log      zerolog.Logger

	mu          sync.Mutex
	status      SessionStatus
	user        *domain.Identity
	session     *domain.Session
	meta        *domain.UserMeta
	loading     bool
	lastError   string
	unsubscribe func()
}

// NewSessionStore creates an empty store. baseURL is the site origin used
// for email redirect targets.
func NewSessionStore(backend ports.AuthBackend, metaRepo ports.MetaRepository, baseURL string, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		backend:  backend,
		metaRepo: metaRepo,
		baseURL:  baseURL,
		log:      log,
		status:   StatusUninitialized,
	}
}

// Init resolves an existing session from the backend (by persisted access
// token, empty for none) and registers the standing session-change
// subscription. Safe to call more than once; the subscription is registered
// only on the first call.
func (s *SessionStore) Init(ctx context.Context, accessToken string) {
	s.beginAction()
	defer s.endAction()

	session, err := s.backend.GetSession(ctx, accessToken)
	if err != nil {
		s.log.Error().Err(err).Msg("session init failed")
		s.mu.Lock()
		s.status = StatusError
		s.lastError = err.Error()
		s.mu.Unlock()
	} else if session != nil {
		s.setSession(session)
		s.reconcileMetadata(ctx, session.User)
	} else {
		s.mu.Lock()
		s.status = StatusAnonymous
		s.mu.Unlock()
	}

	s.mu.Lock()
	registered := s.unsubscribe != nil
	s.mu.Unlock()
	if !registered {
		unsub := s.backend.OnSessionChange(s.handleSessionEvent)
		s.mu.Lock()
		s.unsubscribe = unsub
		s.mu.Unlock()
	}
}

// Close tears down the session-change subscription. Intended for process
// exit; the subscription is otherwise active for the store's lifetime.
func (s *SessionStore) Close() {
	s.mu.Lock()
	unsub := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// handleSessionEvent applies a backend-pushed session change and re-runs
// metadata reconciliation, exactly as Init does for the initial session.
func (s *SessionStore) handleSessionEvent(event ports.SessionEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()

	if event.Session == nil {
		s.clearSession()
		return
	}
	s.setSession(event.Session)
	s.reconcileMetadata(ctx, event.Session.User)
}

// SignIn delegates the credential check to the backend. On failure the
// previously cached identity and session are left untouched; only the error
// field is set.
func (s *SessionStore) SignIn(ctx context.Context, email, password string) ports.SignInResult {
	s.beginAction()
	defer s.endAction()

	session, err := s.backend.SignInWithPassword(ctx, email, password)
	if err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("sign-in failed")
		s.setError(err)
		return ports.SignInResult{ActionResult: failure(err)}
	}

	s.setSession(session)
	s.reconcileMetadata(ctx, session.User)
	return ports.SignInResult{ActionResult: success(), User: session.User, Session: session}
}

// SignOut revokes accessToken at the backend; an empty token means the
// store's own cached session. Cached identity, session, and metadata are
// cleared only when it was the cached session that got revoked, so revoking
// another caller's token does not disturb the store's state. On backend
// failure state is left untouched.
func (s *SessionStore) SignOut(ctx context.Context, accessToken string) ports.ActionResult {
	s.beginAction()
	defer s.endAction()

	s.mu.Lock()
	cached := ""
	if s.session != nil {
		cached = s.session.AccessToken
	}
	s.mu.Unlock()

	token := accessToken
	if token == "" {
		token = cached
	}

	if err := s.backend.SignOut(ctx, token); err != nil {
		s.log.Warn().Err(err).Msg("sign-out failed")
		s.setError(err)
		return failure(err)
	}

	if token == cached {
		s.clearSession()
	}
	return success()
}

// SignUp delegates registration to the backend. When the backend returns an
// immediately-usable session (no email confirmation pending), the store
// adopts it and reconciles the metadata record.
func (s *SessionStore) SignUp(ctx context.Context, email, password string, metadata map[string]any) ports.RegisterResult {
	s.beginAction()
	defer s.endAction()

	res, err := s.backend.SignUp(ctx, ports.SignUpParams{
		Email:           email,
		Password:        password,
		Metadata:        metadata,
		EmailRedirectTo: s.baseURL + "/admin",
	})
	if err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("sign-up failed")
		s.setError(err)
		return ports.RegisterResult{ActionResult: failure(err)}
	}

	if res.Session != nil {
		s.setSession(res.Session)
		s.reconcileMetadata(ctx, res.Session.User)
	}

	return ports.RegisterResult{
		ActionResult:           success(),
		User:                   res.User,
		Session:                res.Session,
		NeedsEmailConfirmation: res.Session == nil,
	}
}

// ResetPassword asks the backend to send an out-of-band reset message. No
// state beyond loading and the error field is touched.
func (s *SessionStore) ResetPassword(ctx context.Context, email string) ports.ActionResult {
	s.beginAction()
	defer s.endAction()

	if err := s.backend.SendPasswordReset(ctx, email, s.baseURL+"/admin/reset-password"); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("password reset request failed")
		s.setError(err)
		return failure(err)
	}
	return success()
}

// reconcileMetadata guarantees the identity has exactly one metadata record,
// creating the default one on first sight. Failures cache nil and are
// logged; authentication itself still succeeds.
func (s *SessionStore) reconcileMetadata(ctx context.Context, identity *domain.Identity) {
	if identity == nil {
		s.cacheMeta(nil)
		return
	}

	meta, err := s.metaRepo.FindByUserID(ctx, identity.ID)
	if err == nil {
		s.cacheMeta(meta)
		return
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		s.log.Warn().Err(err).Str("user_id", identity.ID).Msg("metadata lookup failed")
		s.cacheMeta(nil)
		return
	}

	created, err := s.metaRepo.Insert(ctx, &domain.UserMeta{
		UserID:   identity.ID,
		FullName: defaultFullName(identity),
		Role:     domain.RoleUser,
	})
	if err != nil {
		// A concurrent reconcile may have won the insert race.
		if errors.Is(err, domain.ErrUserExists) {
			if existing, findErr := s.metaRepo.FindByUserID(ctx, identity.ID); findErr == nil {
				s.cacheMeta(existing)
				return
			}
		}
		s.log.Warn().Err(err).Str("user_id", identity.ID).Msg("metadata create failed")
		s.cacheMeta(nil)
		return
	}
	s.cacheMeta(created)
}

func defaultFullName(identity *domain.Identity) string {
	if name := identity.ProviderName(); name != "" {
		return name
	}
	return identity.EmailLocalPart()
}

// --- Derived getters ---

// IsAuthenticated reports whether an identity is present.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// IsAdmin reports whether the cached metadata record grants the admin role.
// Absent metadata means false.
func (s *SessionStore) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta.IsAdmin()
}

// DisplayName resolves, in order: cached full name, provider name, email
// local part, fallback placeholder.
func (s *SessionStore) DisplayName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.DisplayName(s.user, s.meta)
}

// CurrentSession returns the cached live session, or nil.
func (s *SessionStore) CurrentSession() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Status returns the store's lifecycle state.
func (s *SessionStore) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Loading reports whether an action is in flight.
func (s *SessionStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the message recorded by the most recent failure.
func (s *SessionStore) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// --- internal state transitions ---

func (s *SessionStore) beginAction() {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	if s.status == StatusUninitialized {
		s.status = StatusLoading
	}
	s.mu.Unlock()
}

func (s *SessionStore) endAction() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *SessionStore) setSession(session *domain.Session) {
	s.mu.Lock()
	s.session = session
	s.user = session.User
	s.status = StatusAuthenticated
	s.mu.Unlock()
}

func (s *SessionStore) clearSession() {
	s.mu.Lock()
	s.session = nil
	s.user = nil
	s.meta = nil
	s.status = StatusAnonymous
	s.mu.Unlock()
}

func (s *SessionStore) setError(err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
}

func (s *SessionStore) cacheMeta(meta *domain.UserMeta) {
	s.mu.Lock()
	s.meta = meta
	s.mu.Unlock()
}

func success() ports.ActionResult {
	return ports.ActionResult{Success: true}
}

func failure(err error) ports.ActionResult {
	return ports.ActionResult{Success: false, Error: err.Error()}
}
