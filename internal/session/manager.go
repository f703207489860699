package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"larktalk/internal/api"
	"larktalk/internal/logx"
	"larktalk/internal/models"
	"larktalk/internal/signup"
)

// Manager drives the session state machine. All transitions are atomic; the
// mutex is held across every state read and write, but never across a
// collaborator call. Each network operation captures the epoch counter at
// launch and applies its result only if the epoch is unchanged at the settle
// point, so a reply that arrives after the identity has moved on -- logout or
// a fresh login -- is a ghost response: it can never re-authenticate the
// session, attach a stale profile or touch the store.
type Manager struct {
	mu             sync.Mutex
	session        Session
	epoch          int64
	profileFetched bool

	auth  Authenticator
	store Store
	cfg   Config
}

func NewManager(auth Authenticator, store Store, cfg Config) *Manager {
	return &Manager{
		auth:    auth,
		store:   store,
		cfg:     cfg,
		session: Session{Status: StatusAnonymous},
	}
}

// Session returns a snapshot of the current state.
func (m *Manager) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Nickname is the display name for outgoing messages: the fetched profile's
// nickname when available, the login otherwise.
func (m *Manager) Nickname() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.Profile != nil && m.session.Profile.Nickname != "" {
		return m.session.Profile.Nickname
	}
	if m.session.LoginID != "" {
		return m.session.LoginID
	}
	return "User"
}

// Rehydrate restores the session from the store at startup. With
// TrustPersistedToken on, a stored token is accepted as-is -- no validating
// round-trip. Swap in a validation call here if that policy changes.
func (m *Manager) Rehydrate(ctx context.Context) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, err := m.store.Get(ctx, KeyToken)
	if err != nil {
		return m.session
	}
	loginID, err := m.store.Get(ctx, KeyUserLogin)
	if err != nil {
		return m.session
	}
	if !m.cfg.TrustPersistedToken {
		logx.Info("persisted token found but trust_persisted_token is off, staying anonymous")
		return m.session
	}

	m.session = Session{Status: StatusAuthenticated, Token: token, LoginID: loginID}
	logx.Info("session rehydrated", "login", loginID)
	return m.session
}

// SubmitLogin authenticates against the collaborator. Empty arguments fail
// fast with ErrValidation and contact nothing. On success the token and
// login are persisted; on failure the token is cleared and the user-visible
// message is retained on the session.
func (m *Manager) SubmitLogin(ctx context.Context, loginID, secret string) (Session, error) {
	if loginID == "" || secret == "" {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.session.Message = MsgEnterCredentials
		return m.session, ErrValidation
	}

	m.mu.Lock()
	m.session.Status = StatusAuthenticating
	m.session.LoginID = loginID
	m.session.Message = ""
	epoch := m.epoch
	m.mu.Unlock()

	token, err := m.auth.Login(ctx, loginID, secret)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.epoch != epoch {
		// Ghost response: the session moved on while the request was in
		// flight. Drop the result, persisted state stays as the later
		// operation left it.
		logx.Warn("stale login response dropped", "login", loginID)
		return m.session, nil
	}

	if err != nil {
		m.session.Status = StatusError
		m.session.Token = ""

		var st *api.StatusError
		switch {
		case errors.Is(err, api.ErrUnauthorized):
			m.session.Message = MsgInvalidLogin
			return m.session, fmt.Errorf("%w: %s", ErrInvalidCredentials, loginID)
		case errors.As(err, &st):
			m.session.Message = fmt.Sprintf("Server error: %d", st.Status)
			return m.session, fmt.Errorf("%w: status %d", ErrServer, st.Status)
		default:
			m.session.Message = MsgConnectionError
			return m.session, fmt.Errorf("%w: %v", ErrConnectivity, err)
		}
	}

	// A new identity invalidates anything still in flight for the old one,
	// exactly like logout does.
	m.epoch++
	m.session = Session{Status: StatusAuthenticated, Token: token, LoginID: loginID}
	m.profileFetched = false

	if err := m.store.Set(ctx, KeyToken, token); err != nil {
		logx.Error(err, "persisting token failed")
	}
	if err := m.store.Set(ctx, KeyUserLogin, loginID); err != nil {
		logx.Error(err, "persisting login failed")
	}
	logx.Info("login succeeded", "login", loginID)
	return m.session, nil
}

// SubmitSignup validates the draft and, only when the violation set is
// empty, forwards it to the collaborator. The returned message is the
// user-visible outcome line; per-field violations are returned as-is for
// inline rendering. Signup never mutates the session.
func (m *Manager) SubmitSignup(ctx context.Context, draft models.RegistrationDraft) (signup.Violations, string, error) {
	if v := signup.Validate(draft); !v.OK() {
		return v, "", ErrValidation
	}

	err := m.auth.Signup(ctx, draft)
	if err == nil {
		logx.Info("signup succeeded", "login", draft.Login)
		return nil, MsgSignupSuccess, nil
	}

	var st *api.StatusError
	if errors.As(err, &st) {
		// The collaborator's body is a plain-text reason, surfaced verbatim.
		return nil, "Error: " + st.Body, fmt.Errorf("%w: status %d", ErrServer, st.Status)
	}
	return nil, MsgConnectionError, fmt.Errorf("%w: %v", ErrConnectivity, err)
}

// FetchProfile lazily loads the profile for the authenticated login. It is
// idempotent: once fetched, the cached profile is returned. Failure is
// non-fatal -- logged, session untouched, ErrProfileUnavailable returned.
func (m *Manager) FetchProfile(ctx context.Context) (*models.Profile, error) {
	m.mu.Lock()
	if m.session.Status != StatusAuthenticated {
		m.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	if m.profileFetched && m.session.Profile != nil {
		prof := m.session.Profile
		m.mu.Unlock()
		return prof, nil
	}
	loginID := m.session.LoginID
	epoch := m.epoch
	m.mu.Unlock()

	prof, err := m.auth.Profile(ctx, loginID)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		logx.Error(err, "profile fetch failed", "login", loginID)
		return nil, fmt.Errorf("%w: %v", ErrProfileUnavailable, err)
	}
	if m.epoch != epoch || prof.Login != loginID {
		// The session identity moved on; never attach a stale profile.
		return nil, ErrProfileUnavailable
	}

	m.session.Profile = prof
	m.profileFetched = true
	return prof, nil
}

// Logout clears the persisted credentials and resets the session to
// Anonymous. It always succeeds and is irreversible; bumping the epoch makes
// any in-flight response a ghost.
func (m *Manager) Logout(ctx context.Context) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.epoch++
	if err := m.store.Clear(ctx); err != nil {
		logx.Error(err, "clearing persisted credentials failed")
	}
	m.session = Session{Status: StatusAnonymous}
	m.profileFetched = false
	logx.Info("logged out")
	return m.session
}
