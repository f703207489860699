package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"larktalk/internal/api"
	"larktalk/internal/models"
)

var errNoKey = errors.New("no such key")

// memStore is an in-memory Store for tests.
type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (s *memStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return "", errNoKey
	}
	return v, nil
}

func (s *memStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]string)
	return nil
}

func (s *memStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// fakeAuth is a scriptable Authenticator. The optional gate channel blocks
// Login until released, to stage in-flight requests.
type fakeAuth struct {
	loginToken string
	loginErr   error
	loginCalls int

	signupErr error

	profile    *models.Profile
	profileErr error

	started chan struct{}
	gate    chan struct{}

	profileStarted chan struct{}
	profileGate    chan struct{}
}

func (f *fakeAuth) Login(_ context.Context, _, _ string) (string, error) {
	f.loginCalls++
	if f.started != nil {
		close(f.started)
	}
	if f.gate != nil {
		<-f.gate
	}
	return f.loginToken, f.loginErr
}

func (f *fakeAuth) Signup(_ context.Context, _ models.RegistrationDraft) error {
	return f.signupErr
}

func (f *fakeAuth) Profile(_ context.Context, _ string) (*models.Profile, error) {
	if f.profileStarted != nil {
		close(f.profileStarted)
	}
	if f.profileGate != nil {
		<-f.profileGate
	}
	return f.profile, f.profileErr
}

func TestSubmitLoginEmptyCredentialsSkipsNetwork(t *testing.T) {
	auth := &fakeAuth{}
	mgr := NewManager(auth, newMemStore(), Config{})

	s, err := mgr.SubmitLogin(context.Background(), "", "secret")
	require.ErrorIs(t, err, ErrValidation)
	require.Equal(t, MsgEnterCredentials, s.Message)
	require.Zero(t, auth.loginCalls)

	_, err = mgr.SubmitLogin(context.Background(), "bob", "")
	require.ErrorIs(t, err, ErrValidation)
	require.Zero(t, auth.loginCalls)
}

func TestSubmitLoginSuccessPersists(t *testing.T) {
	auth := &fakeAuth{loginToken: "tok-1"}
	store := newMemStore()
	mgr := NewManager(auth, store, Config{})

	s, err := mgr.SubmitLogin(context.Background(), "bob", "secret")
	require.NoError(t, err)
	require.Equal(t, StatusAuthenticated, s.Status)
	require.Equal(t, "tok-1", s.Token)
	require.Equal(t, "bob", s.LoginID)

	tok, err := store.Get(context.Background(), KeyToken)
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)
	login, err := store.Get(context.Background(), KeyUserLogin)
	require.NoError(t, err)
	require.Equal(t, "bob", login)
}

func TestSubmitLoginUnauthorized(t *testing.T) {
	auth := &fakeAuth{loginErr: api.ErrUnauthorized}
	store := newMemStore()
	mgr := NewManager(auth, store, Config{})

	s, err := mgr.SubmitLogin(context.Background(), "bob", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.Equal(t, StatusError, s.Status)
	require.Empty(t, s.Token)
	require.Equal(t, MsgInvalidLogin, s.Message)
	require.Zero(t, store.len())
}

func TestSubmitLoginServerError(t *testing.T) {
	auth := &fakeAuth{loginErr: &api.StatusError{Status: 503, Body: "down"}}
	mgr := NewManager(auth, newMemStore(), Config{})

	s, err := mgr.SubmitLogin(context.Background(), "bob", "secret")
	require.ErrorIs(t, err, ErrServer)
	require.Equal(t, StatusError, s.Status)
	require.Equal(t, "Server error: 503", s.Message)
}

func TestSubmitLoginConnectivityError(t *testing.T) {
	auth := &fakeAuth{loginErr: errors.New("dial tcp: connection refused")}
	mgr := NewManager(auth, newMemStore(), Config{})

	s, err := mgr.SubmitLogin(context.Background(), "bob", "secret")
	require.ErrorIs(t, err, ErrConnectivity)
	require.Equal(t, StatusError, s.Status)
	require.Equal(t, MsgConnectionError, s.Message)
}

// A login reply that lands after logout must neither re-authenticate the
// session nor write credentials back into the store.
func TestSubmitLoginGhostResponseDropped(t *testing.T) {
	auth := &fakeAuth{loginToken: "tok-ghost", started: make(chan struct{}), gate: make(chan struct{})}
	store := newMemStore()
	mgr := NewManager(auth, store, Config{})

	done := make(chan struct{})
	var (
		got    Session
		gotErr error
	)
	go func() {
		got, gotErr = mgr.SubmitLogin(context.Background(), "bob", "secret")
		close(done)
	}()

	// Wait for the request to be in flight, then log out underneath it.
	<-auth.started
	mgr.Logout(context.Background())
	close(auth.gate)
	<-done

	require.NoError(t, gotErr)
	require.Equal(t, StatusAnonymous, got.Status)
	require.Empty(t, got.Token)
	require.Zero(t, store.len())
	require.Equal(t, StatusAnonymous, mgr.Session().Status)
}

func TestLogoutClearsEverything(t *testing.T) {
	auth := &fakeAuth{loginToken: "tok-1", profile: &models.Profile{Login: "bob", Nickname: "Bobby"}}
	store := newMemStore()
	mgr := NewManager(auth, store, Config{})

	_, err := mgr.SubmitLogin(context.Background(), "bob", "secret")
	require.NoError(t, err)
	_, err = mgr.FetchProfile(context.Background())
	require.NoError(t, err)

	s := mgr.Logout(context.Background())
	require.Equal(t, StatusAnonymous, s.Status)
	require.Nil(t, s.Profile)
	require.Zero(t, store.len())
	require.Equal(t, "User", mgr.Nickname())
}

func TestRehydrateTrusted(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.Set(context.Background(), KeyToken, "tok-1"))
	require.NoError(t, store.Set(context.Background(), KeyUserLogin, "bob"))

	mgr := NewManager(&fakeAuth{}, store, Config{TrustPersistedToken: true})
	s := mgr.Rehydrate(context.Background())
	require.Equal(t, StatusAuthenticated, s.Status)
	require.Equal(t, "tok-1", s.Token)
	require.Equal(t, "bob", s.LoginID)
	require.Equal(t, "bob", mgr.Nickname())
}

func TestRehydrateUntrustedStaysAnonymous(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.Set(context.Background(), KeyToken, "tok-1"))
	require.NoError(t, store.Set(context.Background(), KeyUserLogin, "bob"))

	mgr := NewManager(&fakeAuth{}, store, Config{TrustPersistedToken: false})
	s := mgr.Rehydrate(context.Background())
	require.Equal(t, StatusAnonymous, s.Status)
}

func TestRehydrateEmptyStore(t *testing.T) {
	mgr := NewManager(&fakeAuth{}, newMemStore(), Config{TrustPersistedToken: true})
	s := mgr.Rehydrate(context.Background())
	require.Equal(t, StatusAnonymous, s.Status)
}

func TestSubmitSignupValidationShortCircuits(t *testing.T) {
	auth := &fakeAuth{signupErr: errors.New("must not be called")}
	mgr := NewManager(auth, newMemStore(), Config{})

	v, msg, err := mgr.SubmitSignup(context.Background(), models.RegistrationDraft{})
	require.ErrorIs(t, err, ErrValidation)
	require.False(t, v.OK())
	require.Empty(t, msg)
}

func TestSubmitSignupSuccess(t *testing.T) {
	mgr := NewManager(&fakeAuth{}, newMemStore(), Config{})

	v, msg, err := mgr.SubmitSignup(context.Background(), models.RegistrationDraft{
		Login:    "bob",
		Nickname: "Bobby",
		Email:    "bob@mail.com",
		Password: "Aa1@aaaa",
	})
	require.NoError(t, err)
	require.True(t, v.OK())
	require.Equal(t, MsgSignupSuccess, msg)
}

func TestSubmitSignupServerRejection(t *testing.T) {
	mgr := NewManager(&fakeAuth{signupErr: &api.StatusError{Status: 409, Body: "login already taken"}}, newMemStore(), Config{})

	_, msg, err := mgr.SubmitSignup(context.Background(), models.RegistrationDraft{
		Login:    "bob",
		Nickname: "Bobby",
		Email:    "bob@mail.com",
		Password: "Aa1@aaaa",
	})
	require.ErrorIs(t, err, ErrServer)
	require.Equal(t, "Error: login already taken", msg)
}

func TestSubmitSignupConnectivity(t *testing.T) {
	mgr := NewManager(&fakeAuth{signupErr: errors.New("timeout")}, newMemStore(), Config{})

	_, msg, err := mgr.SubmitSignup(context.Background(), models.RegistrationDraft{
		Login:    "bob",
		Nickname: "Bobby",
		Email:    "bob@mail.com",
		Password: "Aa1@aaaa",
	})
	require.ErrorIs(t, err, ErrConnectivity)
	require.Equal(t, MsgConnectionError, msg)
}

func TestFetchProfileRequiresAuth(t *testing.T) {
	mgr := NewManager(&fakeAuth{}, newMemStore(), Config{})
	_, err := mgr.FetchProfile(context.Background())
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestFetchProfileCachesAndPrefersNickname(t *testing.T) {
	auth := &fakeAuth{loginToken: "tok-1", profile: &models.Profile{Login: "bob", Nickname: "Bobby"}}
	mgr := NewManager(auth, newMemStore(), Config{})
	_, err := mgr.SubmitLogin(context.Background(), "bob", "secret")
	require.NoError(t, err)

	p1, err := mgr.FetchProfile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bobby", p1.Nickname)
	require.Equal(t, "Bobby", mgr.Nickname())

	// Cached: a second call returns the same profile even if the
	// collaborator would now fail.
	auth.profileErr = errors.New("gone")
	p2, err := mgr.FetchProfile(context.Background())
	require.NoError(t, err)
	require.Same(t, p1, p2)
}

func TestFetchProfileFailureIsNonFatal(t *testing.T) {
	auth := &fakeAuth{loginToken: "tok-1", profileErr: errors.New("boom")}
	mgr := NewManager(auth, newMemStore(), Config{})
	_, err := mgr.SubmitLogin(context.Background(), "bob", "secret")
	require.NoError(t, err)

	_, err = mgr.FetchProfile(context.Background())
	require.ErrorIs(t, err, ErrProfileUnavailable)
	require.Equal(t, StatusAuthenticated, mgr.Session().Status)
	require.Equal(t, "bob", mgr.Nickname())
}

// A profile reply that lands after a different user has signed in must be
// discarded, never attached to the new session.
func TestFetchProfileStaleAfterReloginDiscarded(t *testing.T) {
	auth := &fakeAuth{
		loginToken:     "tok-1",
		profile:        &models.Profile{Login: "alice", Nickname: "Alice"},
		profileStarted: make(chan struct{}),
		profileGate:    make(chan struct{}),
	}
	mgr := NewManager(auth, newMemStore(), Config{})
	_, err := mgr.SubmitLogin(context.Background(), "alice", "secret")
	require.NoError(t, err)

	done := make(chan struct{})
	var fetchErr error
	go func() {
		_, fetchErr = mgr.FetchProfile(context.Background())
		close(done)
	}()

	// With alice's fetch in flight, bob signs in, then the fetch settles.
	<-auth.profileStarted
	_, err = mgr.SubmitLogin(context.Background(), "bob", "secret")
	require.NoError(t, err)
	close(auth.profileGate)
	<-done

	require.ErrorIs(t, fetchErr, ErrProfileUnavailable)
	s := mgr.Session()
	require.Equal(t, "bob", s.LoginID)
	require.Nil(t, s.Profile)
	require.Equal(t, "bob", mgr.Nickname())
}

func TestFetchProfileMismatchedLoginDiscarded(t *testing.T) {
	auth := &fakeAuth{loginToken: "tok-1", profile: &models.Profile{Login: "someone-else", Nickname: "X"}}
	mgr := NewManager(auth, newMemStore(), Config{})
	_, err := mgr.SubmitLogin(context.Background(), "bob", "secret")
	require.NoError(t, err)

	_, err = mgr.FetchProfile(context.Background())
	require.ErrorIs(t, err, ErrProfileUnavailable)
	require.Nil(t, mgr.Session().Profile)
}
