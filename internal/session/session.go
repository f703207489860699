// Package session owns the client's authentication state machine: anonymous
// to authenticating to authenticated, token persistence, lazy profile fetch
// and logout. It is the root of the client; the room controller only ever
// sees the authenticated identity, read-only.
package session

import (
	"context"

	"larktalk/internal/models"
)

// Status is the session's position in the auth lifecycle.
type Status int

const (
	StatusAnonymous Status = iota
	StatusAuthenticating
	StatusAuthenticated
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Session is a snapshot of the auth state. Token is non-empty iff Status is
// StatusAuthenticated. Message is the user-visible error text, retained
// after a failed attempt until the next submit.
type Session struct {
	Status  Status
	Token   string
	LoginID string
	Profile *models.Profile
	Message string
}

// Persisted credential keys. Both are written on successful login and both
// are cleared on logout; absence of either at startup means Anonymous.
const (
	KeyToken     = "token"
	KeyUserLogin = "userLogin"
)

// Store is the durable credential store the manager owns. Writes are
// last-write-wins; no other component touches it.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context) error
}

// Authenticator is the REST collaborator contract the manager depends on.
type Authenticator interface {
	Login(ctx context.Context, login, password string) (token string, err error)
	Signup(ctx context.Context, draft models.RegistrationDraft) error
	Profile(ctx context.Context, login string) (*models.Profile, error)
}

// Config holds the session policies.
type Config struct {
	// TrustPersistedToken makes rehydration accept a stored token as proof
	// of validity without a server round-trip. Off means stored credentials
	// are ignored at startup and the user logs in again.
	TrustPersistedToken bool
}
