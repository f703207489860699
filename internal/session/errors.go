package session

import "errors"

var (
	// ErrValidation: the submit was rejected client-side, no collaborator
	// was contacted.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials: the auth endpoint answered 401.
	ErrInvalidCredentials = errors.New("invalid login or password")

	// ErrServer: the auth endpoint answered with some other non-2xx status.
	ErrServer = errors.New("server error")

	// ErrConnectivity: no response at all.
	ErrConnectivity = errors.New("server connection error")

	// ErrProfileUnavailable is non-fatal: the profile panel stays empty,
	// authentication is untouched.
	ErrProfileUnavailable = errors.New("profile unavailable")

	// ErrNotAuthenticated guards profile fetches before login.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// User-visible messages. The wording is part of the UI contract.
const (
	MsgEnterCredentials = "Enter your login and password"
	MsgInvalidLogin     = "Invalid login or password"
	MsgConnectionError  = "Server connection error."
	MsgSignupSuccess    = "Account successfully created!..."
)
