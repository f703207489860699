package models

import "time"

// Profile is the richer user record fetched lazily after authentication.
// Profile display is optional; a failed fetch never blocks the session.
type Profile struct {
	Login     string    `json:"login"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	Roles     string    `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegistrationDraft is the transient signup form state. It exists only for
// the duration of the form and is never persisted.
type RegistrationDraft struct {
	Login    string `json:"login"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
