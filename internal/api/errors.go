package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is the 401 from the login endpoint: the credentials were
// rejected, nothing else went wrong.
var ErrUnauthorized = errors.New("invalid credentials")

// StatusError is any other non-2xx response. Body keeps the plain-text
// payload so callers can surface it verbatim.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}
