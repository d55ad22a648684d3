package domain

import (
	"errors"
	"time"
)

// CredentialMaxAge bounds how long a stored credential is trusted without
// the server re-issuing it. Fixed at build time.
const CredentialMaxAge = 24 * time.Hour

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrServerError = errors.New("server error")
var ErrUnreachable = errors.New("server unreachable")
var ErrNotAuthenticated = errors.New("not authenticated")
var ErrNotFound = errors.New("resource not found")

// Credential is the locally persisted proof of login: the opaque bearer
// token plus the moment it was stored. A Credential is only meaningful
// paired with a User; the store writes and clears the two together.
type Credential struct {
	Token    string    `json:"token"`
	IssuedAt time.Time `json:"issued_at"`
}

// Expired reports whether the credential has outlived CredentialMaxAge.
func (c Credential) Expired(now time.Time) bool {
	return now.Sub(c.IssuedAt) > CredentialMaxAge
}

// Verdict is the outcome of a single validation pass. It is produced
// fresh on every gate check and never cached. State records where the
// pass left the session lifecycle: StateLocallyValid marks the degraded
// fail-open case, StateRemotelyConfirmed the server-vouched one.
type Verdict struct {
	Authenticated bool
	User          *User
	State         SessionState
}

// Denied is the unauthenticated verdict.
func Denied() Verdict {
	return Verdict{State: StateNoSession}
}

// Granted builds an authenticated verdict for the given user.
func Granted(user User, state SessionState) Verdict {
	return Verdict{Authenticated: true, User: &user, State: state}
}
