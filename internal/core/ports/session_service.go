package ports

import (
	"context"

	"github.com/arianatravel/backoffice/internal/core/domain"
)

// SessionService reconciles the locally cached session with the server
// and owns the login/logout operations that create and destroy it.
type SessionService interface {
	// Login authenticates against the remote API and stores the returned
	// credential. The store is untouched on every failure path.
	Login(ctx context.Context, username, password string) (*domain.User, error)

	// Validate produces one authoritative verdict. All failures are
	// resolved into the verdict; nothing propagates to the caller.
	Validate(ctx context.Context) domain.Verdict

	// Logout clears the local session. No server round-trip.
	Logout(ctx context.Context) error
}
