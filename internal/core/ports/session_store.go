package ports

import (
	"context"

	"github.com/arianatravel/backoffice/internal/core/domain"
)

// SessionStore is the sole owner of the local credential and user record.
// Implementations persist exactly two named slots and must keep them
// paired: Load never returns one without the other.
type SessionStore interface {
	// Save writes a fresh credential (token + current timestamp) together
	// with the user record, replacing any previous session.
	Save(ctx context.Context, token string, user domain.User) error

	// Load returns the persisted credential and user, or (nil, nil, nil)
	// when no session is stored.
	Load(ctx context.Context) (*domain.Credential, *domain.User, error)

	// UpdateUser overwrites the cached user without touching the
	// credential. A no-op when no session is stored.
	UpdateUser(ctx context.Context, user domain.User) error

	// Clear removes the session. Idempotent.
	Clear(ctx context.Context) error
}
