package ports

import (
	"context"

	"github.com/arianatravel/backoffice/internal/core/domain"
)

// ValidateResult mirrors the payload of the remote validate endpoint.
// Valid=false is the server's explicit rejection of the token.
type ValidateResult struct {
	Valid bool         `json:"valid"`
	User  *domain.User `json:"user"`
}

// AuthGateway is the outbound edge to the travel API's auth endpoints.
//
// Implementations must classify failures: a transport-level failure (no
// HTTP response obtained at all, including timeouts) is reported as
// domain.ErrUnreachable; an HTTP-level rejection maps to
// domain.ErrInvalidCredentials or domain.ErrServerError.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (token string, user *domain.User, err error)
	Validate(ctx context.Context, token string) (*ValidateResult, error)
}
