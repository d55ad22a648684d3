// Package gate guards access to the protected admin surface. It turns a
// session verdict into exactly one of: the protected view, or a redirect
// intent to the login route. Navigation is returned as an intent the
// caller executes; the gate itself never touches global navigation.
package gate

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/arianatravel/backoffice/internal/core/domain"
	"github.com/arianatravel/backoffice/internal/core/ports"
)

// LoginRoute is the destination of all unauthenticated redirects.
const LoginRoute = "/login"

// Navigation is a navigation command for the caller to execute.
// ReplaceHistory means the previous location must not be reachable via
// back-navigation.
type Navigation struct {
	Route          string
	ReplaceHistory bool
}

// Renderer receives the outcome of a guard check. Pending is always
// called first; exactly one of Protected or RedirectToLogin follows,
// unless the check is cancelled, in which case neither does.
type Renderer interface {
	Pending()
	Protected(user domain.User)
	RedirectToLogin(nav Navigation)
}

// Gate guards a protected subtree.
type Gate struct {
	sessions ports.SessionService
	log      zerolog.Logger
}

func New(sessions ports.SessionService, log zerolog.Logger) *Gate {
	return &Gate{sessions: sessions, log: log}
}

// Guard resolves a verdict for the current session and drives the
// renderer. Concurrent Guard calls are allowed to run to completion
// independently; verdicts apply in arrival order.
//
// If ctx is cancelled before the verdict resolves, the result is
// discarded: no render, no redirect. The validation itself observes the
// same ctx, and a cancelled remote check classifies as unreachable, which
// never mutates the store.
func (g *Gate) Guard(ctx context.Context, r Renderer) {
	r.Pending()

	done := make(chan domain.Verdict, 1)
	go func() {
		done <- g.sessions.Validate(ctx)
	}()

	select {
	case <-ctx.Done():
		g.log.Debug().Msg("guard cancelled, verdict discarded")
	case v := <-done:
		if ctx.Err() != nil {
			g.log.Debug().Msg("guard cancelled while verdict resolved, discarded")
			return
		}
		if v.Authenticated {
			r.Protected(*v.User)
			return
		}
		r.RedirectToLogin(Navigation{Route: LoginRoute, ReplaceHistory: true})
	}
}

// Logout clears the session and returns the navigation intent to the
// login route. Always succeeds from the caller's perspective.
func (g *Gate) Logout(ctx context.Context) Navigation {
	if err := g.sessions.Logout(ctx); err != nil {
		g.log.Warn().Err(err).Msg("logout failed to clear store")
	}
	return Navigation{Route: LoginRoute, ReplaceHistory: true}
}

// LoginErrorMessage maps a login failure to the user-facing string shown
// on the login form. Unknown errors get the generic server message.
func LoginErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid username or password. Please try again."
	case errors.Is(err, domain.ErrUnreachable):
		return "Cannot connect to server. Please check your internet connection."
	default:
		return "Server error. Please try again later."
	}
}
