package cli

import (
	"context"
	"errors"

	"github.com/arianatravel/backoffice/internal/core/domain"
	"github.com/arianatravel/backoffice/internal/gate"
)

// errNotSignedIn is returned by guarded commands when the gate redirects.
var errNotSignedIn = errors.New(`not signed in: run "backoffice login" first`)

// cliRenderer adapts the route gate to a terminal: the protected "view"
// is the command body, the login redirect becomes a non-zero exit.
type cliRenderer struct {
	render func(user domain.User) error
	err    error
}

func (r *cliRenderer) Pending() {}

func (r *cliRenderer) Protected(user domain.User) {
	r.err = r.render(user)
}

func (r *cliRenderer) RedirectToLogin(_ gate.Navigation) {
	r.err = errNotSignedIn
}

// runGuarded routes a command body through the gate so only a validated
// admin session reaches it.
func (a *app) runGuarded(ctx context.Context, render func(user domain.User) error) error {
	r := &cliRenderer{render: render}
	a.gate.Guard(ctx, r)
	return r.err
}
