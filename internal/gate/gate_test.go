package gate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/arianatravel/backoffice/internal/core/domain"
	"github.com/arianatravel/backoffice/internal/core/service"
	"github.com/arianatravel/backoffice/internal/infrastructure/api"
	"github.com/arianatravel/backoffice/internal/infrastructure/store"
	"github.com/arianatravel/backoffice/internal/testutil"
)

// recordingRenderer captures the calls a guard check makes.
type recordingRenderer struct {
	mu       sync.Mutex
	pending  bool
	rendered *domain.User
	redirect *Navigation
}

func (r *recordingRenderer) Pending() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = true
}

func (r *recordingRenderer) Protected(user domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rendered = &user
}

func (r *recordingRenderer) RedirectToLogin(nav Navigation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.redirect = &nav
}

// blockingSessions is a SessionService whose Validate only resolves when
// the context is cancelled.
type blockingSessions struct{}

func (blockingSessions) Login(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrInvalidCredentials
}

func (blockingSessions) Validate(ctx context.Context) domain.Verdict {
	<-ctx.Done()
	return domain.Granted(domain.User{Username: "late", Role: domain.RoleAdmin}, domain.StateRemotelyConfirmed)
}

func (blockingSessions) Logout(context.Context) error { return nil }

func newStack(t *testing.T, fake *testutil.FakeAPI) (*Gate, *service.SessionService, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	client := api.NewClient(fake.URL(), 2*time.Second, st, zerolog.Nop())
	sessions := service.NewSessionService(st, client, zerolog.Nop())
	return New(sessions, zerolog.Nop()), sessions, st
}

func admin() testutil.Account {
	return testutil.Account{Username: "alice", Password: "s3cret", Role: domain.RoleAdmin}
}

func TestGuard_FreshState_RedirectsWithoutNetwork(t *testing.T) {
	fake := testutil.NewFakeAPI(admin())
	defer fake.Close()

	g, _, _ := newStack(t, fake)
	r := &recordingRenderer{}
	g.Guard(context.Background(), r)

	if !r.pending {
		t.Fatalf("pending indicator never shown")
	}
	if r.rendered != nil {
		t.Fatalf("protected view rendered without a session")
	}
	if r.redirect == nil {
		t.Fatalf("expected redirect to login")
	}
	if r.redirect.Route != LoginRoute || !r.redirect.ReplaceHistory {
		t.Fatalf("unexpected navigation: %+v", r.redirect)
	}
	if n := fake.ValidateCalls.Load(); n != 0 {
		t.Fatalf("expected zero validate calls, got %d", n)
	}
}

func TestGuard_AfterLogin_RendersProtectedView(t *testing.T) {
	fake := testutil.NewFakeAPI(admin())
	defer fake.Close()

	g, sessions, st := newStack(t, fake)
	ctx := context.Background()

	if _, err := sessions.Login(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if cred, user, _ := st.Load(ctx); cred == nil || user == nil || user.Role != domain.RoleAdmin {
		t.Fatalf("session not stored after login")
	}

	r := &recordingRenderer{}
	g.Guard(ctx, r)

	if r.redirect != nil {
		t.Fatalf("valid admin session redirected to login")
	}
	if r.rendered == nil || r.rendered.Username != "alice" {
		t.Fatalf("protected view not rendered: %+v", r.rendered)
	}
	if n := fake.ValidateCalls.Load(); n != 1 {
		t.Fatalf("expected one validate call, got %d", n)
	}
}

func TestGuard_ServerRevocation_Redirects(t *testing.T) {
	fake := testutil.NewFakeAPI(admin())
	defer fake.Close()

	g, sessions, st := newStack(t, fake)
	ctx := context.Background()

	if _, err := sessions.Login(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	fake.RejectTokens.Store(true)

	r := &recordingRenderer{}
	g.Guard(ctx, r)

	if r.redirect == nil {
		t.Fatalf("revoked session did not redirect")
	}
	if cred, user, _ := st.Load(ctx); cred != nil || user != nil {
		t.Fatalf("store not cleared after revocation")
	}
}

func TestGuard_Cancelled_DiscardsVerdict(t *testing.T) {
	g := New(blockingSessions{}, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	r := &recordingRenderer{}
	done := make(chan struct{})
	go func() {
		g.Guard(ctx, r)
		close(done)
	}()

	// Give the guard a moment to enter its pending state, then unmount.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("guard did not return after cancellation")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.pending {
		t.Fatalf("pending indicator never shown")
	}
	if r.rendered != nil || r.redirect != nil {
		t.Fatalf("cancelled guard acted on a stale verdict: %+v %+v", r.rendered, r.redirect)
	}
}

func TestLogout_ClearsStoreAndReturnsIntent(t *testing.T) {
	fake := testutil.NewFakeAPI(admin())
	defer fake.Close()

	g, sessions, st := newStack(t, fake)
	ctx := context.Background()

	if _, err := sessions.Login(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	nav := g.Logout(ctx)
	if nav.Route != LoginRoute || !nav.ReplaceHistory {
		t.Fatalf("unexpected navigation intent: %+v", nav)
	}
	if cred, user, _ := st.Load(ctx); cred != nil || user != nil {
		t.Fatalf("logout left session behind")
	}

	// Logging out again is harmless.
	if nav = g.Logout(ctx); nav.Route != LoginRoute {
		t.Fatalf("second logout changed the intent: %+v", nav)
	}
}

func TestLoginErrorMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{domain.ErrInvalidCredentials, "Invalid username or password. Please try again."},
		{domain.ErrUnreachable, "Cannot connect to server. Please check your internet connection."},
		{domain.ErrServerError, "Server error. Please try again later."},
	}
	for _, c := range cases {
		if got := LoginErrorMessage(c.err); got != c.want {
			t.Fatalf("message for %v: got %q, want %q", c.err, got, c.want)
		}
	}
}
