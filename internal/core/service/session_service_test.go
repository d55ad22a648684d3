package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/arianatravel/backoffice/internal/core/domain"
	"github.com/arianatravel/backoffice/internal/core/ports"
	"github.com/arianatravel/backoffice/internal/infrastructure/store"
)

type stubGateway struct {
	loginToken string
	loginUser  *domain.User
	loginErr   error

	validateRes   *ports.ValidateResult
	validateErr   error
	validateCalls int
	loginCalls    int
}

func (g *stubGateway) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	g.loginCalls++
	if g.loginErr != nil {
		return "", nil, g.loginErr
	}
	return g.loginToken, g.loginUser, nil
}

func (g *stubGateway) Validate(_ context.Context, _ string) (*ports.ValidateResult, error) {
	g.validateCalls++
	if g.validateErr != nil {
		return nil, g.validateErr
	}
	return g.validateRes, nil
}

func admin() domain.User {
	return domain.User{Username: "alice", Role: domain.RoleAdmin}
}

func newService(gw *stubGateway) (*SessionService, *store.Memory) {
	st := store.NewMemory()
	return NewSessionService(st, gw, zerolog.Nop()), st
}

func mustSeed(t *testing.T, st *store.Memory, token string, user domain.User) {
	t.Helper()
	if err := st.Save(context.Background(), token, user); err != nil {
		t.Fatalf("seed store: %v", err)
	}
}

func mustBeEmpty(t *testing.T, st *store.Memory) {
	t.Helper()
	cred, user, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cred != nil || user != nil {
		t.Fatalf("expected empty store, got %+v %+v", cred, user)
	}
}

func TestValidate_NoSession_NoNetworkCall(t *testing.T) {
	gw := &stubGateway{}
	svc, _ := newService(gw)

	v := svc.Validate(context.Background())
	if v.Authenticated {
		t.Fatalf("fresh store produced an authenticated verdict")
	}
	if v.State != domain.StateNoSession {
		t.Fatalf("expected no_session state, got %s", v.State)
	}
	if gw.validateCalls != 0 {
		t.Fatalf("expected zero network calls, got %d", gw.validateCalls)
	}
}

func TestValidate_LocalExpiry_ClearsWithoutNetwork(t *testing.T) {
	gw := &stubGateway{validateRes: &ports.ValidateResult{Valid: true}}
	svc, st := newService(gw)
	mustSeed(t, st, "abc123", admin())

	// Credential saved "now", clock advanced past max age: 25h later.
	svc.WithClock(func() time.Time { return time.Now().Add(25 * time.Hour) })

	v := svc.Validate(context.Background())
	if v.Authenticated {
		t.Fatalf("expired session produced an authenticated verdict")
	}
	if gw.validateCalls != 0 {
		t.Fatalf("expected zero network calls for local expiry, got %d", gw.validateCalls)
	}
	mustBeEmpty(t, st)
}

func TestValidate_FailOpenOnNetworkLoss(t *testing.T) {
	gw := &stubGateway{validateErr: fmt.Errorf("dial tcp: %w", domain.ErrUnreachable)}
	svc, st := newService(gw)
	mustSeed(t, st, "abc123", admin())

	v := svc.Validate(context.Background())
	if !v.Authenticated {
		t.Fatalf("network loss revoked a cached session")
	}
	if v.User == nil || v.User.Username != "alice" {
		t.Fatalf("expected cached user, got %+v", v.User)
	}
	if v.State != domain.StateLocallyValid {
		t.Fatalf("fail-open verdict should be locally_valid, got %s", v.State)
	}

	cred, user, _ := st.Load(context.Background())
	if cred == nil || cred.Token != "abc123" || user == nil {
		t.Fatalf("store mutated on network loss: %+v %+v", cred, user)
	}
}

func TestValidate_FailClosedOnRejection(t *testing.T) {
	gw := &stubGateway{validateRes: &ports.ValidateResult{Valid: false}}
	svc, st := newService(gw)
	mustSeed(t, st, "abc123", admin())

	v := svc.Validate(context.Background())
	if v.Authenticated {
		t.Fatalf("explicit rejection kept the session authenticated")
	}
	mustBeEmpty(t, st)
}

func TestValidate_ServerErrorClears(t *testing.T) {
	gw := &stubGateway{validateErr: fmt.Errorf("status 500: %w", domain.ErrServerError)}
	svc, st := newService(gw)
	mustSeed(t, st, "abc123", admin())

	if v := svc.Validate(context.Background()); v.Authenticated {
		t.Fatalf("ambiguous server error kept the session authenticated")
	}
	mustBeEmpty(t, st)
}

func TestValidate_RoleEnforcement(t *testing.T) {
	editor := domain.User{Username: "eve", Role: "editor"}
	gw := &stubGateway{validateRes: &ports.ValidateResult{Valid: true, User: &editor}}
	svc, st := newService(gw)
	mustSeed(t, st, "abc123", editor)

	v := svc.Validate(context.Background())
	if v.Authenticated {
		t.Fatalf("non-admin role passed validation")
	}
	mustBeEmpty(t, st)
}

func TestValidate_ConfirmedRefreshesUser(t *testing.T) {
	serverCopy := domain.User{Username: "alice", Email: "alice@arianatravel.example", Role: domain.RoleAdmin}
	gw := &stubGateway{validateRes: &ports.ValidateResult{Valid: true, User: &serverCopy}}
	svc, st := newService(gw)
	mustSeed(t, st, "abc123", admin())

	credBefore, _, _ := st.Load(context.Background())

	v := svc.Validate(context.Background())
	if !v.Authenticated || v.User == nil || v.User.Email != serverCopy.Email {
		t.Fatalf("expected server copy in verdict, got %+v", v.User)
	}
	if v.State != domain.StateRemotelyConfirmed {
		t.Fatalf("confirmed verdict should be remotely_confirmed, got %s", v.State)
	}

	cred, user, _ := st.Load(context.Background())
	if user == nil || user.Email != serverCopy.Email {
		t.Fatalf("cached user not refreshed: %+v", user)
	}
	if cred == nil || cred.Token != "abc123" || !cred.IssuedAt.Equal(credBefore.IssuedAt) {
		t.Fatalf("credential changed by re-validation: %+v", cred)
	}
}

func TestLogin_Success_SavesSession(t *testing.T) {
	user := admin()
	gw := &stubGateway{loginToken: "abc123", loginUser: &user}
	svc, st := newService(gw)

	got, err := svc.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.Username != "alice" || got.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", got)
	}

	cred, stored, _ := st.Load(context.Background())
	if cred == nil || cred.Token != "abc123" {
		t.Fatalf("token not stored: %+v", cred)
	}
	if stored == nil || stored.Username != "alice" || stored.Role != domain.RoleAdmin {
		t.Fatalf("user not stored: %+v", stored)
	}
}

func TestLogin_EmptyInput_NoNetworkCall(t *testing.T) {
	gw := &stubGateway{}
	svc, _ := newService(gw)

	if _, err := svc.Login(context.Background(), "", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "alice", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if gw.loginCalls != 0 {
		t.Fatalf("expected zero network calls, got %d", gw.loginCalls)
	}
}

func TestLogin_Failure_LeavesExistingSession(t *testing.T) {
	gw := &stubGateway{loginErr: domain.ErrInvalidCredentials}
	svc, st := newService(gw)
	mustSeed(t, st, "old-token", admin())

	if _, err := svc.Login(context.Background(), "alice", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	cred, _, _ := st.Load(context.Background())
	if cred == nil || cred.Token != "old-token" {
		t.Fatalf("failed login disturbed the existing session: %+v", cred)
	}
}

func TestValidate_StateLifecycle(t *testing.T) {
	user := admin()
	gw := &stubGateway{loginToken: "abc123", loginUser: &user}
	svc, st := newService(gw)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	// Outage degrades the session to locally valid.
	gw.validateErr = fmt.Errorf("dial tcp: %w", domain.ErrUnreachable)
	if v := svc.Validate(ctx); v.State != domain.StateLocallyValid {
		t.Fatalf("expected locally_valid during outage, got %s", v.State)
	}

	// Network restored, server confirms: back to remotely confirmed.
	gw.validateErr = nil
	gw.validateRes = &ports.ValidateResult{Valid: true, User: &user}
	if v := svc.Validate(ctx); v.State != domain.StateRemotelyConfirmed {
		t.Fatalf("expected remotely_confirmed after recovery, got %s", v.State)
	}

	// Server rejects: session is gone.
	gw.validateRes = &ports.ValidateResult{Valid: false}
	if v := svc.Validate(ctx); v.State != domain.StateNoSession {
		t.Fatalf("expected no_session after rejection, got %s", v.State)
	}
	mustBeEmpty(t, st)
}

func TestLogout_Idempotent(t *testing.T) {
	gw := &stubGateway{}
	svc, st := newService(gw)
	mustSeed(t, st, "abc123", admin())

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("first logout: %v", err)
	}
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	mustBeEmpty(t, st)
}
