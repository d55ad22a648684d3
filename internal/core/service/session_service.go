package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/arianatravel/backoffice/internal/core/domain"
	"github.com/arianatravel/backoffice/internal/core/ports"
	"github.com/arianatravel/backoffice/internal/metrics"
)

var inputValidator = validator.New()

type loginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// SessionService implements login, logout and session validation against
// the travel API, with the local store as the single source of cached
// session state. It also tracks the session lifecycle state machine so
// every verdict reports, and logs, the transition it caused.
type SessionService struct {
	store   ports.SessionStore
	gateway ports.AuthGateway
	now     func() time.Time
	log     zerolog.Logger

	mu    sync.Mutex
	state domain.SessionState
}

func NewSessionService(store ports.SessionStore, gateway ports.AuthGateway, log zerolog.Logger) *SessionService {
	return &SessionService{
		store:   store,
		gateway: gateway,
		now:     time.Now,
		log:     log,
		state:   domain.StateNoSession,
	}
}

// WithClock replaces the time source. Intended for tests.
func (s *SessionService) WithClock(now func() time.Time) *SessionService {
	s.now = now
	return s
}

// Login authenticates against the remote API and persists the returned
// token and user. The store is untouched on every failure path, so a
// failed login never disturbs an existing session.
func (s *SessionService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if err := inputValidator.Struct(loginInput{Username: username, Password: password}); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, user, err := s.gateway.Login(ctx, username, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginOutcome(err)).Inc()
		s.log.Warn().Err(err).Str("username", username).Msg("login rejected")
		return nil, err
	}

	if err := s.store.Save(ctx, token, *user); err != nil {
		metrics.LoginsTotal.WithLabelValues("server_error").Inc()
		return nil, err
	}

	s.observe(domain.StateRemotelyConfirmed)
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("login succeeded")
	return user, nil
}

// Validate produces one authoritative verdict for the current session.
//
// The policy is fail-open on network failure and fail-closed on explicit
// rejection: only the server saying "invalid" (or an unambiguous
// server-side error) revokes access, while an unreachable server keeps
// the cached session alive for this verdict.
func (s *SessionService) Validate(ctx context.Context) domain.Verdict {
	cred, user, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("session store unreadable")
		return s.deny("store_error")
	}
	if cred == nil || user == nil {
		return s.deny("no_session")
	}

	// A stored credential was remotely confirmed at login; a fresh
	// process picks the state machine up from there.
	s.seedFromStore()

	if cred.Expired(s.now()) {
		if err := s.store.Clear(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to clear expired session")
		}
		s.log.Info().Time("issued_at", cred.IssuedAt).Msg("session expired locally")
		return s.deny("expired")
	}

	res, err := s.gateway.Validate(ctx, cred.Token)
	if err != nil {
		if errors.Is(err, domain.ErrUnreachable) {
			// Transient outage: keep the cached session for this verdict.
			s.observe(domain.StateLocallyValid)
			metrics.SessionFailOpenTotal.Inc()
			metrics.SessionValidationsTotal.WithLabelValues("authenticated", "fail_open").Inc()
			s.log.Warn().Err(err).Str("username", user.Username).Msg("validate unreachable, trusting cached session")
			return domain.Granted(*user, domain.StateLocallyValid)
		}
		// Ambiguous failure: favour safety over availability.
		if clearErr := s.store.Clear(ctx); clearErr != nil {
			s.log.Warn().Err(clearErr).Msg("failed to clear session after validate error")
		}
		s.log.Warn().Err(err).Msg("validate failed, session cleared")
		return s.deny("server_error")
	}

	if !res.Valid || res.User == nil {
		if err := s.store.Clear(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to clear rejected session")
		}
		s.log.Info().Str("username", user.Username).Msg("server rejected session")
		return s.deny("rejected")
	}
	if !res.User.IsAdmin() {
		if err := s.store.Clear(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to clear non-admin session")
		}
		s.log.Info().Str("username", res.User.Username).Str("role", res.User.Role).Msg("session lacks admin role")
		return s.deny("role_mismatch")
	}

	// Server copy supersedes the local copy; token and timestamp stay.
	if err := s.store.UpdateUser(ctx, *res.User); err != nil {
		s.log.Warn().Err(err).Msg("failed to refresh cached user")
	}

	s.observe(domain.StateRemotelyConfirmed)
	metrics.SessionValidationsTotal.WithLabelValues("authenticated", "confirmed").Inc()
	return domain.Granted(*res.User, domain.StateRemotelyConfirmed)
}

// Logout removes the local session. Clearing an already-empty store is
// not an error, and no server round-trip happens.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.observe(domain.StateNoSession)
	s.log.Info().Msg("logged out")
	return nil
}

func (s *SessionService) deny(reason string) domain.Verdict {
	s.observe(domain.StateNoSession)
	metrics.SessionValidationsTotal.WithLabelValues("unauthenticated", reason).Inc()
	return domain.Denied()
}

// observe advances the tracked session state, logging each transition
// and flagging any the lifecycle does not allow.
func (s *SessionService) observe(next domain.SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if next == s.state {
		return
	}
	evt := s.log.Debug()
	if !s.state.CanTransitionTo(next) {
		evt = s.log.Warn()
	}
	evt.Str("from", string(s.state)).Str("to", string(next)).Msg("session state transition")
	s.state = next
}

func (s *SessionService) seedFromStore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.StateNoSession {
		s.state = domain.StateRemotelyConfirmed
	}
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrUnreachable):
		return "unreachable"
	default:
		return "server_error"
	}
}
