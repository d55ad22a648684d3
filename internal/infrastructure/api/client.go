// Package api implements the outbound edge to the travel REST API: the
// auth gateway, the bearer-token transport, and the opaque admin
// resource calls. The API's payloads are owned by the server; nothing
// here models them beyond the auth envelope.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arianatravel/backoffice/internal/core/domain"
	"github.com/arianatravel/backoffice/internal/core/ports"
)

const defaultTimeout = 5 * time.Second

// Client talks to the travel API. The embedded http.Client carries an
// explicit timeout so an unreachable server resolves deterministically
// instead of hanging a pending gate check.
type Client struct {
	base string
	http *http.Client
	log  zerolog.Logger
}

// NewClient builds a Client whose transport reads the bearer token live
// from the given store.
func NewClient(baseURL string, timeout time.Duration, store ports.SessionStore, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: &bearerTransport{store: store, next: http.DefaultTransport},
		},
		log: log,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login posts credentials to the auth endpoint.
//
// Error mapping: 401 → ErrInvalidCredentials, any other HTTP rejection →
// ErrServerError, no response at all → ErrUnreachable.
func (c *Client) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return "", nil, fmt.Errorf("encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", nil, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w: %v", domain.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized:
		return "", nil, domain.ErrInvalidCredentials
	default:
		return "", nil, fmt.Errorf("login: status %d: %w", resp.StatusCode, domain.ErrServerError)
	}

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", nil, fmt.Errorf("decode login response: %w", domain.ErrServerError)
	}
	if out.Token == "" || out.User == nil {
		return "", nil, fmt.Errorf("login response missing token or user: %w", domain.ErrServerError)
	}
	return out.Token, out.User, nil
}

// Validate asks the server whether the token is still good.
//
// An explicit 401/403 is the server rejecting the token and comes back as
// Valid=false with a nil error; ErrUnreachable is reserved for the case
// where no HTTP response was obtained at all.
func (c *Client) Validate(ctx context.Context, token string) (*ports.ValidateResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/auth/validate", nil)
	if err != nil {
		return nil, fmt.Errorf("build validate request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("validate: %w: %v", domain.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return &ports.ValidateResult{Valid: false}, nil
	default:
		return nil, fmt.Errorf("validate: status %d: %w", resp.StatusCode, domain.ErrServerError)
	}

	var out ports.ValidateResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode validate response: %w", domain.ErrServerError)
	}
	return &out, nil
}

// do performs an authenticated request against an opaque resource
// endpoint and returns the raw response body.
func (c *Client) do(ctx context.Context, method, path string, payload json.RawMessage) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %v", method, path, domain.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	c.log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("api call")

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%s %s: %w", method, path, domain.ErrNotAuthenticated)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s %s: %w", method, path, domain.ErrNotFound)
	default:
		return nil, fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, domain.ErrServerError)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	return data, nil
}
