package api

import (
	"net/http"

	"github.com/arianatravel/backoffice/internal/core/ports"
)

// bearerTransport attaches the stored bearer token to outbound requests.
// It reads the store on every round trip, so Save/Clear take effect on
// the next request with no extra synchronisation: once the store is
// cleared, requests carry no Authorization header at all.
type bearerTransport struct {
	store ports.SessionStore
	next  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Authorization") == "" {
		cred, _, err := t.store.Load(req.Context())
		if err == nil && cred != nil {
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+cred.Token)
		}
	}
	return t.next.RoundTrip(req)
}
