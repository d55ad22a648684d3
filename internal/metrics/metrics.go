// Package metrics defines and registers all custom Prometheus metrics for
// the back-office client. It is the single source of truth for metric
// names, labels, and help strings; metrics register with the default
// registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

// SessionValidationsTotal counts validation passes by outcome.
// Labels:
//   - verdict: "authenticated" or "unauthenticated"
//   - reason: why the verdict was reached (e.g. "confirmed", "fail_open",
//     "no_session", "expired", "rejected", "role_mismatch", "server_error")
var SessionValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_validations_total",
		Help:      "Total number of session validation passes, by verdict and reason.",
	},
	[]string{"verdict", "reason"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - outcome: "success", "invalid_credentials", "server_error", "unreachable"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SessionFailOpenTotal counts validations that kept a cached session alive
// because the server could not be reached. A sustained increase usually
// means the API is down while admins keep working from cache.
var SessionFailOpenTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_fail_open_total",
		Help:      "Total number of validations that fell back to the cached session on network failure.",
	},
)
