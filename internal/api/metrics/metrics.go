// Package metrics defines the custom Prometheus metrics for the enrollment
// API. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "enrollment"

// SignupsTotal counts successful registrations by role.
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_signups_total",
		Help:      "Total number of successful signups, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "inactive", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRejectionsTotal counts bearer tokens rejected by the identity
// resolver or the refresh flow.
// Label:
//   - reason: "malformed", "signature", "expired", "wrong_type",
//     "bad_subject", "user_not_found", "inactive"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_token_rejections_total",
		Help:      "Total number of rejected bearer tokens, by reason.",
	},
	[]string{"reason"},
)

// RoleDenialsTotal counts requests that authenticated but failed the role
// gate.
var RoleDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_role_denials_total",
		Help:      "Total number of authenticated requests denied by the role gate.",
	},
	[]string{"required_role"},
)
