// Package metrics defines and registers all custom Prometheus metrics for the
// dealership service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialization; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dealership"

// ── Pipeline metrics ──────────────────────────────────────────────────────────

// PipelineRunsTotal counts finished mutation pipeline runs.
// Labels:
//   - operation: the write being performed (e.g. "register", "add_inventory")
//   - outcome: "succeeded", "failed" or "rejected"
var PipelineRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pipeline_runs_total",
		Help:      "Total number of mutation pipeline runs, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// PipelineDuration measures a pipeline run from bind to response.
// Label:
//   - operation: the write being performed
var PipelineDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pipeline_duration_seconds",
		Help:      "Duration of mutation pipeline runs.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ValidationFailuresTotal counts rejected form fields.
// Labels:
//   - operation: the write being performed
//   - field: the form field name (e.g. "account_email")
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of field validation failures, by operation and field.",
	},
	[]string{"operation", "field"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// AuthorizationDenialsTotal counts requests stopped by an authorization gate.
// Label:
//   - policy: "authenticated", "role" or "owner"
var AuthorizationDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_denials_total",
		Help:      "Total number of requests denied by an authorization gate.",
	},
	[]string{"policy"},
)

// RevocationChecksTotal counts session revocation lookups.
// Label:
//   - result: "hit" (revoked token), "miss" or "error" (store unreachable, token accepted)
var RevocationChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "revocation_checks_total",
		Help:      "Total number of session revocation checks, labelled by result.",
	},
	[]string{"result"},
)

// SessionsRevokedTotal counts tokens put on the revocation list.
// Label:
//   - reason: "logout", "reissued" or "account_deleted"
var SessionsRevokedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of session tokens revoked before expiry.",
	},
	[]string{"reason"},
)
