// Package metrics defines and registers all custom Prometheus metrics for
// the TeamOps API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// import time via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "teamops"

// AuthAttemptsTotal counts login and registration attempts.
// Labels:
//   - operation: "login" or "register"
//   - outcome: "success", "invalid_credentials", "duplicate_subject", "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// TokensIssuedTotal counts signed tokens handed out.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of tokens issued on register and login.",
	},
)

// TokenRejectionsTotal counts bearer tokens the identity resolver refused.
// Label:
//   - reason: "expired", "signature_invalid", "malformed"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of presented tokens that failed verification, by reason.",
	},
	[]string{"reason"},
)

// ProjectsCreatedTotal counts created projects.
var ProjectsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created.",
	},
)

// TasksCreatedTotal counts created tasks by initial status.
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by initial status.",
	},
	[]string{"status"},
)

// ProjectCacheTotal counts project list cache lookups.
// Label:
//   - result: "hit" or "miss"
var ProjectCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "project_cache_total",
		Help:      "Total number of project list cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
