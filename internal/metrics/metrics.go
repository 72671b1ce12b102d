// Package metrics defines and registers the Prometheus collectors of the
// marketplace client. It is the single source of truth for metric names,
// labels, and help strings.
//
// Collectors register with the default registry on package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sachcu_client"

// ── Request metrics ───────────────────────────────────────────────────────────

// RequestsTotal counts dispatched requests by outcome.
// Labels:
//   - method: HTTP method (e.g. "GET")
//   - role: credential slot used ("user", "admin", "none")
//   - outcome: "ok", "unauthorized", "request_failed", "network" or "parse"
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of API requests dispatched, by outcome.",
	},
	[]string{"method", "role", "outcome"},
)

// RequestDuration measures wall time from dispatch to normalized result.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of API requests from dispatch to normalized response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "role"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionOperationsTotal counts credential slot mutations.
// Labels:
//   - role: "user" or "admin"
//   - op: "store" or "clear"
var SessionOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_operations_total",
		Help:      "Total number of credential store/clear operations.",
	},
	[]string{"role", "op"},
)

// ── Moderation metrics ────────────────────────────────────────────────────────

// ModerationQueueDepth tracks tasks waiting in each moderation worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ModerationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "moderation_queue_depth",
		Help:      "Current number of moderation tasks pending per worker.",
	},
	[]string{"worker_id"},
)

// ModerationTasksTotal counts processed moderation tasks.
// Label:
//   - result: "ok" or "error"
var ModerationTasksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_tasks_total",
		Help:      "Total number of bulk moderation tasks processed, by result.",
	},
	[]string{"result"},
)
