// Package metrics defines and registers all custom Prometheus metrics for the
// agency portal. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto; the /metrics endpoint exposes them next to the echo request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - role: the workspace requested ("admin" or "client")
//   - result: "ok", "invalid_credentials", "network", "in_progress" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// LoginDuration measures authenticator round-trips, including the simulated latency.
var LoginDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of login calls from submit to persisted session.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// LogoutsTotal counts logout calls, including idempotent repeats.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logout calls.",
	},
)

// SessionRestoresTotal counts provider start-up restores.
// Label:
//   - result: "restored", "absent" or "corrupt"
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of session restores from durable storage, by result.",
	},
	[]string{"result"},
)

// ActiveContexts tracks how many browser contexts have a live provider in memory.
var ActiveContexts = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_contexts",
		Help:      "Number of browser contexts with a session provider held in memory.",
	},
)

// ── Routing metrics ───────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard outcomes.
// Labels:
//   - state: "loading", "unauthenticated", "authenticated" or "public"
//   - outcome: "render", "redirect" or "wait"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by session state and outcome.",
	},
	[]string{"state", "outcome"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// SessionEventsRecordedTotal counts audit events written by the recorder.
// Labels:
//   - kind: the session event kind
//   - result: "ok" or "error"
var SessionEventsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_recorded_total",
		Help:      "Total number of session audit events recorded, by kind and result.",
	},
	[]string{"kind", "result"},
)

// SessionEventsDroppedTotal counts events dropped because a worker queue was full.
var SessionEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_dropped_total",
		Help:      "Total number of session audit events dropped on a full queue.",
	},
)

// SessionEventsQueueDepth tracks pending events in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index
var SessionEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_events_queue_depth",
		Help:      "Current number of session events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
