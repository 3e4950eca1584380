// Package metrics defines and registers all custom Prometheus metrics for the
// bone health analysis API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry via promauto at
// package load; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bonehealth"

// ── Analysis metrics ──────────────────────────────────────────────────────────

// AnalysesTotal counts successfully completed image analyses.
// Label:
//   - task: the analysis task identifier (e.g. "bone_fracture")
var AnalysesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Total number of image analyses completed successfully, by task.",
	},
	[]string{"task"},
)

// ── Chat metrics ──────────────────────────────────────────────────────────────

// ChatTurnsTotal counts chat turns by how the pre-filter classified them.
// Label:
//   - classification: "greeting", "appreciation", "irrelevant", "follow_up", or "no_context"
var ChatTurnsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_turns_total",
		Help:      "Total number of chat turns, labelled by pre-filter classification.",
	},
	[]string{"classification"},
)

// ── Model client metrics ──────────────────────────────────────────────────────

// ModelCallsTotal counts calls into the external generative model.
// Labels:
//   - kind: "analysis" or "follow_up"
//   - outcome: "ok" or "error"
var ModelCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "model_calls_total",
		Help:      "Total number of external model calls, by kind and outcome.",
	},
	[]string{"kind", "outcome"},
)

// ModelCallDuration measures how long a single model call takes end-to-end.
// Label:
//   - kind: "analysis" or "follow_up"
var ModelCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "model_call_duration_seconds",
		Help:      "Duration of external model calls from request to response.",
		Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 20, 30, 60},
	},
	[]string{"kind"},
)
