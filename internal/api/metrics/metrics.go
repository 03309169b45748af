// Package metrics defines and registers all custom Prometheus metrics for the
// admin console. It is the single source of truth for metric names, labels,
// and help strings; registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Upstream API metrics ──────────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls to the platform API.
// Labels:
//   - resource: logical resource ("users", "books", "chapters", "plans", "auth")
//   - outcome: "success", "fault" (upstream-reported failure), "malformed"
//     (unrecognized 2xx shape), or "unreachable" (no response at all)
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of upstream API requests, by resource and outcome.",
	},
	[]string{"resource", "outcome"},
)

// UpstreamRequestDuration measures upstream round-trip time per resource.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream API requests that received a response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"resource"},
)

// AggregationPages tracks how many pages a fetch-all directory aggregation
// needed. Sustained growth here means the page cap is about to bite.
var AggregationPages = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "aggregation_pages",
		Help:      "Pages fetched per directory aggregation loop.",
		Buckets:   []float64{1, 2, 3, 5, 10, 25, 50},
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid", "throttled", "upstream_error", "bootstrap"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of console login attempts, by result.",
	},
	[]string{"result"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditWriteFailures counts audit entries that could not be persisted.
// Audit writes are best-effort; this counter is the only trace of a loss.
var AuditWriteFailures = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_failures_total",
		Help:      "Total number of audit entries dropped due to persistence errors.",
	},
)
