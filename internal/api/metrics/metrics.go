// Package metrics defines and registers the custom Prometheus metrics of the
// counselor dashboard. It is the single source of truth for metric names,
// labels, and help strings.
//
// All metrics are registered with the default Prometheus registry at package
// init through promauto, so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "counselor_dashboard"

// ── Reload metrics ────────────────────────────────────────────────────────────

// ReloadsTotal counts reload cycles.
// Labels:
//   - trigger: "timer", "user", "mutation" or "startup"
//   - result: "ok", "fetch_failed", "skipped" or "stale"
var ReloadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reloads_total",
		Help:      "Total number of dashboard reload cycles, by trigger and result.",
	},
	[]string{"trigger", "result"},
)

// ReloadDuration measures a full fetch + render cycle.
var ReloadDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "reload_duration_seconds",
		Help:      "Duration of a dashboard reload from fetch start to snapshot swap.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"trigger"},
)

// FetchFailuresTotal counts failed upstream reads.
// Label:
//   - resource: "counselors", "students" or "messages"
var FetchFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_failures_total",
		Help:      "Total number of failed SIS collection reads.",
	},
	[]string{"resource"},
)

// SynthesizedCounselors is the number of counselors inferred from messages in
// the last successful fetch.
var SynthesizedCounselors = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "synthesized_counselors",
		Help:      "Counselors referenced by messages but missing from the counselor endpoint.",
	},
)

// ActiveCrises is the number of crisis messages in the current snapshot.
var ActiveCrises = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_crises",
		Help:      "Crisis-urgency messages in the current dashboard snapshot.",
	},
)

// ── Mutation metrics ──────────────────────────────────────────────────────────

// MutationsTotal counts admin actions.
// Labels:
//   - action: e.g. "add_counselor", "remove_counselor", "mark_reviewed"
//   - result: "ok", "invalid", "rejected", "network_error", "duplicate", "unconfirmed"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of admin actions, by action and result.",
	},
	[]string{"action", "result"},
)

// AuditRecordsTotal counts appended audit records.
// Label:
//   - result: "ok" or "error"
var AuditRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_records_total",
		Help:      "Total number of audit records appended.",
	},
	[]string{"result"},
)

// AuditPublishErrorsTotal counts audit records the stream sink failed to publish.
var AuditPublishErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_publish_errors_total",
		Help:      "Total number of audit records that could not be published to the stream.",
	},
)
