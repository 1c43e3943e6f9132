// Package metrics defines all custom Prometheus metrics for the skillshare
// API. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "skillshare"

// ApplicationsTotal counts applications recorded on offers.
var ApplicationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_total",
		Help:      "Total number of applications recorded on offers.",
	},
)

// WithdrawalsTotal counts applications withdrawn by their applicant.
var WithdrawalsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "withdrawals_total",
		Help:      "Total number of applications withdrawn.",
	},
)

// DecisionsTotal counts owner adjudications.
// Label:
//   - outcome: "accepted" or "rejected"
var DecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "decisions_total",
		Help:      "Total number of adjudicated applications, by outcome.",
	},
	[]string{"outcome"},
)

// RemovalsTotal counts participants evicted from offers.
var RemovalsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "removals_total",
		Help:      "Total number of participants removed from offers.",
	},
)

// MatchingErrorsTotal counts rejected matching operations.
// Labels:
//   - operation: "apply", "withdraw", "decide", "remove"
//   - reason: short rule name (e.g. "capacity_reached", "conflict")
var MatchingErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "matching_errors_total",
		Help:      "Total number of matching operations rejected, by operation and reason.",
	},
	[]string{"operation", "reason"},
)

// MatchingDuration measures how long a matching operation takes end-to-end,
// including lock wait and conflict retries.
// Label:
//   - operation: "apply", "withdraw", "decide", "remove"
var MatchingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "matching_duration_seconds",
		Help:      "Duration of matching operations from handler entry to persistence.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation"},
)
