// Package metrics defines and registers all custom Prometheus metrics for the
// gongu gateway. It is the single source of truth for metric names, labels,
// and help strings.
//
// All metrics are registered with the default Prometheus registry at package
// init via promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gongu"

// ── Upstream client metrics ───────────────────────────────────────────────────

// UpstreamRequestsTotal counts requests forwarded to the marketplace API.
// Labels:
//   - endpoint: the upstream path template (e.g. "/api/products")
//   - outcome: "ok", "api_error", "auth_expired", or "transport_error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests forwarded to the upstream marketplace API.",
	},
	[]string{"endpoint", "outcome"},
)

// UpstreamRequestDuration measures upstream round-trip time per endpoint,
// including any transparent refresh-and-retry.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream marketplace requests, including retries.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"endpoint"},
)

// TokenRefreshTotal counts token refresh attempts by outcome.
// Label:
//   - result: "success", "failure", or "redirect"
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of access token refresh attempts, by result.",
	},
	[]string{"result"},
)

// RefreshWaiters tracks how many requests are currently parked waiting for an
// in-flight refresh to finish. Spikes indicate bursts of expired sessions.
var RefreshWaiters = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "refresh_waiters",
		Help:      "Current number of requests waiting on an in-flight token refresh.",
	},
)

// ── Browse history metrics ────────────────────────────────────────────────────

// HistoryQueueDepth tracks the current number of product views waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var HistoryQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "history_queue_depth",
		Help:      "Current number of product views pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// HistoryRecordsTotal counts the fate of product views sent to the history
// pipeline. Label:
//   - result: "ok", "error", or "dropped" (queue full)
var HistoryRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "history_records_total",
		Help:      "Total number of product view records written, by result.",
	},
	[]string{"result"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsIssuedTotal counts newly minted browser sessions.
var SessionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of new browser session cookies issued.",
	},
)
