// Package metrics declares the Prometheus collectors of the web client.
// All collectors live in the default registry and are exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracer_web"

// BackendRequestsTotal counts calls to the backend API.
// Labels:
//   - operation: client operation name, e.g. "list_reports"
//   - status: HTTP status code, or "0" when no response arrived
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of backend API calls, by operation and status.",
	},
	[]string{"operation", "status"},
)

// BackendRequestDuration measures backend call latency.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Latency of backend API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// PageRequestsTotal counts rendered pages by route template and status.
var PageRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "page_requests_total",
		Help:      "Total number of page requests served, by route and status.",
	},
	[]string{"route", "status"},
)

// SessionEventsTotal counts session transitions.
// Label:
//   - event: "login", "logout", "expired" or "corrupt"
var SessionEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Total number of session transitions.",
	},
	[]string{"event"},
)

// UploadRejectionsTotal counts files refused by the upload validator.
var UploadRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upload_rejections_total",
		Help:      "Total number of uploaded files rejected before submission.",
	},
	[]string{"reason"},
)

// ObserveBackend records one finished backend call.
func ObserveBackend(operation string, status int, took time.Duration) {
	BackendRequestsTotal.WithLabelValues(operation, strconv.Itoa(status)).Inc()
	BackendRequestDuration.WithLabelValues(operation).Observe(took.Seconds())
}
