// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PassIssuance counts issuance attempts by category and outcome
	// (issued, quota_exceeded, duplicate, event_not_found, error).
	PassIssuance = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "passes_issuance_total",
			Help: "Pass issuance attempts by category and outcome",
		},
		[]string{"category", "outcome"},
	)

	// Dispatches counts pass deliveries by mode (single, batch) and outcome.
	Dispatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "passes_dispatch_total",
			Help: "Pass deliveries by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	RenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "passes_render_duration_seconds",
			Help:    "Time spent rendering a pass card",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "passes_http_requests_total",
			Help: "HTTP requests by method and status code",
		},
		[]string{"method", "code"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "passes_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request counts and latency.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		httpRequests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
