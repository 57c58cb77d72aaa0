// Package metrics registers the Prometheus collectors of the AI service:
// HTTP traffic, rate limiting, and per-engine counters for predictions,
// interaction checks, restock planning and backend calls.
//
// All collectors are registered with the default registry at init.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "medicore_ai"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_request_total",
			Help:      "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_request_in_flight",
			Help:      "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rate_limiter_buckets_total",
			Help:      "Rate limiter buckets (client IPs seen in the last ~5 minutes)",
		},
	)

	// PredictionsTotal counts forecasts by mode: region, aggregate or observed
	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Disease forecasts served",
		},
		[]string{"mode"},
	)

	// InteractionChecksTotal counts drug checks by mode (normalized, screen) and result (safe, unsafe)
	InteractionChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interaction_checks_total",
			Help:      "Drug interaction checks",
		},
		[]string{"mode", "result"},
	)

	RestockPlansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "restock_plans_total",
			Help:      "Restock plans built, by data source",
		},
		[]string{"source"},
	)

	RestockRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "restock_refresh_total",
			Help:      "Scheduled restock refreshes, by plan source or skipped",
		},
		[]string{"source"},
	)

	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of calls to the clinic backend",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"endpoint", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestTotals,
		HTTPRequestDuration,
		HTTPRequestInFlight,
		RateLimiterBucketsTotal,
		PredictionsTotal,
		InteractionChecksTotal,
		RestockPlansTotal,
		RestockRefreshTotal,
		BackendRequestDuration,
	)
}

// CheckResult is the result label for an interaction check
func CheckResult(safe bool) string {
	if safe {
		return "safe"
	}
	return "unsafe"
}
