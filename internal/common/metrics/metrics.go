// internal/common/metrics/metrics.go
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_queries_total",
			Help: "Total number of queries resolved, by service and intent",
		},
		[]string{"service", "intent"},
	)

	QueriesFallback = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_fallback_total",
			Help: "Total number of queries that matched no intent",
		},
		[]string{"service"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "advisor_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "advisor_sop_sessions_active",
			Help: "Number of SOP drafting sessions held by the in-process store",
		},
	)

	GenerationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_generation_requests_total",
			Help: "Total number of text generation calls, by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	StoreQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_store_queries_total",
			Help: "Total number of document store queries, by backend and outcome",
		},
		[]string{"backend", "outcome"},
	)
)

// ObserveQuery counts one resolved query.
func ObserveQuery(service, intent string, fallback bool) {
	QueriesResolved.WithLabelValues(service, intent).Inc()
	if fallback {
		QueriesFallback.WithLabelValues(service).Inc()
	}
}

// ObserveHTTP records the duration of one request.
func ObserveHTTP(route, method string, status int, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(d.Seconds())
}

// Outcome maps an error to the "ok"/"error" label value.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
