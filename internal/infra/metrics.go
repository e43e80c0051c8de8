package infra

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "ims"

var (
	// HTTPRequestDuration is labelled by the gin route template, not the raw
	// path, so product ids do not explode cardinality.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	// BorrowingOps counts borrow/return attempts by outcome
	// (ok | not_found | insufficient_stock | already_returned | error).
	BorrowingOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "borrowing",
			Name:      "operations_total",
			Help:      "Borrow and return transactions by outcome.",
		},
		[]string{"op", "outcome"},
	)

	AlertJobs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "alerts",
			Name:      "jobs_total",
			Help:      "Low stock alert jobs by status (enqueued | sent | retried | dead).",
		},
		[]string{"status"},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Analytics cache lookups by result (hit | miss).",
		},
		[]string{"result"},
	)
)

// Registry holds the runtime collectors and every metric above.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequestDuration,
		HTTPRequestsTotal,
		BorrowingOps,
		AlertJobs,
		CacheLookups,
	)
}

// MetricsHandler exposes Registry in the Prometheus text format.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
