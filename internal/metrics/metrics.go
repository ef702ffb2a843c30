// Package metrics provides Prometheus instrumentation for the API. Request
// counters are labeled by dispatcher route so the Lambda entrypoint and the
// local server report the same series.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts dispatched requests by route and status code
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "freshsilver_requests_total",
		Help: "Total number of dispatched requests",
	}, []string{"route", "status"})

	// RequestLatency records dispatch latency in seconds
	RequestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "freshsilver_request_latency_seconds",
		Help:    "Request dispatch latency in seconds",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"route"})

	// StorageFailures counts requests that failed in the store
	StorageFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "freshsilver_storage_failures_total",
		Help: "Total number of requests answered with a storage failure",
	}, []string{"route"})
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestLatency,
		StorageFailures,
	)
}

// ObserveRequest records one dispatched request
func ObserveRequest(route string, status int, latency time.Duration) {
	RequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	RequestLatency.WithLabelValues(route).Observe(latency.Seconds())
	if status >= 500 {
		StorageFailures.WithLabelValues(route).Inc()
	}
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
