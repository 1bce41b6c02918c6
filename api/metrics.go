package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	discoveryQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_queries_total",
			Help: "Discovery queries served, by call site and outcome",
		},
		[]string{"call_site", "status"},
	)

	discoveryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_query_duration_seconds",
			Help:    "Time spent fetching the snapshot and evaluating a query",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"call_site"},
	)

	discoveryResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_result_size",
			Help:    "Number of events returned per query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 7),
		},
		[]string{"call_site"},
	)
)

// trackQuery records one call site query.
func trackQuery(callSite string, start time.Time, results int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	discoveryQueries.WithLabelValues(callSite, status).Inc()
	discoveryDuration.WithLabelValues(callSite).Observe(time.Since(start).Seconds())
	if err == nil {
		discoveryResults.WithLabelValues(callSite).Observe(float64(results))
	}
}
