package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bkgo_search_requests_total",
		Help: "Number of search requests handled, by engine.",
	}, []string{"engine"})

	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bkgo_search_duration_seconds",
		Help:    "Search latency, by engine.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
	}, []string{"engine"})

	termsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bkgo_terms_loaded",
		Help: "Number of terms in the in-memory index.",
	})
)
