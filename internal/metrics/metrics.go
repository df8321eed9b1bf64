// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

// Package metrics declares the Prometheus collectors exported on /metrics.
//
// Collectors are registered on the default registry through promauto at
// package initialization; callers use the Record* helpers rather than the
// vectors directly so label sets stay consistent.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Store Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_query_duration_seconds",
			Help:    "Duration of catalog store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "backend"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_query_errors_total",
			Help: "Total number of catalog store query errors",
		},
		[]string{"operation", "backend", "error_type"},
	)

	StoreUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_store_up",
			Help: "Whether the last store probe succeeded (1) or failed (0)",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Metrics
	RecommendPoolSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_pool_size",
			Help:    "Number of candidate movies matching a recommendation filter",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100, 250, 500, 1000, 5000},
		},
	)

	RecommendReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_returned_count",
			Help:    "Number of movies returned per recommendation",
			Buckets: []float64{0, 1, 2, 5, 10, 15, 20, 50},
		},
	)

	RecommendOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Recommendation requests by outcome",
		},
		[]string{"outcome"}, // "ok", "empty", "unknown_genre", "store_unavailable", "error"
	)

	// Genre Cache Metrics
	GenreCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "genre_cache_hits_total",
			Help: "Total number of genre list cache hits",
		},
	)

	GenreCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "genre_cache_misses_total",
			Help: "Total number of genre list cache misses",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Seeding Metrics
	SeedRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seed_rows_total",
			Help: "Rows written or reused by catalog seeding",
		},
		[]string{"kind"}, // "movie_inserted", "movie_reused", "genre_created", "link_created"
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and store backend",
		},
		[]string{"version", "backend"},
	)
)

// RecordDBQuery records a store query metric
func RecordDBQuery(operation, backend string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, backend).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, backend, errorType(err)).Inc()
	}
}

// errorType buckets an error into a low-cardinality label value.
func errorType(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "query"
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records the pool and result sizes of a served recommendation.
func RecordRecommendation(poolSize, returned int) {
	RecommendPoolSize.Observe(float64(poolSize))
	RecommendReturned.Observe(float64(returned))
	if returned == 0 {
		RecommendOutcomes.WithLabelValues("empty").Inc()
		return
	}
	RecommendOutcomes.WithLabelValues("ok").Inc()
}

// RecordRecommendationFailure counts a recommendation that ended in an error.
func RecordRecommendationFailure(outcome string) {
	RecommendOutcomes.WithLabelValues(outcome).Inc()
}

// RecordGenreCache records a genre list cache lookup.
func RecordGenreCache(hit bool) {
	if hit {
		GenreCacheHits.Inc()
	} else {
		GenreCacheMisses.Inc()
	}
}

// SetStoreUp publishes the result of a store probe.
func SetStoreUp(up bool) {
	if up {
		StoreUp.Set(1)
	} else {
		StoreUp.Set(0)
	}
}

// RecordSeed adds n to a seeding row counter.
func RecordSeed(kind string, n int) {
	if n > 0 {
		SeedRows.WithLabelValues(kind).Add(float64(n))
	}
}
