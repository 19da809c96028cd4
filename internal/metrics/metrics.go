// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

// Package metrics defines the Prometheus instrumentation for Basketminer:
// mining runs, model training, recommendations, the result cache, the dataset
// circuit breaker, DuckDB queries and the HTTP API. Metrics are registered on
// the default registry and exposed at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Mining Metrics
	MiningDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "basketminer_mining_duration_seconds",
			Help:    "Duration of Apriori mining runs in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"trigger"}, // "train", "adhoc"
	)

	MiningRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basketminer_mining_runs_total",
			Help: "Total number of mining runs by outcome",
		},
		[]string{"trigger", "outcome"}, // outcome: "success", "invalid", "cancelled", "error"
	)

	MiningTransactions = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "basketminer_mining_transactions",
			Help:    "Number of transactions per mining run",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8), // 10 .. ~164k
		},
	)

	FrequentItemsets = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "basketminer_frequent_itemsets",
			Help: "Frequent itemsets in the current model",
		},
		[]string{"segment"},
	)

	AssociationRules = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "basketminer_association_rules",
			Help: "Association rules in the current model",
		},
		[]string{"segment"},
	)

	// Model Metrics
	ModelVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "basketminer_model_version",
			Help: "Version of the currently served model",
		},
	)

	ModelLastTrained = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "basketminer_model_last_trained_timestamp",
			Help: "Unix timestamp of the last successful training run",
		},
	)

	TrainingTriggers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basketminer_training_triggers_total",
			Help: "On-demand training triggers by result",
		},
		[]string{"result"}, // "accepted", "coalesced", "throttled"
	)

	// Recommendation Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basketminer_recommendation_requests_total",
			Help: "Total recommendation requests by outcome",
		},
		[]string{"outcome"}, // "hit", "empty", "no_model"
	)

	RecommendationLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "basketminer_recommendation_duration_seconds",
			Help:    "Recommendation scoring latency in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basketminer_cache_hits_total",
			Help: "Result cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basketminer_cache_misses_total",
			Help: "Result cache misses",
		},
		[]string{"cache"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "basketminer_cache_entries",
			Help: "Entries currently held by the result cache",
		},
		[]string{"cache"},
	)

	// Dataset Metrics
	DatasetLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "basketminer_dataset_load_duration_seconds",
			Help:    "Duration of dataset loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	DatasetLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basketminer_dataset_load_errors_total",
			Help: "Dataset load failures",
		},
		[]string{"source", "error_type"},
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

	// API Metrics
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
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently in flight",
		},
	)
)

// RecordMiningRun records the duration and outcome of a mining run.
func RecordMiningRun(trigger, outcome string, transactions int, duration time.Duration) {
	MiningRuns.WithLabelValues(trigger, outcome).Inc()
	if outcome != "success" {
		return
	}
	MiningDuration.WithLabelValues(trigger).Observe(duration.Seconds())
	MiningTransactions.Observe(float64(transactions))
}

// RecordModel publishes the size of a freshly trained model.
func RecordModel(segment string, itemsets, rules int) {
	FrequentItemsets.WithLabelValues(segment).Set(float64(itemsets))
	AssociationRules.WithLabelValues(segment).Set(float64(rules))
}

// RecordModelVersion publishes the served model version and training time.
func RecordModelVersion(version int64, trainedAt time.Time) {
	ModelVersion.Set(float64(version))
	ModelLastTrained.Set(float64(trainedAt.Unix()))
}

// RecordRecommendation records one recommendation request.
func RecordRecommendation(outcome string, duration time.Duration) {
	RecommendationRequests.WithLabelValues(outcome).Inc()
	RecommendationLatency.Observe(duration.Seconds())
}

// RecordCacheLookup records a hit or miss on the named cache.
func RecordCacheLookup(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
		return
	}
	CacheMisses.WithLabelValues(cache).Inc()
}

// RecordDatasetLoad records a dataset load. Error labels are truncated to
// keep cardinality bounded.
func RecordDatasetLoad(source string, duration time.Duration, err error) {
	DatasetLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DatasetLoadErrors.WithLabelValues(source, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
