// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "olistrec"

var (
	// Index Metrics
	FitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fit_duration_seconds",
			Help:      "Time spent building a recommendation index",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	IndexRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_records",
			Help:      "Rows held by the last fitted index",
		},
		[]string{"scope"}, // "total", "in_window"
	)

	IndexCustomers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_customers",
			Help:      "Distinct customers in the last fitted index",
		},
	)

	IndexProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_products",
			Help:      "Distinct products in the last fitted index",
		},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Recommendation lists served, by strategy label",
		},
		[]string{"strategy"},
	)

	RecommendedProducts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommended_products",
			Help:      "Number of products returned per request",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20, 50, 100},
		},
	)

	RecommendationCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendation_cache_total",
			Help:      "Recommendation list cache lookups",
		},
		[]string{"result"}, // "hit", "miss"
	)

	// Evaluation Metrics
	EvaluationPrecision = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "evaluation_precision",
			Help:      "Precision@k of the last evaluation run",
		},
		[]string{"window_days", "segment"},
	)

	EvaluationCustomers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "evaluation_customers",
			Help:      "Customers evaluated in the last run",
		},
		[]string{"window_days", "segment"},
	)

	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being served",
		},
	)
)

// Segment labels for evaluation metrics.
const (
	SegmentNew       = "new"
	SegmentReturning = "returning"
)

// RecordFit records an index build.
func RecordFit(duration time.Duration, records, inWindow, customers, products int) {
	FitDuration.Observe(duration.Seconds())
	IndexRecords.WithLabelValues("total").Set(float64(records))
	IndexRecords.WithLabelValues("in_window").Set(float64(inWindow))
	IndexCustomers.Set(float64(customers))
	IndexProducts.Set(float64(products))
}

// RecordRecommendation records one served list.
func RecordRecommendation(strategy string, returned int) {
	RecommendationsTotal.WithLabelValues(strategy).Inc()
	RecommendedProducts.Observe(float64(returned))
}

// RecordCacheLookup records a recommendation cache lookup.
func RecordCacheLookup(hit bool) {
	if hit {
		RecommendationCacheTotal.WithLabelValues("hit").Inc()
		return
	}
	RecommendationCacheTotal.WithLabelValues("miss").Inc()
}

// RecordEvaluation records the outcome of one segment of an evaluation run.
func RecordEvaluation(windowDays int, segment string, precision float64, customers int) {
	window := strconv.Itoa(windowDays)
	EvaluationPrecision.WithLabelValues(window, segment).Set(precision)
	EvaluationCustomers.WithLabelValues(window, segment).Set(float64(customers))
}

// RecordHTTPRequest records a served HTTP request.
func RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackInFlight adjusts the in-flight request gauge.
func TrackInFlight(inc bool) {
	if inc {
		HTTPRequestsInFlight.Inc()
	} else {
		HTTPRequestsInFlight.Dec()
	}
}

// WriteTextfile writes every metric of the default gatherer to path in the
// textfile collector format. The file is written atomically.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
