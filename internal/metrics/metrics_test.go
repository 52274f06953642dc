// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordFit(t *testing.T) {
	RecordFit(120*time.Millisecond, 1000, 250, 80, 40)

	if got := testutil.ToFloat64(IndexRecords.WithLabelValues("total")); got != 1000 {
		t.Errorf("index_records{total} = %v, want 1000", got)
	}
	if got := testutil.ToFloat64(IndexRecords.WithLabelValues("in_window")); got != 250 {
		t.Errorf("index_records{in_window} = %v, want 250", got)
	}
	if got := testutil.ToFloat64(IndexCustomers); got != 80 {
		t.Errorf("index_customers = %v, want 80", got)
	}
	if got := testutil.ToFloat64(IndexProducts); got != 40 {
		t.Errorf("index_products = %v, want 40", got)
	}

	// A later fit replaces the gauges.
	RecordFit(time.Millisecond, 10, 0, 3, 2)
	if got := testutil.ToFloat64(IndexRecords.WithLabelValues("in_window")); got != 0 {
		t.Errorf("index_records{in_window} = %v, want 0", got)
	}
}

func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		strategy string
		returned int
	}{
		{"collaborative", 5},
		{"collaborative_regional", 5},
		{"regional_global", 3},
		{"no_recommendations", 0},
	}

	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			counter := RecommendationsTotal.WithLabelValues(tt.strategy)
			before := testutil.ToFloat64(counter)
			RecordRecommendation(tt.strategy, tt.returned)
			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("recommendations_total{%s} delta = %v, want 1", tt.strategy, got)
			}
		})
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := RecommendationCacheTotal.WithLabelValues("hit")
	misses := RecommendationCacheTotal.WithLabelValues("miss")
	beforeHits, beforeMisses := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheLookup(false)

	if got := testutil.ToFloat64(hits) - beforeHits; got != 1 {
		t.Errorf("hit delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(misses) - beforeMisses; got != 2 {
		t.Errorf("miss delta = %v, want 2", got)
	}
}

func TestRecordEvaluation(t *testing.T) {
	RecordEvaluation(30, SegmentNew, 0.125, 400)
	RecordEvaluation(30, SegmentReturning, 0.5, 12)
	RecordEvaluation(60, SegmentNew, 0.25, 400)

	tests := []struct {
		window, segment string
		precision       float64
		customers       float64
	}{
		{"30", SegmentNew, 0.125, 400},
		{"30", SegmentReturning, 0.5, 12},
		{"60", SegmentNew, 0.25, 400},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(EvaluationPrecision.WithLabelValues(tt.window, tt.segment)); got != tt.precision {
			t.Errorf("precision{%s,%s} = %v, want %v", tt.window, tt.segment, got, tt.precision)
		}
		if got := testutil.ToFloat64(EvaluationCustomers.WithLabelValues(tt.window, tt.segment)); got != tt.customers {
			t.Errorf("customers{%s,%s} = %v, want %v", tt.window, tt.segment, got, tt.customers)
		}
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	counter := HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/health", "200")
	before := testutil.ToFloat64(counter)

	RecordHTTPRequest("GET", "/api/v1/health", 200, 3*time.Millisecond)
	RecordHTTPRequest("GET", "/api/v1/health", 200, 4*time.Millisecond)

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("http_requests_total delta = %v, want 2", got)
	}
	if n := testutil.CollectAndCount(HTTPRequestDuration); n == 0 {
		t.Error("http_request_duration_seconds has no series")
	}
}

func TestTrackInFlight(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsInFlight)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackInFlight(true)
			TrackInFlight(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(HTTPRequestsInFlight); got != before {
		t.Errorf("http_requests_in_flight = %v, want %v", got, before)
	}
}

func TestWriteTextfile(t *testing.T) {
	RecordEvaluation(90, SegmentNew, 0.75, 8)
	path := filepath.Join(t.TempDir(), "olistrec.prom")

	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `olistrec_evaluation_precision{segment="new",window_days="90"} 0.75`) {
		t.Errorf("textfile missing precision series:\n%s", data)
	}

	if err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom")); err == nil {
		t.Error("WriteTextfile() into a missing directory should fail")
	}
}
