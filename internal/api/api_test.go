// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package api

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/olistrec/internal/dataset"
	"github.com/tomtom215/olistrec/internal/models"
	"github.com/tomtom215/olistrec/internal/recommend"
)

type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func day(d int) time.Time {
	return time.Date(2018, time.January, d, 0, 0, 0, 0, time.UTC)
}

// fixture: SP has 4 rows, RJ has 3, so unknown customers resolve to SP.
func fixtureRecords() []recommend.Purchase {
	buy := func(c, region, p string, d int) recommend.Purchase {
		return recommend.Purchase{CustomerID: c, Region: region, ProductID: p, PurchaseDate: day(d)}
	}
	return []recommend.Purchase{
		buy("c1", "SP", "p1", 1),
		buy("c1", "SP", "p2", 2),
		buy("c2", "SP", "p1", 3),
		buy("c2", "SP", "p3", 4),
		buy("c3", "RJ", "p4", 5),
		buy("c3", "RJ", "p4", 6),
		buy("c4", "RJ", "p5", 7),
	}
}

func newTestServer(t *testing.T, fit bool) http.Handler {
	t.Helper()
	engine, err := recommend.NewHybrid(recommend.DefaultConfig().WithWindow(30), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHybrid() error = %v", err)
	}
	records := fixtureRecords()
	if fit {
		engine.Fit(records, day(10))
	}
	h := NewHandler(engine, dataset.NewRegionIndex(records), HandlerConfig{DefaultK: 5, MaxK: 100, Version: "test"})
	return NewRouter(h, RouterConfig{MetricsEnabled: true})
}

func doGet(t *testing.T, srv http.Handler, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s: %v\n%s", target, err, rec.Body.String())
		}
	}
	return rec, env
}

func TestGetRecommendations(t *testing.T) {
	srv := newTestServer(t, true)

	tests := []struct {
		name   string
		target string
		want   models.Recommendation
	}{
		{
			name:   "returning customer with resolved region",
			target: "/api/v1/recommendations/c1?k=2",
			want: models.Recommendation{
				CustomerID: "c1", Region: "SP", RegionResolved: true, KnownCustomer: true,
				K: 2, Strategy: "collaborative_regional", Products: []string{"p3", "p1"},
			},
		},
		{
			name:   "unknown customer falls back to most frequent region",
			target: "/api/v1/recommendations/nobody?k=3",
			want: models.Recommendation{
				CustomerID: "nobody", Region: "SP", RegionResolved: true,
				K: 3, Strategy: "regional", Products: []string{"p1", "p2", "p3"},
			},
		},
		{
			name:   "explicit region fills from global",
			target: "/api/v1/recommendations/nobody?k=3&region=RJ",
			want: models.Recommendation{
				CustomerID: "nobody", Region: "RJ",
				K: 3, Strategy: "regional_global", Products: []string{"p4", "p5", "p1"},
			},
		},
		{
			name:   "default k without neighbours",
			target: "/api/v1/recommendations/c4",
			want: models.Recommendation{
				CustomerID: "c4", Region: "RJ", RegionResolved: true, KnownCustomer: true,
				K: 5, Strategy: "regional_global", Products: []string{"p4", "p5", "p1", "p2", "p3"},
			},
		},
		{
			name:   "unknown region uses global only",
			target: "/api/v1/recommendations/nobody?k=2&region=XX",
			want: models.Recommendation{
				CustomerID: "nobody", Region: "XX",
				K: 2, Strategy: "global", Products: []string{"p1", "p4"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doGet(t, srv, tt.target)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
			}
			if env.Status != models.StatusSuccess {
				t.Errorf("status field = %q", env.Status)
			}
			var got models.Recommendation
			if err := json.Unmarshal(env.Data, &got); err != nil {
				t.Fatalf("decode data: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got  %+v\nwant %+v", got, tt.want)
			}
			if env.Metadata.RequestID == "" || env.Metadata.RequestID != rec.Header().Get("X-Request-ID") {
				t.Errorf("metadata request id %q does not match header %q", env.Metadata.RequestID, rec.Header().Get("X-Request-ID"))
			}
		})
	}
}

func TestGetRecommendations_InvalidK(t *testing.T) {
	srv := newTestServer(t, true)

	tests := []struct {
		target   string
		wantCode string
	}{
		{"/api/v1/recommendations/c1?k=0", "VALIDATION_ERROR"},
		{"/api/v1/recommendations/c1?k=-3", "VALIDATION_ERROR"},
		{"/api/v1/recommendations/c1?k=101", "VALIDATION_ERROR"},
		{"/api/v1/recommendations/c1?k=abc", "INVALID_PARAMETER"},
		{"/api/v1/recommendations/c1?k=2.5", "INVALID_PARAMETER"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec, env := doGet(t, srv, tt.target)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if env.Status != models.StatusError || env.Error == nil {
				t.Fatalf("envelope = %+v, want error", env)
			}
			if env.Error.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", env.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestGetRecommendations_Unfitted(t *testing.T) {
	srv := newTestServer(t, false)

	rec, env := doGet(t, srv, "/api/v1/recommendations/c1?k=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got models.Recommendation
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Strategy != recommend.StrategyNone || len(got.Products) != 0 {
		t.Errorf("got %+v, want empty no_recommendations", got)
	}
	if got.Products == nil {
		t.Error("products should encode as [] not null")
	}
}

func TestHealth(t *testing.T) {
	t.Run("fitted", func(t *testing.T) {
		srv := newTestServer(t, true)
		// One request so the served counter moves.
		doGet(t, srv, "/api/v1/recommendations/c1?k=1")

		for _, target := range []string{"/api/v1/health", "/api/v1/health/ready"} {
			rec, env := doGet(t, srv, target)
			if rec.Code != http.StatusOK {
				t.Fatalf("%s status = %d, want 200", target, rec.Code)
			}
			var health models.HealthStatus
			if err := json.Unmarshal(env.Data, &health); err != nil {
				t.Fatal(err)
			}
			if health.Status != "healthy" || !health.Index.Fitted {
				t.Errorf("%s health = %+v", target, health)
			}
			if health.Index.Records != 7 || health.Index.Customers != 4 || health.Index.Regions != 2 {
				t.Errorf("%s index = %+v", target, health.Index)
			}
			if health.Fits != 1 || health.Served != 1 {
				t.Errorf("%s fits=%d served=%d, want 1 and 1", target, health.Fits, health.Served)
			}
			if health.Version != "test" {
				t.Errorf("%s version = %q", target, health.Version)
			}
		}
	})

	t.Run("not fitted", func(t *testing.T) {
		srv := newTestServer(t, false)

		rec, env := doGet(t, srv, "/api/v1/health")
		if rec.Code != http.StatusOK {
			t.Fatalf("health status = %d, want 200", rec.Code)
		}
		var health models.HealthStatus
		if err := json.Unmarshal(env.Data, &health); err != nil {
			t.Fatal(err)
		}
		if health.Status != "not_ready" {
			t.Errorf("Status = %q, want not_ready", health.Status)
		}

		rec, env = doGet(t, srv, "/api/v1/health/ready")
		if rec.Code != http.StatusServiceUnavailable || env.Error == nil || env.Error.Code != "NOT_READY" {
			t.Errorf("ready = %d %+v, want 503 NOT_READY", rec.Code, env.Error)
		}
	})

	t.Run("live", func(t *testing.T) {
		rec, _ := doGet(t, newTestServer(t, false), "/api/v1/health/live")
		if rec.Code != http.StatusOK {
			t.Errorf("live status = %d, want 200", rec.Code)
		}
	})
}

func TestRouter_NotFoundAndMethods(t *testing.T) {
	srv := newTestServer(t, true)

	rec, env := doGet(t, srv, "/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Errorf("error = %+v, want NOT_FOUND", env.Error)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/health/live", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want 405", rec.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	srv := newTestServer(t, true)
	doGet(t, srv, "/api/v1/recommendations/c1?k=2")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`olistrec_recommendations_total{strategy="collaborative_regional"}`,
		`olistrec_http_requests_total{method="GET",route="/api/v1/recommendations/{customerID}",status_code="200"}`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
}

func TestRouter_MetricsDisabled(t *testing.T) {
	engine, err := recommend.NewHybrid(nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	srv := NewRouter(NewHandler(engine, nil, HandlerConfig{}), RouterConfig{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestNewHandler_Defaults(t *testing.T) {
	h := NewHandler(nil, nil, HandlerConfig{})
	if h.config.DefaultK != 5 || h.config.MaxK != 100 {
		t.Errorf("config = %+v, want DefaultK 5 and MaxK 100", h.config)
	}
	h = NewHandler(nil, nil, HandlerConfig{DefaultK: 200})
	if h.config.MaxK != 200 {
		t.Errorf("MaxK = %d, want 200", h.config.MaxK)
	}
}

func newCachedServer(t *testing.T, ttl time.Duration) (http.Handler, *Handler, *recommend.Hybrid) {
	t.Helper()
	engine, err := recommend.NewHybrid(recommend.DefaultConfig().WithWindow(30), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHybrid() error = %v", err)
	}
	records := fixtureRecords()
	engine.Fit(records, day(10))
	h := NewHandler(engine, dataset.NewRegionIndex(records), HandlerConfig{CacheSize: 16, CacheTTL: ttl})
	return NewRouter(h, RouterConfig{}), h, engine
}

func TestGetRecommendations_Cache(t *testing.T) {
	srv, _, engine := newCachedServer(t, time.Minute)
	records := fixtureRecords()

	var first, second models.Recommendation
	for i, dst := range []*models.Recommendation{&first, &second} {
		rec, env := doGet(t, srv, "/api/v1/recommendations/c1?k=2")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
		if err := json.Unmarshal(env.Data, dst); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached answer %+v differs from %+v", second, first)
	}
	if _, requests := engine.Stats(); requests != 1 {
		t.Errorf("engine served %d requests, want 1 with a warm cache", requests)
	}

	// A refit changes the key, so the next request reaches the engine.
	engine.Fit(records, day(10))
	doGet(t, srv, "/api/v1/recommendations/c1?k=2")
	if _, requests := engine.Stats(); requests != 2 {
		t.Errorf("engine served %d requests after refit, want 2", requests)
	}
}

func TestSanitizeLogValue(t *testing.T) {
	if got := sanitizeLogValue("c1\nforged"); got != `c1\x0aforged` {
		t.Errorf("sanitizeLogValue() = %q", got)
	}
}
