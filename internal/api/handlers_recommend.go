// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/olistrec/internal/logging"
	"github.com/tomtom215/olistrec/internal/metrics"
	"github.com/tomtom215/olistrec/internal/models"
	"github.com/tomtom215/olistrec/internal/validation"
)

// recommendationQuery holds the validated query parameters.
type recommendationQuery struct {
	K    int `validate:"min=1,ltefield=MaxK"`
	MaxK int `validate:"-"`
}

// GetRecommendations handles GET /api/v1/recommendations/{customerID}.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	customerID := strings.TrimSpace(chi.URLParam(r, "customerID"))
	if customerID == "" {
		respondError(w, r, http.StatusBadRequest, "INVALID_PARAMETER", "customer id is required", nil)
		return
	}

	query := recommendationQuery{K: h.config.DefaultK, MaxK: h.config.MaxK}
	if kStr := r.URL.Query().Get("k"); kStr != "" {
		parsed, err := strconv.Atoi(kStr)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, "INVALID_PARAMETER", "k must be an integer", err)
			return
		}
		query.K = parsed
	}
	if verr := validation.ValidateStruct(&query); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	region := strings.TrimSpace(r.URL.Query().Get("region"))
	resolved, known := false, false
	if h.regions != nil {
		var fallback string
		fallback, known = h.regions.Resolve(customerID)
		if region == "" {
			region, resolved = fallback, true
		}
	}

	start := time.Now()
	products, strategy := h.recommend(customerID, region, query.K)
	took := time.Since(start)
	metrics.RecordRecommendation(strategy, len(products))

	logging.Ctx(r.Context()).Debug().
		Str("customer_id", sanitizeLogValue(customerID)).
		Str("region", sanitizeLogValue(region)).
		Int("k", query.K).
		Str("strategy", strategy).
		Msg("served recommendations")

	respondSuccess(w, r, models.Recommendation{
		CustomerID:     customerID,
		Region:         region,
		RegionResolved: resolved,
		KnownCustomer:  known,
		K:              query.K,
		Strategy:       strategy,
		Products:       products,
	}, took)
}

// recommend answers from the list cache when enabled. The key carries the
// fit count, so lists computed against an older index are never returned.
func (h *Handler) recommend(customerID, region string, k int) ([]string, string) {
	if h.lists == nil {
		return h.engine.Recommend(customerID, region, k)
	}

	fits, _ := h.engine.Stats()
	key := fmt.Sprintf("%d\x00%s\x00%s\x00%d", fits, customerID, region, k)
	if hit, ok := h.lists.Get(key); ok {
		metrics.RecordCacheLookup(true)
		return hit.products, hit.strategy
	}
	metrics.RecordCacheLookup(false)

	products, strategy := h.engine.Recommend(customerID, region, k)
	h.lists.Add(key, cachedList{products: products, strategy: strategy})
	return products, strategy
}
