// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/olistrec/internal/models"
)

func (h *Handler) healthStatus() models.HealthStatus {
	snap := h.engine.Snapshot()
	fits, served := h.engine.Stats()

	status := "healthy"
	if !snap.Fitted {
		status = "not_ready"
	}
	return models.HealthStatus{
		Status:  status,
		Uptime:  time.Since(h.startTime).Seconds(),
		Index:   snap,
		Served:  served,
		Fits:    fits,
		Version: h.config.Version,
	}
}

// Health handles GET /api/v1/health. It always answers 200 and reports the
// index snapshot.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, h.healthStatus(), 0)
}

// HealthLive handles GET /api/v1/health/live.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]string{"status": "alive"}, 0)
}

// HealthReady handles GET /api/v1/health/ready. It answers 503 until an
// index has been fitted.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	health := h.healthStatus()
	if !health.Index.Fitted {
		respondError(w, r, http.StatusServiceUnavailable, "NOT_READY", "No index has been fitted", nil)
		return
	}
	respondSuccess(w, r, health, 0)
}
