// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package models

import (
	"time"

	"github.com/tomtom215/olistrec/internal/recommend"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope of every response.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"customer_id": "c1", "strategy": "regional_global", "products": ["p1", "p2"]},
//	  "metadata": {"timestamp": "2026-10-14T12:00:00Z", "request_id": "..."}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {"code": "VALIDATION_ERROR", "message": "K must be at least 1"},
//	  "metadata": {"timestamp": "2026-10-14T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata is attached to every response.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError describes a failed request.
//
// Common error codes:
//   - VALIDATION_ERROR: a query parameter failed validation
//   - INVALID_PARAMETER: a query parameter could not be parsed
//   - NOT_FOUND: no route matched
//   - METHOD_NOT_ALLOWED: the route exists for other methods
//   - NOT_READY: no index has been fitted yet
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Recommendation is the payload of GET /api/v1/recommendations/{customerID}.
type Recommendation struct {
	CustomerID string `json:"customer_id"`
	Region     string `json:"region"`
	// RegionResolved is true when region was not given and was looked up
	// from the customer's history or the dataset's most frequent region.
	RegionResolved bool     `json:"region_resolved"`
	KnownCustomer  bool     `json:"known_customer"`
	K              int      `json:"k"`
	Strategy       string   `json:"strategy"`
	Products       []string `json:"products"`
}

// HealthStatus is the payload of the health endpoints.
type HealthStatus struct {
	Status  string             `json:"status"`
	Uptime  float64            `json:"uptime_seconds"`
	Index   recommend.Snapshot `json:"index"`
	Served  int64              `json:"recommendations_served"`
	Fits    int64              `json:"fits"`
	Version string             `json:"version,omitempty"`
}
