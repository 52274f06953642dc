// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package recommend

import (
	"strings"
	"time"
)

// Purchase is one purchased product line.
// The model reads CustomerID, Region, ProductID and PurchaseDate; the other
// fields are carried through for loaders and reports.
type Purchase struct {
	OrderID           string    `json:"order_id"`
	CustomerID        string    `json:"customer_id"`
	Region            string    `json:"region"`
	ProductID         string    `json:"product_id"`
	PurchaseDate      time.Time `json:"purchase_date"`
	PurchaseTimestamp time.Time `json:"purchase_timestamp"`
	Price             float64   `json:"price"`
}

// Stage identifies one step of the hybrid fallback.
type Stage string

// Stages in evaluation order.
const (
	StageCollaborative Stage = "collaborative"
	StageRegional      Stage = "regional"
	StageGlobal        Stage = "global"
)

// StrategyNone is the label returned when no stage contributed a product.
const StrategyNone = "no_recommendations"

// Strategy builds the label for the stages that contributed, in order.
func Strategy(stages []Stage) string {
	if len(stages) == 0 {
		return StrategyNone
	}
	parts := make([]string, len(stages))
	for i, s := range stages {
		parts[i] = string(s)
	}
	return strings.Join(parts, "_")
}

// Scored is a product with its count or vote total.
type Scored struct {
	ProductID string `json:"product_id"`
	Score     int    `json:"score"`
}

// Snapshot summarizes the currently published index.
type Snapshot struct {
	Fitted      bool      `json:"fitted"`
	WindowDays  int       `json:"window_days"`
	WindowStart time.Time `json:"window_start"`
	Cutoff      time.Time `json:"cutoff"`
	Records     int       `json:"records"`
	InWindow    int       `json:"in_window"`
	Customers   int       `json:"customers"`
	Products    int       `json:"products"`
	Regions     int       `json:"regions"`
	BuiltAt     time.Time `json:"built_at"`
	FitDuration string    `json:"fit_duration"`
}

// DateOf truncates t to its calendar date at UTC midnight.
// The zero time stays zero.
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
