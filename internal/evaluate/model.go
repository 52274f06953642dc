// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package evaluate

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/olistrec/internal/recommend"
)

// Model is anything that can be fitted on purchases and asked for
// recommendations.
type Model interface {
	Fit(records []recommend.Purchase, cutoff time.Time)
	Recommend(customerID, region string, k int) ([]string, string)
}

// Factory builds a fresh, unfitted Model for a popularity window length.
type Factory func(windowDays int) (Model, error)

// HybridFactory returns a Factory producing recommend.Hybrid models that share
// base and differ only in window length.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func HybridFactory(base *recommend.Config, logger zerolog.Logger) Factory {
	if base == nil {
		base = recommend.DefaultConfig()
	}
	return func(windowDays int) (Model, error) {
		h, err := recommend.NewHybrid(base.WithWindow(windowDays), logger)
		if err != nil {
			return nil, err
		}
		return h, nil
	}
}
