// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package evaluate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/olistrec/internal/recommend"
)

// DefaultWindows are the window lengths compared when none are given.
var DefaultWindows = []int{30, 60, 90, 120}

// SweepOptions controls a window sweep.
type SweepOptions struct {
	// Windows lists the window lengths to evaluate. Empty uses DefaultWindows.
	Windows []int

	// K is the recommendation list size.
	K int

	// Parallelism bounds how many windows are evaluated at once. Values
	// below 1 run sequentially.
	Parallelism int

	// Logger receives one line per finished window.
	Logger zerolog.Logger
}

// Sweep runs Evaluate once per window length. Results are returned in the
// order of opts.Windows regardless of parallelism.
//
//nolint:gocritic // options passed by value, copied once per call
func Sweep(ctx context.Context, train, test []recommend.Purchase, factory Factory, opts SweepOptions) ([]Metrics, error) {
	windows := opts.Windows
	if len(windows) == 0 {
		windows = DefaultWindows
	}
	limit := opts.Parallelism
	if limit < 1 {
		limit = 1
	}

	results := make([]Metrics, len(windows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, w := range windows {
		g.Go(func() error {
			m, err := Evaluate(gctx, train, test, factory, opts.K, w)
			if err != nil {
				return fmt.Errorf("sweep window %d: %w", w, err)
			}
			results[i] = m
			opts.Logger.Info().
				Int("window_days", w).
				Int("new_customers", m.New.Customers).
				Int("returning_customers", m.Returning.Customers).
				Float64("precision_new", m.New.Precision).
				Float64("precision_returning", m.Returning.Precision).
				Str("took", m.Took).
				Msg("window evaluated")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
