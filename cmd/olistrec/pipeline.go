// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/olistrec/internal/dataset"
	"github.com/tomtom215/olistrec/internal/evaluate"
	"github.com/tomtom215/olistrec/internal/logging"
	"github.com/tomtom215/olistrec/internal/metrics"
	"github.com/tomtom215/olistrec/internal/recommend"
)

// loadRecords reads and joins the CSV exports.
func (a *app) loadRecords(ctx context.Context) ([]recommend.Purchase, error) {
	rows, err := dataset.Load(ctx, a.cfg.DatasetSettings())
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return dataset.Records(rows), nil
}

// splitRecords splits records by position, optionally sorting them by
// purchase timestamp first. records is reordered in place when sorting.
func (a *app) splitRecords(records []recommend.Purchase, sortByTime bool) (evaluate.Split, error) {
	if sortByTime || a.cfg.Evaluate.SortByTimestamp {
		dataset.SortByTimestamp(records)
	}
	split, err := evaluate.SplitByPosition(records, a.cfg.Evaluate.TrainRatio)
	if err != nil {
		return evaluate.Split{}, fmt.Errorf("split dataset: %w", err)
	}
	logging.Info().
		Int("train", len(split.Train)).
		Int("test", len(split.Test)).
		Float64("ratio", a.cfg.Evaluate.TrainRatio).
		Msg("split dataset")
	return split, nil
}

// fitHybrid builds a recommender with cfg and fits it on train, using the
// latest train date as the cutoff.
func fitHybrid(cfg *recommend.Config, train []recommend.Purchase) (*recommend.Hybrid, error) {
	h, err := recommend.NewHybrid(cfg, logging.Logger())
	if err != nil {
		return nil, err
	}

	start := time.Now()
	h.Fit(train, evaluate.Cutoff(train))
	snap := h.Snapshot()
	metrics.RecordFit(time.Since(start), snap.Records, snap.InWindow, snap.Customers, snap.Products)
	return h, nil
}

// factory returns the evaluation model factory for the configured settings.
func (a *app) factory() evaluate.Factory {
	return evaluate.HybridFactory(a.cfg.RecommendSettings(), zerolog.Nop())
}

func recordEvaluation(m *evaluate.Metrics) {
	metrics.RecordEvaluation(m.WindowDays, metrics.SegmentNew, m.New.Precision, m.New.Customers)
	metrics.RecordEvaluation(m.WindowDays, metrics.SegmentReturning, m.Returning.Precision, m.Returning.Customers)
}

// writeTextfile dumps metrics when a textfile path is configured.
func (a *app) writeTextfile() error {
	path := a.cfg.Metrics.TextfilePath
	if path == "" {
		return nil
	}
	if err := metrics.WriteTextfile(path); err != nil {
		return err
	}
	logging.Info().Str("path", path).Msg("wrote metrics textfile")
	return nil
}
