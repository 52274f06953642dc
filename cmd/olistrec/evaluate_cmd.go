// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/olistrec/internal/evaluate"
	"github.com/tomtom215/olistrec/internal/logging"
)

func newEvaluateCmd(a *app) *cobra.Command {
	var (
		topK       int
		window     int
		sortByTime bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Measure precision@k for new and returning customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("top_k") {
				topK = a.cfg.Recommend.TopK
			}
			if !cmd.Flags().Changed("window") {
				window = a.cfg.Recommend.WindowDays
			}
			if topK < 1 || window < 0 {
				return fmt.Errorf("--top_k must be >= 1 and --window >= 0, got %d and %d", topK, window)
			}

			records, err := a.loadRecords(cmd.Context())
			if err != nil {
				return err
			}
			split, err := a.splitRecords(records, sortByTime)
			if err != nil {
				return err
			}

			m, err := evaluate.Evaluate(cmd.Context(), split.Train, split.Test, a.factory(), topK, window)
			if err != nil {
				return fmt.Errorf("evaluate: %w", err)
			}
			recordEvaluation(&m)
			logging.Info().
				Int("window_days", m.WindowDays).
				Float64("new_precision", m.New.Precision).
				Float64("returning_precision", m.Returning.Precision).
				Msg("evaluation finished")

			if err := a.writeTextfile(); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), m)
		},
	}

	cmd.Flags().IntVar(&topK, "top_k", 5, "recommendation list size (default from config)")
	cmd.Flags().IntVar(&window, "window", 55, "popularity window in days (default from config)")
	cmd.Flags().BoolVar(&sortByTime, "sort", false, "sort rows by purchase timestamp before splitting")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
