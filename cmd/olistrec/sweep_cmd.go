// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tomtom215/olistrec/internal/evaluate"
	"github.com/tomtom215/olistrec/internal/logging"
)

func newSweepCmd(a *app) *cobra.Command {
	var (
		windows     []int
		topK        int
		parallelism int
		sortByTime  bool
		format      string
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compare precision@k across popularity window lengths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("windows") {
				windows = a.cfg.Evaluate.Windows
			}
			if !cmd.Flags().Changed("top_k") {
				topK = a.cfg.Recommend.TopK
			}
			if !cmd.Flags().Changed("parallelism") {
				parallelism = a.cfg.Evaluate.Parallelism
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be table or json, got %q", format)
			}
			for _, w := range windows {
				if w < 0 {
					return fmt.Errorf("--windows must be >= 0, got %d", w)
				}
			}

			records, err := a.loadRecords(cmd.Context())
			if err != nil {
				return err
			}
			split, err := a.splitRecords(records, sortByTime)
			if err != nil {
				return err
			}

			results, err := evaluate.Sweep(cmd.Context(), split.Train, split.Test, a.factory(), evaluate.SweepOptions{
				Windows:     windows,
				K:           topK,
				Parallelism: parallelism,
				Logger:      logging.WithComponent("sweep"),
			})
			if err != nil {
				return fmt.Errorf("sweep: %w", err)
			}
			for i := range results {
				recordEvaluation(&results[i])
			}
			if err := a.writeTextfile(); err != nil {
				return err
			}

			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			return writeSweepTable(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().IntSliceVar(&windows, "windows", evaluate.DefaultWindows, "window lengths in days (default from config)")
	cmd.Flags().IntVar(&topK, "top_k", 5, "recommendation list size (default from config)")
	cmd.Flags().IntVar(&parallelism, "parallelism", 1, "windows evaluated concurrently (default from config)")
	cmd.Flags().BoolVar(&sortByTime, "sort", false, "sort rows by purchase timestamp before splitting")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table or json")
	return cmd
}

// writeSweepTable prints one aligned row per window.
func writeSweepTable(w io.Writer, results []evaluate.Metrics) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WINDOW\tK\tNEW\tNEW_PRECISION\tRETURNING\tRETURNING_PRECISION")
	for i := range results {
		m := &results[i]
		fmt.Fprintf(tw, "%d\t%d\t%d\t%.4f\t%d\t%.4f\n",
			m.WindowDays, m.K,
			m.New.Customers, m.New.Precision,
			m.Returning.Customers, m.Returning.Precision)
	}
	return tw.Flush()
}
