// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/olistrec/internal/dataset"
	"github.com/tomtom215/olistrec/internal/logging"
)

func newRecommendCmd(a *app) *cobra.Command {
	var (
		customerID string
		topK       int
		sortByTime bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print recommendations for one customer",
		Long: `Loads the dataset, fits on the first 85% of rows and prints
{"<customer_id>": [product ids...]} for the given customer. The region is the
customer's first recorded region, or the most frequent region when the
customer is unknown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			customerID = strings.TrimSpace(customerID)
			if customerID == "" {
				return fmt.Errorf("--customer_id must not be empty")
			}
			if !cmd.Flags().Changed("top_k") {
				topK = a.cfg.Recommend.TopK
			}

			records, err := a.loadRecords(cmd.Context())
			if err != nil {
				return err
			}
			// Resolved over the full table in file order, before any sort.
			regions := dataset.NewRegionIndex(records)

			split, err := a.splitRecords(records, sortByTime)
			if err != nil {
				return err
			}
			model, err := fitHybrid(a.cfg.RecommendSettings(), split.Train)
			if err != nil {
				return err
			}

			region, known := regions.Resolve(customerID)
			products, strategy := model.Recommend(customerID, region, topK)
			logging.Info().
				Str("customer_id", customerID).
				Str("region", region).
				Bool("known_customer", known).
				Int("k", topK).
				Str("strategy", strategy).
				Int("returned", len(products)).
				Msg("recommended")

			return writeRecommendation(cmd.OutOrStdout(), customerID, products)
		},
	}

	cmd.Flags().StringVar(&customerID, "customer_id", "", "customer unique id (required)")
	cmd.Flags().IntVar(&topK, "top_k", 5, "number of products to recommend (default from config)")
	cmd.Flags().BoolVar(&sortByTime, "sort", false, "sort rows by purchase timestamp before splitting")
	_ = cmd.MarkFlagRequired("customer_id")
	return cmd
}

// writeRecommendation prints {"<customerID>": [...]} as indented JSON.
func writeRecommendation(w io.Writer, customerID string, products []string) error {
	if products == nil {
		products = []string{}
	}
	data, err := json.MarshalIndent(map[string][]string{customerID: products}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode recommendations: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
