// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/olistrec/internal/api"
	"github.com/tomtom215/olistrec/internal/dataset"
	"github.com/tomtom215/olistrec/internal/evaluate"
	"github.com/tomtom215/olistrec/internal/logging"
	"github.com/tomtom215/olistrec/internal/supervisor"
	"github.com/tomtom215/olistrec/internal/supervisor/services"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Fit on the whole dataset and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			records, err := a.loadRecords(ctx)
			if err != nil {
				return err
			}
			model, err := fitHybrid(a.cfg.RecommendSettings(), records)
			if err != nil {
				return err
			}

			handler := api.NewHandler(model, dataset.NewRegionIndex(records), api.HandlerConfig{
				DefaultK:  a.cfg.Recommend.TopK,
				MaxK:      a.cfg.Recommend.MaxK,
				Version:   version,
				CacheSize: a.cfg.Server.CacheSize,
				CacheTTL:  a.cfg.Server.CacheTTL,
			})
			router := api.NewRouter(handler, api.RouterConfig{MetricsEnabled: a.cfg.Metrics.Enabled})
			server := api.NewServer(router, api.ServerConfig{
				Addr:         a.cfg.Server.Addr,
				ReadTimeout:  a.cfg.Server.ReadTimeout,
				WriteTimeout: a.cfg.Server.WriteTimeout,
			})

			// Must outlast the HTTP service's graceful shutdown.
			tree := supervisor.NewTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
				ShutdownTimeout: a.cfg.Server.ShutdownTimeout + 5*time.Second,
			})
			tree.AddAPIService(services.NewHTTPServerService(server, a.cfg.Server.ShutdownTimeout))
			if handler.CacheEnabled() {
				tree.AddAPIService(services.NewCachePruneService(handler.PruneCache, a.cfg.Server.CacheTTL))
			}

			logging.Info().
				Str("addr", a.cfg.Server.Addr).
				Time("cutoff", evaluate.Cutoff(records)).
				Bool("metrics", a.cfg.Metrics.Enabled).
				Msg("serving recommendations")

			err = <-tree.ServeBackground(ctx)
			if ctx.Err() != nil {
				if report, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(report) > 0 {
					logging.Warn().Int("services", len(report)).Msg("services did not stop within the shutdown timeout")
				}
				logging.Info().Msg("shutdown complete")
				return nil
			}
			if err != nil {
				return fmt.Errorf("supervisor: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (default from config)")
	return cmd
}
