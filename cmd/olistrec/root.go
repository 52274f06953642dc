// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/olistrec/internal/config"
	"github.com/tomtom215/olistrec/internal/logging"
)

// app carries state shared by every subcommand once the root pre-run has
// loaded the configuration.
type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "olistrec",
		Short:         "Hybrid product recommendations for marketplace orders",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (trace, debug, info, warn, error)")

	root.AddCommand(
		newRecommendCmd(a),
		newEvaluateCmd(a),
		newSweepCmd(a),
		newServeCmd(a),
	)
	return root
}

// init loads configuration and configures the global logger.
func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if a.logLevel != "" {
		if !logging.ValidLevel(a.logLevel) {
			return fmt.Errorf("%w: unknown log level %q", config.ErrInvalidConfig, a.logLevel)
		}
		cfg.Logging.Level = a.logLevel
	}
	a.cfg = cfg

	logging.Init(cfg.LoggingSettings())
	logging.Debug().
		Str("data_dir", cfg.Data.Dir).
		Int("window_days", cfg.Recommend.WindowDays).
		Int("top_k", cfg.Recommend.TopK).
		Msg("configuration loaded")
	return nil
}
