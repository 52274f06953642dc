// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

// Package main is the olistrec command.
//
// olistrec loads the marketplace CSV exports through DuckDB, fits the hybrid
// recommender (collaborative, regional and global popularity) and either
// answers for one customer, evaluates precision@k on a held-out split, sweeps
// window lengths or serves the HTTP API.
//
// # Commands
//
//	olistrec recommend --customer_id ID [--top_k N] [--sort]
//	olistrec evaluate [--top_k N] [--window N] [--sort]
//	olistrec sweep [--windows 30,60,90,120] [--top_k N] [--parallelism N] [--sort]
//	olistrec serve [--addr :8080]
//
// # Configuration
//
// Settings come from built-in defaults, then a YAML file (--config,
// CONFIG_PATH or ./config.yaml), then environment variables such as
// DATA_DIR, LOG_LEVEL and RECOMMEND_WINDOW_DAYS. Flags override all three.
//
// # Data
//
// DATA_DIR must contain olist_orders_dataset.csv,
// olist_order_items_dataset.csv, olist_customers_dataset.csv and
// olist_products_dataset.csv. Rows keep file order, which is taken as time
// order when splitting 85/15 by position; --sort sorts by purchase timestamp
// first.
//
// # Exit Status
//
// Any error is logged and the process exits with status 1.
package main

import (
	"os"

	"github.com/tomtom215/olistrec/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Err(err).Msg("olistrec failed")
		os.Exit(1)
	}
}
