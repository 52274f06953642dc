// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

// Package config loads Olistrec settings from defaults, an optional YAML
// file and environment variables, in increasing order of precedence.
//
// Environment variables:
//
//   - DATA_DIR, DATA_QUERY_TIMEOUT
//   - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
//   - RECOMMEND_WINDOW_DAYS, RECOMMEND_TOP_K, RECOMMEND_MAX_K
//   - EVALUATE_TRAIN_RATIO, EVALUATE_WINDOWS (comma separated), EVALUATE_PARALLELISM
//   - SERVER_ADDR, SERVER_READ_TIMEOUT, SERVER_WRITE_TIMEOUT, SERVER_SHUTDOWN_TIMEOUT
//   - SERVER_CACHE_SIZE, SERVER_CACHE_TTL
//   - METRICS_ENABLED, METRICS_TEXTFILE
//
// The config file is taken from the --config flag, then CONFIG_PATH, then
// the first of DefaultConfigPaths that exists.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/olistrec/internal/dataset"
	"github.com/tomtom215/olistrec/internal/logging"
	"github.com/tomtom215/olistrec/internal/recommend"
	"github.com/tomtom215/olistrec/internal/validation"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all application configuration.
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Evaluate  EvaluateConfig  `koanf:"evaluate"`
	Server    ServerConfig    `koanf:"server"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// DataConfig locates the CSV exports.
type DataConfig struct {
	// Dir holds the four marketplace CSV files.
	// Default: ./data
	Dir string `koanf:"dir" validate:"required"`

	// QueryTimeout bounds each DuckDB statement while loading.
	QueryTimeout time.Duration `koanf:"query_timeout" validate:"gt=0"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// RecommendConfig holds the hybrid recommender settings.
type RecommendConfig struct {
	// WindowDays is the trailing popularity window.
	// Default: 55
	WindowDays int `koanf:"window_days" validate:"gte=0"`

	// TopK is the default recommendation count.
	// Default: 5
	TopK int `koanf:"top_k" validate:"min=1"`

	// MaxK bounds the count accepted over HTTP.
	MaxK int `koanf:"max_k" validate:"gtefield=TopK"`
}

// EvaluateConfig holds offline evaluation settings.
type EvaluateConfig struct {
	// TrainRatio is the share of rows, by position, used for training.
	// Default: 0.85
	TrainRatio float64 `koanf:"train_ratio" validate:"gt=0,lt=1"`

	// Windows are the window lengths compared by the sweep.
	Windows []int `koanf:"windows" validate:"min=1,dive,gte=0"`

	// Parallelism bounds concurrent sweep windows.
	// Default: 1 (sequential)
	Parallelism int `koanf:"parallelism" validate:"min=1,max=64"`

	// SortByTimestamp sorts rows by purchase time before splitting.
	// Default: false (file order is taken as time order)
	SortByTimestamp bool `koanf:"sort_by_timestamp"`
}

// ServerConfig holds HTTP server settings for serve mode.
type ServerConfig struct {
	Addr            string        `koanf:"addr" validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	// CacheSize bounds memoized recommendation lists; 0 disables the cache.
	// Default: 10000
	CacheSize int `koanf:"cache_size" validate:"gte=0"`

	// CacheTTL expires memoized lists.
	// Default: 5m
	CacheTTL time.Duration `koanf:"cache_ttl" validate:"gte=0"`
}

// MetricsConfig controls Prometheus exposition.
type MetricsConfig struct {
	// Enabled mounts /metrics in serve mode.
	Enabled bool `koanf:"enabled"`

	// TextfilePath, when set, receives a snapshot of every metric after
	// evaluate and sweep runs, in the node_exporter textfile format.
	TextfilePath string `koanf:"textfile"`
}

// Validate checks every field against its validate tag.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	return nil
}

// LoggingSettings converts the logging section for logging.Init.
func (c *Config) LoggingSettings() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	return cfg
}

// RecommendSettings converts the recommend section for recommend.NewHybrid.
func (c *Config) RecommendSettings() *recommend.Config {
	return &recommend.Config{
		WindowDays: c.Recommend.WindowDays,
		DefaultK:   c.Recommend.TopK,
		MaxK:       c.Recommend.MaxK,
	}
}

// DatasetSettings converts the data section for dataset.Load.
func (c *Config) DatasetSettings() dataset.Config {
	return dataset.Config{
		DataDir:      c.Data.Dir,
		QueryTimeout: c.Data.QueryTimeout,
	}
}
