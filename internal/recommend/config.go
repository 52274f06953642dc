// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package recommend

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid recommend config")

// Config holds the hybrid recommender settings.
type Config struct {
	// WindowDays is the length of the trailing popularity window.
	// The window is [cutoff-WindowDays, cutoff] inclusive.
	WindowDays int `json:"window_days"`

	// DefaultK is used by callers that do not request a size.
	DefaultK int `json:"default_k"`

	// MaxK bounds the size callers may request.
	MaxK int `json:"max_k"`
}

// DefaultConfig returns the settings used by the command line tool.
func DefaultConfig() *Config {
	return &Config{
		WindowDays: 55,
		DefaultK:   5,
		MaxK:       100,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.WindowDays < 0 {
		return fmt.Errorf("%w: window_days must be >= 0, got %d", ErrInvalidConfig, c.WindowDays)
	}
	if c.DefaultK < 1 {
		return fmt.Errorf("%w: default_k must be >= 1, got %d", ErrInvalidConfig, c.DefaultK)
	}
	if c.MaxK < c.DefaultK {
		return fmt.Errorf("%w: max_k (%d) must be >= default_k (%d)", ErrInvalidConfig, c.MaxK, c.DefaultK)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// WithWindow returns a copy with WindowDays replaced.
func (c *Config) WithWindow(days int) *Config {
	clone := c.Clone()
	clone.WindowDays = days
	return clone
}
