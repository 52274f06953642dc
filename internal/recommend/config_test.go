// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package recommend

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.WindowDays != 55 {
		t.Errorf("WindowDays = %d, want 55", cfg.WindowDays)
	}
	if cfg.DefaultK != 5 {
		t.Errorf("DefaultK = %d, want 5", cfg.DefaultK)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{"valid default", func(*Config) {}, false},
		{"zero window is allowed", func(c *Config) { c.WindowDays = 0 }, false},
		{"negative window", func(c *Config) { c.WindowDays = -1 }, true},
		{"zero default k", func(c *Config) { c.DefaultK = 0 }, true},
		{"max k below default", func(c *Config) { c.MaxK = 2 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want wrapped ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	orig := DefaultConfig()
	clone := orig.Clone()
	clone.WindowDays = 999

	if orig.WindowDays == 999 {
		t.Error("modifying clone changed original")
	}

	w := orig.WithWindow(30)
	if w.WindowDays != 30 || orig.WindowDays != 55 {
		t.Errorf("WithWindow(30) = %d, original %d", w.WindowDays, orig.WindowDays)
	}
}
