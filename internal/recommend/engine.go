// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package recommend

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Note: This package does not import other internal packages. Callers record
// metrics from the values Fit and Recommend return.

// Hybrid serves collaborative, regional and global recommendations from the
// most recently fitted Index. It is safe for concurrent use.
type Hybrid struct {
	config *Config
	logger zerolog.Logger

	index atomic.Pointer[Index]

	fits     atomic.Int64
	requests atomic.Int64
}

// NewHybrid creates a recommender with an empty index.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHybrid(cfg *Config, logger zerolog.Logger) (*Hybrid, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new hybrid: %w", err)
	}

	h := &Hybrid{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	h.index.Store(BuildIndex(nil, time.Time{}, cfg.WindowDays))
	return h, nil
}

// WindowDays returns the configured popularity window.
func (h *Hybrid) WindowDays() int {
	return h.config.WindowDays
}

// Config returns a copy of the recommender settings.
func (h *Hybrid) Config() *Config {
	return h.config.Clone()
}

// Fit rebuilds the index from records and publishes it. All previous state
// is discarded.
func (h *Hybrid) Fit(records []Purchase, cutoff time.Time) {
	idx := BuildIndex(records, cutoff, h.config.WindowDays)
	h.index.Store(idx)
	h.fits.Add(1)

	snap := idx.Snapshot()
	h.logger.Info().
		Int("records", snap.Records).
		Int("in_window", snap.InWindow).
		Int("customers", snap.Customers).
		Int("regions", snap.Regions).
		Int("window_days", snap.WindowDays).
		Time("cutoff", snap.Cutoff).
		Dur("took", idx.took).
		Msg("fitted index")
}

// Index returns the currently published index.
func (h *Hybrid) Index() *Index {
	return h.index.Load()
}

// Snapshot summarizes the current index. Fitted is false until the first
// Fit.
func (h *Hybrid) Snapshot() Snapshot {
	snap := h.index.Load().Snapshot()
	snap.Fitted = h.fits.Load() > 0
	return snap
}

// Collaborative returns up to k products voted for by the customer's
// neighbours.
func (h *Hybrid) Collaborative(customerID string, k int) []string {
	return h.index.Load().Collaborative(customerID).TopK(k)
}

// Regional returns up to k products most purchased in region inside the
// window.
func (h *Hybrid) Regional(region string, k int) []string {
	return h.index.Load().Regional(region).TopK(k)
}

// Global returns up to k products most purchased inside the window.
func (h *Hybrid) Global(k int) []string {
	return h.index.Load().Global().TopK(k)
}

// Recommend returns up to k distinct products and the strategy label of the
// stages that produced them.
func (h *Hybrid) Recommend(customerID, region string, k int) ([]string, string) {
	h.requests.Add(1)
	if k <= 0 {
		return []string{}, StrategyNone
	}
	products, stages := compose(h.index.Load(), customerID, region, k)
	strategy := Strategy(stages)

	h.logger.Debug().
		Str("customer_id", customerID).
		Str("region", region).
		Int("k", k).
		Int("returned", len(products)).
		Str("strategy", strategy).
		Msg("recommendation served")
	return products, strategy
}

// Stats returns the number of fits and recommendation requests served.
func (h *Hybrid) Stats() (fits, requests int64) {
	return h.fits.Load(), h.requests.Load()
}

// compose runs the three-stage fallback against a single index so that a
// concurrent Fit cannot mix two indexes into one answer.
func compose(idx *Index, customerID, region string, k int) ([]string, []Stage) {
	out := make([]string, 0, k)
	taken := make(map[string]struct{}, k)
	var stages []Stage

	if idx.HasCustomer(customerID) {
		collab := idx.Collaborative(customerID).TopK(k)
		if len(collab) > 0 {
			for _, p := range collab {
				out = append(out, p)
				taken[p] = struct{}{}
			}
			stages = append(stages, StageCollaborative)
			if len(out) >= k {
				return out[:k], stages
			}
		}
	}

	fill := func(stage Stage, candidates []string) {
		if len(out) >= k {
			return
		}
		added := 0
		for _, p := range candidates {
			if len(out) >= k {
				break
			}
			if _, dup := taken[p]; dup {
				continue
			}
			out = append(out, p)
			taken[p] = struct{}{}
			added++
		}
		if added > 0 {
			stages = append(stages, stage)
		}
	}

	fill(StageRegional, idx.Regional(region).TopK(k))
	fill(StageGlobal, idx.Global().TopK(k))

	return out, stages
}
