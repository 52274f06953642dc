// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package api

import (
	"time"

	"github.com/tomtom215/olistrec/internal/cache"
	"github.com/tomtom215/olistrec/internal/recommend"
)

// Recommender is the model served by the API. *recommend.Hybrid
// satisfies it.
type Recommender interface {
	Recommend(customerID, region string, k int) ([]string, string)
	Snapshot() recommend.Snapshot
	Stats() (fits, requests int64)
}

// RegionResolver looks up the region used for a customer when the request
// does not name one. *dataset.RegionIndex satisfies it.
type RegionResolver interface {
	Resolve(customerID string) (region string, known bool)
}

// HandlerConfig holds request defaults and bounds.
type HandlerConfig struct {
	// DefaultK is used when the request has no k parameter.
	DefaultK int
	// MaxK is the largest accepted k.
	MaxK int
	// Version is reported by the health endpoint.
	Version string
	// CacheSize bounds memoized recommendation lists. Zero disables the
	// cache.
	CacheSize int
	// CacheTTL expires memoized lists. Zero uses the cache default.
	CacheTTL time.Duration
}

// cachedList is one memoized Recommend result.
type cachedList struct {
	products []string
	strategy string
}

// Handler implements the API endpoints.
type Handler struct {
	engine    Recommender
	regions   RegionResolver
	config    HandlerConfig
	lists     *cache.LRU[cachedList]
	startTime time.Time
}

// NewHandler creates a handler. regions may be nil, in which case requests
// without a region are answered with an empty region.
func NewHandler(engine Recommender, regions RegionResolver, cfg HandlerConfig) *Handler {
	defaults := recommend.DefaultConfig()
	if cfg.DefaultK <= 0 {
		cfg.DefaultK = defaults.DefaultK
	}
	if cfg.MaxK < cfg.DefaultK {
		cfg.MaxK = max(defaults.MaxK, cfg.DefaultK)
	}
	h := &Handler{
		engine:    engine,
		regions:   regions,
		config:    cfg,
		startTime: time.Now(),
	}
	if cfg.CacheSize > 0 {
		h.lists = cache.NewLRU[cachedList](cfg.CacheSize, cfg.CacheTTL)
	}
	return h
}

// PruneCache drops expired recommendation lists and returns how many were
// removed. It is a no-op when the cache is disabled.
func (h *Handler) PruneCache() int {
	if h.lists == nil {
		return 0
	}
	return h.lists.CleanupExpired()
}

// CacheEnabled reports whether recommendation lists are memoized.
func (h *Handler) CacheEnabled() bool {
	return h.lists != nil
}
