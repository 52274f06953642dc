// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package services

import (
	"context"
	"time"

	"github.com/tomtom215/olistrec/internal/logging"
)

// CachePruneService periodically drops expired entries from a cache.
//
//	tree.AddAPIService(services.NewCachePruneService(handler.PruneCache, 5*time.Minute))
type CachePruneService struct {
	prune    func() int
	interval time.Duration
}

// NewCachePruneService calls prune every interval. interval defaults to one
// minute.
func NewCachePruneService(prune func() int, interval time.Duration) *CachePruneService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CachePruneService{prune: prune, interval: interval}
}

// Serve implements suture.Service. It runs until ctx is canceled.
func (s *CachePruneService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := s.prune(); removed > 0 {
				logging.Debug().Int("removed", removed).Msg("pruned expired cache entries")
			}
		}
	}
}

// String implements fmt.Stringer for suture logs.
func (s *CachePruneService) String() string {
	return "cache-prune"
}
