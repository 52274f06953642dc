// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

// Package cache provides a thread-safe LRU cache with TTL expiry.
//
// The API uses it to memoize recommendation lists between refits. Callers
// put the index generation into the key, so a refit never serves a stale
// list even before the TTL elapses.
package cache
