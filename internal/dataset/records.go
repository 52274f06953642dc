// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package dataset

import (
	"sort"

	"github.com/tomtom215/olistrec/internal/recommend"
)

// Records converts joined rows to purchases keyed by the unique customer id.
// The per-order customer_id is kept only as the order reference.
func Records(rows []Row) []recommend.Purchase {
	out := make([]recommend.Purchase, len(rows))
	for i := range rows {
		r := &rows[i]
		out[i] = recommend.Purchase{
			OrderID:           r.OrderID,
			CustomerID:        r.CustomerUniqueID,
			Region:            r.CustomerState,
			ProductID:         r.ProductID,
			PurchaseDate:      r.PurchaseDate,
			PurchaseTimestamp: r.PurchaseTimestamp,
			Price:             r.Price,
		}
	}
	return out
}

// SortByTimestamp stably orders records by purchase timestamp in place.
// Undated records sort first.
func SortByTimestamp(records []recommend.Purchase) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].PurchaseTimestamp.Before(records[j].PurchaseTimestamp)
	})
}

// MostFrequentRegion returns the region with the most records. Ties go to
// the lexically smallest region code. It returns "" for an empty table.
func MostFrequentRegion(records []recommend.Purchase) string {
	counts := make(map[string]int)
	for i := range records {
		counts[records[i].Region]++
	}

	best, bestCount := "", 0
	for region, n := range counts {
		if n > bestCount || (n == bestCount && region < best) {
			best, bestCount = region, n
		}
	}
	return best
}

// ResolveRegion returns the region of the customer's first record, or the
// most frequent region of the table when the customer is unknown.
func ResolveRegion(records []recommend.Purchase, customerID string) string {
	for i := range records {
		if records[i].CustomerID == customerID {
			return records[i].Region
		}
	}
	return MostFrequentRegion(records)
}

// RegionIndex answers ResolveRegion for many customers without rescanning.
type RegionIndex struct {
	first    map[string]string
	fallback string
}

// NewRegionIndex builds a RegionIndex over records.
func NewRegionIndex(records []recommend.Purchase) *RegionIndex {
	first := make(map[string]string)
	for i := range records {
		if _, ok := first[records[i].CustomerID]; !ok {
			first[records[i].CustomerID] = records[i].Region
		}
	}
	return &RegionIndex{first: first, fallback: MostFrequentRegion(records)}
}

// Resolve returns the customer's first region or the table's most frequent
// region, and whether the customer was known.
func (ri *RegionIndex) Resolve(customerID string) (string, bool) {
	if region, ok := ri.first[customerID]; ok {
		return region, true
	}
	return ri.fallback, false
}
