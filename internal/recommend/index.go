// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package recommend

import (
	"sort"
	"time"
)

// Index is the immutable result of one fit. It is never modified after
// BuildIndex returns and may be shared freely between goroutines.
type Index struct {
	windowDays  int
	windowStart time.Time
	cutoff      time.Time

	// history holds every product per customer in record order, duplicates
	// kept.
	history map[string][]string

	// customers lists customer IDs in first-seen order. ordinal maps an ID
	// back to its position.
	customers []string
	ordinal   map[string]int

	// distinct holds each customer's products once, in first-purchase
	// order, indexed by ordinal.
	distinct [][]string

	// buyers maps a product to the ordinals of customers who bought it,
	// ascending.
	buyers map[string][]int

	regional map[string]Ranking
	global   Ranking

	records  int
	inWindow int
	builtAt  time.Time
	took     time.Duration
}

// BuildIndex aggregates records into a fresh Index.
//
// Customer history uses every record. Regional and global rankings use only
// records whose purchase date lies in [cutoff-windowDays, cutoff]. The cutoff
// is truncated to its calendar date.
func BuildIndex(records []Purchase, cutoff time.Time, windowDays int) *Index {
	start := time.Now()

	cutoff = DateOf(cutoff)
	idx := &Index{
		windowDays: windowDays,
		cutoff:     cutoff,
		history:    make(map[string][]string),
		ordinal:    make(map[string]int),
		buyers:     make(map[string][]int),
		regional:   make(map[string]Ranking),
		records:    len(records),
	}
	if !cutoff.IsZero() {
		idx.windowStart = cutoff.AddDate(0, 0, -windowDays)
	}

	seen := make([]map[string]struct{}, 0)
	regional := make(map[string]*counter)
	global := newCounter()

	for i := range records {
		rec := &records[i]

		ord, ok := idx.ordinal[rec.CustomerID]
		if !ok {
			ord = len(idx.customers)
			idx.ordinal[rec.CustomerID] = ord
			idx.customers = append(idx.customers, rec.CustomerID)
			idx.distinct = append(idx.distinct, nil)
			seen = append(seen, make(map[string]struct{}))
		}
		idx.history[rec.CustomerID] = append(idx.history[rec.CustomerID], rec.ProductID)

		if _, dup := seen[ord][rec.ProductID]; !dup {
			seen[ord][rec.ProductID] = struct{}{}
			idx.distinct[ord] = append(idx.distinct[ord], rec.ProductID)
			// Ordinals are handed out in increasing order, so each buyer
			// list stays sorted.
			idx.buyers[rec.ProductID] = append(idx.buyers[rec.ProductID], ord)
		}

		if !idx.inRange(rec.PurchaseDate) {
			continue
		}
		idx.inWindow++
		rc, ok := regional[rec.Region]
		if !ok {
			rc = newCounter()
			regional[rec.Region] = rc
		}
		rc.add(rec.ProductID)
		global.add(rec.ProductID)
	}

	for region, rc := range regional {
		idx.regional[region] = rc.rank()
	}
	idx.global = global.rank()

	idx.builtAt = time.Now()
	idx.took = idx.builtAt.Sub(start)
	return idx
}

// inRange reports whether date falls inside the inclusive window.
func (idx *Index) inRange(date time.Time) bool {
	if date.IsZero() || idx.cutoff.IsZero() {
		return false
	}
	d := DateOf(date)
	return !d.Before(idx.windowStart) && !d.After(idx.cutoff)
}

// History returns a copy of the customer's purchase history.
func (idx *Index) History(customerID string) []string {
	h := idx.history[customerID]
	if h == nil {
		return nil
	}
	out := make([]string, len(h))
	copy(out, h)
	return out
}

// HasCustomer reports whether the customer has any recorded purchase.
func (idx *Index) HasCustomer(customerID string) bool {
	_, ok := idx.ordinal[customerID]
	return ok
}

// Collaborative scores products bought by customers who share at least one
// product with customerID. Each neighbour casts one vote per distinct
// product the target has not bought. Neighbours are visited in first-seen
// order and their products in first-purchase order, which fixes the order
// among equal vote totals.
func (idx *Index) Collaborative(customerID string) Ranking {
	target, ok := idx.ordinal[customerID]
	if !ok {
		return Ranking{}
	}

	owned := make(map[string]struct{}, len(idx.distinct[target]))
	for _, p := range idx.distinct[target] {
		owned[p] = struct{}{}
	}

	neighbours := idx.neighbours(target)
	votes := newCounter()
	for _, n := range neighbours {
		for _, p := range idx.distinct[n] {
			if _, mine := owned[p]; mine {
				continue
			}
			votes.add(p)
		}
	}
	return votes.rank()
}

// neighbours returns the ordinals of every other customer who bought at
// least one of the target's products, ascending.
func (idx *Index) neighbours(target int) []int {
	mark := make(map[int]struct{})
	for _, p := range idx.distinct[target] {
		for _, ord := range idx.buyers[p] {
			if ord != target {
				mark[ord] = struct{}{}
			}
		}
	}

	out := make([]int, 0, len(mark))
	for ord := range mark {
		out = append(out, ord)
	}
	sort.Ints(out)
	return out
}

// Regional returns the ranking for region. Unknown regions yield an empty
// ranking.
func (idx *Index) Regional(region string) Ranking {
	return idx.regional[region]
}

// Global returns the window-restricted global ranking.
func (idx *Index) Global() Ranking {
	return idx.global
}

// Snapshot summarizes the index.
func (idx *Index) Snapshot() Snapshot {
	return Snapshot{
		Fitted:      true,
		WindowDays:  idx.windowDays,
		WindowStart: idx.windowStart,
		Cutoff:      idx.cutoff,
		Records:     idx.records,
		InWindow:    idx.inWindow,
		Customers:   len(idx.customers),
		Products:    len(idx.buyers),
		Regions:     len(idx.regional),
		BuiltAt:     idx.builtAt,
		FitDuration: idx.took.String(),
	}
}
