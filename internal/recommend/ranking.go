// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package recommend

import "sort"

// counter accumulates integer scores per product and remembers the order in
// which each product was first counted.
type counter struct {
	pos     map[string]int
	entries []Scored
}

func newCounter() *counter {
	return &counter{pos: make(map[string]int)}
}

// add increments the score of productID by one.
func (c *counter) add(productID string) {
	if i, ok := c.pos[productID]; ok {
		c.entries[i].Score++
		return
	}
	c.pos[productID] = len(c.entries)
	c.entries = append(c.entries, Scored{ProductID: productID, Score: 1})
}

func (c *counter) len() int {
	return len(c.entries)
}

// rank freezes the counter into a Ranking. The counter must not be used
// afterwards.
func (c *counter) rank() Ranking {
	entries := c.entries
	// Stable sort keeps first-counted order among equal scores.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	c.entries = nil
	c.pos = nil
	return Ranking{entries: entries}
}

// Ranking is an immutable list of products ordered by score descending.
type Ranking struct {
	entries []Scored
}

// Len returns the number of ranked products.
func (r Ranking) Len() int {
	return len(r.entries)
}

// TopK returns up to k product IDs from the head of the ranking.
// A ranking's TopK(k) is always a prefix of its TopK(k+1).
func (r Ranking) TopK(k int) []string {
	if k <= 0 || len(r.entries) == 0 {
		return nil
	}
	if k > len(r.entries) {
		k = len(r.entries)
	}
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = r.entries[i].ProductID
	}
	return out
}

// Scores returns up to k scored products from the head of the ranking.
// k <= 0 returns every entry.
func (r Ranking) Scores(k int) []Scored {
	if k <= 0 || k > len(r.entries) {
		k = len(r.entries)
	}
	out := make([]Scored, k)
	copy(out, r.entries[:k])
	return out
}
