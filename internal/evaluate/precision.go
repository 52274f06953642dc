// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package evaluate

// Hits counts the distinct products among the first k recommendations that
// appear in actual.
func Hits(recommended, actual []string, k int) int {
	if k <= 0 || len(recommended) == 0 || len(actual) == 0 {
		return 0
	}
	if k > len(recommended) {
		k = len(recommended)
	}

	bought := make(map[string]struct{}, len(actual))
	for _, p := range actual {
		bought[p] = struct{}{}
	}

	hits := 0
	counted := make(map[string]struct{}, k)
	for _, p := range recommended[:k] {
		if _, dup := counted[p]; dup {
			continue
		}
		counted[p] = struct{}{}
		if _, ok := bought[p]; ok {
			hits++
		}
	}
	return hits
}

// PrecisionAtK is the share of the first k recommendations found in actual,
// normalized by min(len(recommended), k). It is 0 when either list is empty
// or k <= 0.
func PrecisionAtK(recommended, actual []string, k int) float64 {
	if k <= 0 || len(recommended) == 0 || len(actual) == 0 {
		return 0
	}
	denom := k
	if len(recommended) < denom {
		denom = len(recommended)
	}
	return float64(Hits(recommended, actual, k)) / float64(denom)
}
