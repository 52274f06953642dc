// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package evaluate

import (
	"fmt"
	"math"

	"github.com/tomtom215/olistrec/internal/recommend"
)

// Split holds the train and test parts of a record table.
type Split struct {
	Train []recommend.Purchase
	Test  []recommend.Purchase
}

// SplitByPosition puts the first floor(len(records)*ratio) rows in Train and
// the rest in Test. Rows are not reordered: callers that need a time split
// must pass records already sorted by purchase time.
func SplitByPosition(records []recommend.Purchase, ratio float64) (Split, error) {
	if math.IsNaN(ratio) || ratio < 0 || ratio > 1 {
		return Split{}, fmt.Errorf("split ratio must be in [0, 1], got %v", ratio)
	}
	n := int(float64(len(records)) * ratio)
	return Split{Train: records[:n:n], Test: records[n:]}, nil
}
