// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package evaluate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/olistrec/internal/recommend"
)

// ErrNoFactory is returned when Evaluate is called without a Factory.
var ErrNoFactory = errors.New("evaluate: nil model factory")

// ErrNilModel is returned when a Factory yields no model and no error.
var ErrNilModel = errors.New("evaluate: factory returned nil model")

// Segment aggregates the scores of one customer group.
type Segment struct {
	// Customers is the number of distinct (customer, region) pairs.
	Customers int `json:"customers"`

	// Orders is the number of test rows bought by the segment's customers.
	Orders int `json:"orders"`

	// Hits sums the per-pair hit counts.
	Hits int `json:"hits"`

	// Precision is the mean Precision@k over the segment's pairs, 0 when the
	// segment is empty.
	Precision float64 `json:"precision"`

	// Strategies counts the strategy label of each pair's recommendation.
	Strategies map[string]int `json:"strategies"`
}

// Metrics is the result of one evaluation run.
type Metrics struct {
	WindowDays int       `json:"window_days"`
	K          int       `json:"k"`
	Cutoff     time.Time `json:"cutoff"`
	New        Segment   `json:"new_customers"`
	Returning  Segment   `json:"returning_customers"`
	Took       string    `json:"took"`
}

// Cutoff returns the latest purchase date in records, ignoring zero dates.
// It returns the zero time when no record is dated.
func Cutoff(records []recommend.Purchase) time.Time {
	var latest time.Time
	for i := range records {
		d := records[i].PurchaseDate
		if d.IsZero() {
			continue
		}
		if d.After(latest) {
			latest = d
		}
	}
	return recommend.DateOf(latest)
}

// pair is one distinct (customer, region) combination of the test records.
type pair struct {
	customer string
	region   string
}

// Evaluate fits a fresh model on train and scores its recommendations for
// every distinct (customer, region) pair of test.
func Evaluate(ctx context.Context, train, test []recommend.Purchase, factory Factory, k, windowDays int) (Metrics, error) {
	if factory == nil {
		return Metrics{}, ErrNoFactory
	}
	start := time.Now()

	model, err := factory(windowDays)
	if err != nil {
		return Metrics{}, fmt.Errorf("build model for window %d: %w", windowDays, err)
	}
	if model == nil {
		return Metrics{}, fmt.Errorf("build model for window %d: %w", windowDays, ErrNilModel)
	}
	cutoff := Cutoff(train)
	model.Fit(train, cutoff)

	known := make(map[string]struct{})
	for i := range train {
		known[train[i].CustomerID] = struct{}{}
	}

	// Group the test rows once: pairs in first-occurrence order, each
	// customer's products and row count.
	var pairs []pair
	seenPair := make(map[pair]struct{})
	actual := make(map[string][]string)
	for i := range test {
		rec := &test[i]
		p := pair{customer: rec.CustomerID, region: rec.Region}
		if _, ok := seenPair[p]; !ok {
			seenPair[p] = struct{}{}
			pairs = append(pairs, p)
		}
		actual[rec.CustomerID] = append(actual[rec.CustomerID], rec.ProductID)
	}

	m := Metrics{
		WindowDays: windowDays,
		K:          k,
		Cutoff:     cutoff,
		New:        Segment{Strategies: make(map[string]int)},
		Returning:  Segment{Strategies: make(map[string]int)},
	}

	var newSum, retSum float64
	segmentCustomers := [2]map[string]struct{}{{}, {}}
	for i, p := range pairs {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return Metrics{}, fmt.Errorf("evaluate window %d: %w", windowDays, err)
			}
		}

		seg, sum, which := &m.New, &newSum, 0
		if _, ok := known[p.customer]; ok {
			seg, sum, which = &m.Returning, &retSum, 1
		}

		recs, strategy := model.Recommend(p.customer, p.region, k)
		bought := actual[p.customer]

		seg.Customers++
		seg.Hits += Hits(recs, bought, k)
		seg.Strategies[strategy]++
		*sum += PrecisionAtK(recs, bought, k)
		segmentCustomers[which][p.customer] = struct{}{}
	}

	// A customer seen with two regions is scored twice but its rows count
	// once per segment.
	for customer := range segmentCustomers[0] {
		m.New.Orders += len(actual[customer])
	}
	for customer := range segmentCustomers[1] {
		m.Returning.Orders += len(actual[customer])
	}

	if m.New.Customers > 0 {
		m.New.Precision = newSum / float64(m.New.Customers)
	}
	if m.Returning.Customers > 0 {
		m.Returning.Precision = retSum / float64(m.Returning.Customers)
	}
	m.Took = time.Since(start).String()
	return m, nil
}
