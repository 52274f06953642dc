// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

// Package recommend implements a hybrid product recommender for marketplace
// order data.
//
// # Architecture
//
// A fit builds an immutable Index from a table of purchase records:
//
//   - Customer history: every product a customer bought, in record order,
//     built from all records regardless of date
//   - Regional ranking: product counts per region inside the trailing window
//   - Global ranking: product counts inside the trailing window
//
// Recommendations fall back across three stages, each skipping products
// already accepted:
//
//   - Collaborative: one vote per neighbour for each product the target has
//     not bought, where a neighbour is any customer sharing a product
//   - Regional: most purchased products in the customer's region
//   - Global: most purchased products overall
//
// If the collaborative stage alone fills k slots the result is returned
// immediately. Otherwise the remaining slots are filled regionally and then
// globally. The strategy label names the stages that contributed.
//
// # Window
//
// The window is the inclusive date range [cutoff - windowDays, cutoff].
// Records with a zero purchase date never fall inside it.
//
// # Determinism
//
// Rankings order products by count descending. Ties keep the order in which
// products were first counted, so identical input always produces identical
// output.
//
// # Usage
//
//	model, err := recommend.NewHybrid(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	model.Fit(records, cutoff)
//
//	products, strategy := model.Recommend(customerID, "SP", 5)
//
// # Thread Safety
//
// Hybrid is safe for concurrent use. Fit builds a new Index off to the side
// and publishes it with a single atomic store; queries load the current
// Index once and never observe a partially built one.
package recommend
