// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

// Package evaluate scores a recommender offline against held-out purchases.
//
// A model is fitted on the training records with the cutoff set to the latest
// training purchase date. Every distinct (customer, region) pair of the test
// records is then asked for k recommendations and scored with Precision@k
// against everything that customer bought in the test period.
//
// Pairs are split into two segments:
//
//   - New: the customer never appears in the training records
//   - Returning: the customer appears in the training records
//
// Sweep repeats the evaluation for several window lengths and returns the
// results in the order the windows were given.
package evaluate
