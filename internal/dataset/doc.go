// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

// Package dataset loads the marketplace CSV exports into purchase records.
//
// The data directory must contain:
//
//   - olist_orders_dataset.csv
//   - olist_order_items_dataset.csv
//   - olist_customers_dataset.csv
//   - olist_products_dataset.csv
//
// The files are read by an in-memory DuckDB connection. Orders are joined
// with items on order_id and with customers on customer_id; the product
// catalog only contributes the category name. Output rows follow the order
// file first and the item file second.
//
// Purchase timestamps that cannot be parsed are kept as the zero time, so
// the row still contributes to customer history but never to a popularity
// window.
package dataset
