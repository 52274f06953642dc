// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

/*
Package metrics provides Prometheus collectors for the recommender.

Collectors are registered on the default registry through promauto and are
exposed by the API at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

Index Metrics:
  - olistrec_fit_duration_seconds: time spent building an index (histogram)
  - olistrec_index_records: rows in the last fitted index (gauge)
    Labels: scope ("total", "in_window")
  - olistrec_index_customers: distinct customers in the last index (gauge)
  - olistrec_index_products: distinct products in the last index (gauge)

Recommendation Metrics:
  - olistrec_recommendations_total: served recommendation lists (counter)
    Labels: strategy
  - olistrec_recommended_products: list length per request (histogram)
  - olistrec_recommendation_cache_total: list cache lookups (counter)
    Labels: result ("hit", "miss")

Evaluation Metrics:
  - olistrec_evaluation_precision: precision@k of the last run (gauge)
    Labels: window_days, segment
  - olistrec_evaluation_customers: evaluated customers (gauge)
    Labels: window_days, segment

HTTP Metrics:
  - olistrec_http_requests_total: requests by method, route and status (counter)
  - olistrec_http_request_duration_seconds: request latency (histogram)
  - olistrec_http_requests_in_flight: active requests (gauge)

Batch commands have no scrape endpoint, so WriteTextfile dumps the default
registry in the node_exporter textfile format after evaluate and sweep.
*/
package metrics
