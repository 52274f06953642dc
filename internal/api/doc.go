// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

/*
Package api serves recommendations over HTTP using the chi router.

Endpoints:

	GET /api/v1/recommendations/{customerID}?k=5&region=SP
	GET /api/v1/health
	GET /api/v1/health/live
	GET /api/v1/health/ready
	GET /metrics

Every JSON response uses the models.APIResponse envelope. When region is
omitted it is resolved from the customer's first purchase, falling back to
the most frequent region of the training data. k defaults to the configured
top-k and must lie in 1..MaxK.

Global Middleware Stack (in order):

  - middleware.RequestID: X-Request-ID propagation
  - chimiddleware.RealIP: client address from X-Forwarded-For / X-Real-IP
  - chimiddleware.Recoverer: panics become 500 responses
  - middleware.AccessLog: structured request logging

The /api/v1 group adds middleware.PrometheusMetrics and response
compression.
*/
package api
