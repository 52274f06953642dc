// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

/*
Package supervisor runs long-lived services under a suture v4 supervisor
tree.

Serve mode puts the HTTP server, and the cache pruner when the list cache
is enabled, under the api layer:

	root (olistrec)
	└── api-layer
	    ├── http-server
	    └── cache-prune

A service that returns an error is restarted with suture's backoff; the tree
stops when its context is canceled. Supervisor events are logged through
sutureslog and the zerolog slog bridge in the logging package.
*/
package supervisor
