// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

// Package models defines the JSON shapes returned by the HTTP API.
//
// Every endpoint answers with an APIResponse envelope. Data holds the payload
// on success; Error holds the failure on error. Field names are snake_case.
package models
