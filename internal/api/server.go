// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/tomtom215/olistrec/internal/logging"
)

// ServerConfig holds the listener settings of NewServer.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewServer wraps router in an *http.Server. Every request context carries
// an "api" component logger, so logging.Ctx lines from handlers and
// middleware are tagged with it.
func NewServer(router http.Handler, cfg ServerConfig) *http.Server {
	base := logging.ContextWithLogger(context.Background(), logging.WithComponent("api"))
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		BaseContext:       func(net.Listener) context.Context { return base },
	}
}
