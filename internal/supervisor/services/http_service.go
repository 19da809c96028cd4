// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultDrainTimeout bounds how long in-flight mining and recommendation
// requests may run after shutdown starts.
const DefaultDrainTimeout = 10 * time.Second

// HTTPServer is the part of *http.Server the API service drives.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService serves the recommendation API in the api-layer of the
// supervisor tree. Cancelling Serve's context drains in-flight requests for
// at most the drain timeout.
type HTTPServerService struct {
	server HTTPServer
	drain  time.Duration
	logger zerolog.Logger
}

// NewHTTPServerService wraps server for supervision. A non-positive drain
// uses DefaultDrainTimeout.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHTTPServerService(server HTTPServer, drain time.Duration, logger zerolog.Logger) *HTTPServerService {
	if drain <= 0 {
		drain = DefaultDrainTimeout
	}
	return &HTTPServerService{
		server: server,
		drain:  drain,
		logger: logger.With().Str("service", "api-server").Logger(),
	}
}

// Serve implements suture.Service. A listener that stops on its own is an
// error so the supervisor restarts it; http.ErrServerClosed after Shutdown is
// the normal exit and yields ctx.Err().
func (h *HTTPServerService) Serve(ctx context.Context) error {
	stopped := make(chan error, 1)
	go func() {
		stopped <- h.server.ListenAndServe()
	}()
	h.logger.Info().Msg("recommendation API listening")

	select {
	case err := <-stopped:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			err = errors.New("listener closed unexpectedly")
		}
		return fmt.Errorf("api server: %w", err)

	case <-ctx.Done():
	}

	start := time.Now()
	drainCtx, cancel := context.WithTimeout(context.Background(), h.drain)
	defer cancel()

	if err := h.server.Shutdown(drainCtx); err != nil {
		h.logger.Warn().Err(err).Dur("drain_timeout", h.drain).Msg("requests still running at drain deadline")
		return fmt.Errorf("api server shutdown: %w", err)
	}
	<-stopped

	h.logger.Info().Dur("drained_in", time.Since(start)).Msg("recommendation API stopped")
	return ctx.Err()
}

// String names the service in supervisor events.
func (h *HTTPServerService) String() string {
	return "api-server"
}
