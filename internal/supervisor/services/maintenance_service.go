// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector is satisfied by *store.BadgerStore.
type GarbageCollector interface {
	RunGC() error
}

// CacheSweeper is satisfied by *recommend.Engine.
type CacheSweeper interface {
	SweepCaches() int
}

// MaintenanceService periodically drops expired entries from the engine's
// in-memory caches and reclaims value log space in the model store. Model
// snapshots are rewritten on every training run, so the log grows without it.
type MaintenanceService struct {
	store    GarbageCollector
	caches   CacheSweeper
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewMaintenanceService creates the maintenance service. Either target may
// be nil; an in-memory model store has no value log to collect. A
// non-positive interval defaults to 10 minutes.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMaintenanceService(store GarbageCollector, caches CacheSweeper, interval time.Duration, logger zerolog.Logger) *MaintenanceService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &MaintenanceService{
		store:    store,
		caches:   caches,
		interval: interval,
		logger:   logger.With().Str("service", "maintenance").Logger(),
		name:     "maintenance",
	}
}

// Serve implements suture.Service.
func (s *MaintenanceService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *MaintenanceService) runOnce() {
	if s.caches != nil {
		if removed := s.caches.SweepCaches(); removed > 0 {
			s.logger.Debug().Int("removed", removed).Msg("expired cache entries dropped")
		}
	}
	if s.store != nil {
		if err := s.store.RunGC(); err != nil {
			s.logger.Warn().Err(err).Msg("value log GC failed")
			return
		}
		s.logger.Debug().Msg("value log GC complete")
	}
}

// String returns the service name for logging.
func (s *MaintenanceService) String() string {
	return s.name
}
