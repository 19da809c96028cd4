// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/basketminer/internal/config"
	"github.com/tomtom215/basketminer/internal/dataset"
	"github.com/tomtom215/basketminer/internal/recommend"
	"github.com/tomtom215/basketminer/internal/store"
)

// EngineComponents holds the recommendation engine and what it was built on.
type EngineComponents struct {
	Engine *recommend.Engine
	Store  *store.BadgerStore
	Source dataset.Source

	closeSource func() error
}

// Close releases the dataset handle and the model store.
func (c *EngineComponents) Close() error {
	var firstErr error
	if c.closeSource != nil {
		if err := c.closeSource(); err != nil {
			firstErr = fmt.Errorf("close dataset: %w", err)
		}
	}
	if c.Store != nil {
		if err := c.Store.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close store: %w", err)
		}
	}
	return firstErr
}

// buildEngineConfig maps the server configuration onto the engine.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	ec := recommend.DefaultConfig()
	ec.Options = cfg.Mining.Options()
	ec.Actionable = cfg.Actionable
	ec.SegmentMining = cfg.Mining.SegmentMining
	ec.Limits.DefaultTopN = cfg.Mining.TopN
	ec.Limits.MaxTopN = cfg.Mining.MaxTopN
	if cfg.Worker.Timeout > 0 {
		ec.Limits.TrainingTimeout = cfg.Worker.Timeout
	}
	ec.Cache.Enabled = cfg.Cache.Capacity > 0
	ec.Cache.Capacity = cfg.Cache.Capacity
	ec.Cache.TTL = cfg.Cache.TTL
	return ec
}

// initEngine opens the model store and the dataset source, creates the
// engine and restores the last persisted models.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initEngine(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*EngineComponents, error) {
	modelStore, err := store.Open(store.Config{
		Path:      cfg.Store.Path,
		InMemory:  cfg.Store.InMemory,
		ResultTTL: cfg.Cache.TTL,
	})
	if err != nil {
		return nil, err
	}
	components := &EngineComponents{Store: modelStore}

	source, closeSource, err := dataset.Open(ctx, cfg.Dataset)
	if err != nil {
		_ = components.Close()
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	components.Source = source
	components.closeSource = closeSource

	engine, err := recommend.NewEngine(buildEngineConfig(cfg), logger)
	if err != nil {
		_ = components.Close()
		return nil, fmt.Errorf("create engine: %w", err)
	}
	engine.SetDataProvider(dataset.NewBreakerProvider(source, source.Name(), cfg.Breaker))
	engine.SetModelStore(modelStore)
	engine.SetResultStore(modelStore)
	components.Engine = engine

	version, err := engine.LoadModels(ctx)
	switch {
	case err != nil:
		logger.Warn().Err(err).Msg("failed to restore persisted models, waiting for training")
	case version > 0:
		logger.Info().Int64("version", version).Msg("restored persisted models")
	default:
		logger.Info().Msg("no persisted models, waiting for training")
	}

	logger.Info().
		Str("source", source.Name()).
		Float64("min_support", cfg.Mining.MinSupport).
		Float64("min_confidence", cfg.Mining.MinConfidence).
		Float64("min_lift", cfg.Mining.MinLift).
		Bool("segment_mining", cfg.Mining.SegmentMining).
		Msg("recommendation engine initialized")

	return components, nil
}
