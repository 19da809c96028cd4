// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package main

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/basketminer/internal/apriori"
	"github.com/tomtom215/basketminer/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Mining: config.MiningConfig{
			MinSupport:    0.1,
			MinConfidence: 0.3,
			MinLift:       1.0,
			TopN:          5,
			MaxTopN:       20,
			SegmentMining: true,
		},
		Actionable: apriori.DefaultActionableFilter(),
		Dataset: config.DatasetConfig{
			Source:         config.SourceSynthetic,
			SyntheticCount: 200,
			Seed:           7,
		},
		Store:   config.StoreConfig{InMemory: true},
		Cache:   config.CacheConfig{Capacity: 16, TTL: time.Minute},
		Worker:  config.WorkerConfig{Timeout: time.Minute},
		Breaker: config.BreakerConfig{MaxRequests: 1, Interval: time.Minute, Timeout: time.Second, FailureThreshold: 3},
	}
}

func TestBuildEngineConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	ec := buildEngineConfig(cfg)

	if ec.Options != cfg.Mining.Options() {
		t.Errorf("Options = %+v, want %+v", ec.Options, cfg.Mining.Options())
	}
	if ec.Limits.DefaultTopN != 5 || ec.Limits.MaxTopN != 20 {
		t.Errorf("Limits = %+v, want top_n 5 and max 20", ec.Limits)
	}
	if ec.Limits.TrainingTimeout != time.Minute {
		t.Errorf("TrainingTimeout = %v, want 1m", ec.Limits.TrainingTimeout)
	}
	if !ec.Cache.Enabled || ec.Cache.Capacity != 16 {
		t.Errorf("Cache = %+v, want enabled with capacity 16", ec.Cache)
	}
	if err := ec.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestBuildEngineConfig_CacheDisabled(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Cache.Capacity = 0
	if buildEngineConfig(cfg).Cache.Enabled {
		t.Error("Cache.Enabled = true with zero capacity")
	}
}

func TestInitEngine(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	components, err := initEngine(ctx, testConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("initEngine() error = %v", err)
	}
	t.Cleanup(func() {
		if err := components.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})

	if components.Engine.IsTrained() {
		t.Fatal("fresh engine reports trained")
	}
	if err := components.Engine.Train(ctx, "test"); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if !components.Engine.IsTrained() {
		t.Error("engine not trained after Train")
	}

	models, err := components.Store.LoadModels(ctx)
	if err != nil {
		t.Fatalf("LoadModels() error = %v", err)
	}
	if len(models) == 0 {
		t.Error("no models persisted after training")
	}
}

func TestInitEngine_BadDataset(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Dataset.Source = "ftp"

	if _, err := initEngine(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Error("initEngine() error = nil, want unknown source error")
	}
}
