// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/basketminer/internal/apriori"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Options are the primary mining thresholds used by Train.
	Options apriori.Options `json:"options"`

	// Actionable is the post-hoc view applied by ActionableRules.
	Actionable apriori.ActionableFilter `json:"actionable"`

	// SegmentMining also trains one model per customer segment.
	SegmentMining bool `json:"segment_mining"`

	Limits LimitsConfig `json:"limits"`
	Cache  CacheConfig  `json:"cache"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	DefaultTopN     int           `json:"default_top_n"`
	MaxTopN         int           `json:"max_top_n"`
	TrainingTimeout time.Duration `json:"training_timeout"`
}

// CacheConfig sizes the recommendation and ad-hoc result caches.
type CacheConfig struct {
	Enabled  bool          `json:"enabled"`
	Capacity int           `json:"capacity"`
	TTL      time.Duration `json:"ttl"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Options:       apriori.DefaultOptions(),
		Actionable:    apriori.DefaultActionableFilter(),
		SegmentMining: true,
		Limits: LimitsConfig{
			DefaultTopN:     apriori.DefaultTopN,
			MaxTopN:         50,
			TrainingTimeout: 10 * time.Minute,
		},
		Cache: CacheConfig{
			Enabled:  true,
			Capacity: 256,
			TTL:      10 * time.Minute,
		},
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.Options.Validate(); err != nil {
		return fmt.Errorf("options: %w", err)
	}
	if c.Limits.DefaultTopN < 1 {
		return fmt.Errorf("limits.default_top_n must be positive, got %d", c.Limits.DefaultTopN)
	}
	if c.Limits.MaxTopN < c.Limits.DefaultTopN {
		return fmt.Errorf("limits.max_top_n (%d) must be >= default_top_n (%d)", c.Limits.MaxTopN, c.Limits.DefaultTopN)
	}
	if c.Limits.TrainingTimeout <= 0 {
		return fmt.Errorf("limits.training_timeout must be positive")
	}
	if c.Cache.Enabled && c.Cache.Capacity < 1 {
		return fmt.Errorf("cache.capacity must be positive when the cache is enabled")
	}
	return nil
}
