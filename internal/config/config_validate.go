// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateSecurity,
		c.validateLogging,
		c.validateMining,
		c.validateActionable,
		c.validateDataset,
		c.validateStore,
		c.validateCache,
		c.validateWorker,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be one of: development, production, got %q", c.Server.Environment)
	}
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.MineRateLimitReqs < 1 {
		return fmt.Errorf("MINE_RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.MineRateLimitReqs)
	}
	if c.Security.RateLimitWindow < time.Second {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s, got %s", c.Security.RateLimitWindow)
	}
	if c.IsProduction() {
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain * in production")
			}
		}
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be one of: json, console, got %q", c.Logging.Format)
	}
}

func (c *Config) validateMining() error {
	m := c.Mining
	if m.MinSupport <= 0 || m.MinSupport > 1 {
		return fmt.Errorf("MINING_MIN_SUPPORT must be in (0, 1], got %v", m.MinSupport)
	}
	if m.MinConfidence < 0 || m.MinConfidence > 1 {
		return fmt.Errorf("MINING_MIN_CONFIDENCE must be in [0, 1], got %v", m.MinConfidence)
	}
	if m.MinLift < 0 {
		return fmt.Errorf("MINING_MIN_LIFT must be >= 0, got %v", m.MinLift)
	}
	if m.TopN < 1 {
		return fmt.Errorf("MINING_TOP_N must be at least 1, got %d", m.TopN)
	}
	if m.MaxTopN < m.TopN {
		return fmt.Errorf("MINING_MAX_TOP_N (%d) must be >= MINING_TOP_N (%d)", m.MaxTopN, m.TopN)
	}
	if m.Timeout <= 0 {
		return fmt.Errorf("MINING_TIMEOUT must be positive, got %s", m.Timeout)
	}
	if m.MaxTransactions < 1 {
		return fmt.Errorf("MINING_MAX_TRANSACTIONS must be at least 1, got %d", m.MaxTransactions)
	}
	return nil
}

func (c *Config) validateActionable() error {
	a := c.Actionable
	if a.MinConfidence < 0 || a.MinConfidence > 1 {
		return fmt.Errorf("ACTIONABLE_MIN_CONFIDENCE must be in [0, 1], got %v", a.MinConfidence)
	}
	if a.MinLift < 0 {
		return fmt.Errorf("ACTIONABLE_MIN_LIFT must be >= 0, got %v", a.MinLift)
	}
	if a.MaxImbalanceRatio < 0 {
		return fmt.Errorf("ACTIONABLE_MAX_IMBALANCE_RATIO must be >= 0, got %v", a.MaxImbalanceRatio)
	}
	if a.AntecedentMaxSize < 1 || a.ConsequentMaxSize < 1 {
		return fmt.Errorf("ACTIONABLE_ANTECEDENT_MAX_SIZE and ACTIONABLE_CONSEQUENT_MAX_SIZE must be at least 1")
	}
	return nil
}

func (c *Config) validateDataset() error {
	d := c.Dataset
	switch d.Source {
	case SourceSynthetic:
		if d.SyntheticCount < 1 {
			return fmt.Errorf("DATASET_SYNTHETIC_COUNT must be at least 1, got %d", d.SyntheticCount)
		}
	case SourceCSV:
		if d.Path == "" {
			return fmt.Errorf("DATASET_PATH is required when DATASET_SOURCE=csv")
		}
	case SourceDuckDB:
		if d.Table == "" {
			return fmt.Errorf("DATASET_TABLE is required when DATASET_SOURCE=duckdb")
		}
	default:
		return fmt.Errorf("DATASET_SOURCE must be one of: synthetic, csv, duckdb, got %q", d.Source)
	}
	return nil
}

func (c *Config) validateStore() error {
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("STORE_PATH is required unless STORE_IN_MEMORY=true")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.Capacity < 1 {
		return fmt.Errorf("CACHE_CAPACITY must be at least 1, got %d", c.Cache.Capacity)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative, got %s", c.Cache.TTL)
	}
	return nil
}

func (c *Config) validateWorker() error {
	w := c.Worker
	if w.TrainInterval < 0 {
		return fmt.Errorf("WORKER_TRAIN_INTERVAL must not be negative, got %s", w.TrainInterval)
	}
	if w.TriggerInterval <= 0 {
		return fmt.Errorf("WORKER_TRIGGER_INTERVAL must be positive, got %s", w.TriggerInterval)
	}
	if w.TriggerBurst < 1 {
		return fmt.Errorf("WORKER_TRIGGER_BURST must be at least 1, got %d", w.TriggerBurst)
	}
	if w.Timeout <= 0 {
		return fmt.Errorf("WORKER_TIMEOUT must be positive, got %s", w.Timeout)
	}
	return nil
}
