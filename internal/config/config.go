// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package config

import (
	"time"

	"github.com/tomtom215/basketminer/internal/apriori"
)

// Dataset sources.
const (
	SourceSynthetic = "synthetic"
	SourceCSV       = "csv"
	SourceDuckDB    = "duckdb"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig             `koanf:"server"`
	Security   SecurityConfig           `koanf:"security"`
	Logging    LoggingConfig            `koanf:"logging"`
	Mining     MiningConfig             `koanf:"mining"`
	Actionable apriori.ActionableFilter `koanf:"actionable"`
	Dataset    DatasetConfig            `koanf:"dataset"`
	Store      StoreConfig              `koanf:"store"`
	Cache      CacheConfig              `koanf:"cache"`
	Worker     WorkerConfig             `koanf:"worker"`
	Breaker    BreakerConfig            `koanf:"breaker"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development or production
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	MineRateLimitReqs int           `koanf:"mine_rate_limit_reqs"` // ad-hoc /mine requests per window
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// MiningConfig holds the primary thresholds and request limits.
type MiningConfig struct {
	MinSupport    float64       `koanf:"min_support"`
	MinConfidence float64       `koanf:"min_confidence"`
	MinLift       float64       `koanf:"min_lift"`
	TopN          int           `koanf:"top_n"`
	MaxTopN       int           `koanf:"max_top_n"`
	Timeout       time.Duration `koanf:"timeout"`

	// SegmentMining also mines each customer segment separately.
	SegmentMining bool `koanf:"segment_mining"`

	// MaxTransactions caps the transactions accepted by ad-hoc mining requests.
	MaxTransactions int `koanf:"max_transactions"`
}

// Options returns the thresholds as mining options.
func (m MiningConfig) Options() apriori.Options {
	return apriori.Options{
		MinSupport:    m.MinSupport,
		MinConfidence: m.MinConfidence,
		MinLift:       m.MinLift,
	}
}

// DatasetConfig selects where training baskets come from.
type DatasetConfig struct {
	Source string `koanf:"source"` // synthetic, csv or duckdb
	Path   string `koanf:"path"`   // CSV file or DuckDB database file
	Table  string `koanf:"table"`  // DuckDB table with basket_id, segment and item columns

	SyntheticCount int    `koanf:"synthetic_count"`
	Seed           uint64 `koanf:"seed"`
}

// StoreConfig holds model persistence settings.
type StoreConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
}

// CacheConfig sizes the in-memory result cache.
type CacheConfig struct {
	Capacity int           `koanf:"capacity"`
	TTL      time.Duration `koanf:"ttl"`
}

// WorkerConfig controls the background mining worker.
type WorkerConfig struct {
	TrainOnStartup  bool          `koanf:"train_on_startup"`
	TrainInterval   time.Duration `koanf:"train_interval"`
	TriggerInterval time.Duration `koanf:"trigger_interval"` // minimum spacing of on-demand runs
	TriggerBurst    int           `koanf:"trigger_burst"`
	Timeout         time.Duration `koanf:"timeout"`
}

// BreakerConfig configures the circuit breaker around the dataset source.
type BreakerConfig struct {
	MaxRequests      uint32        `koanf:"max_requests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
