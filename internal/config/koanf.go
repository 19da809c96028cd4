// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/basketminer/internal/apriori"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/basketminer/config.yaml",
	"/etc/basketminer/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	opts := apriori.DefaultOptions()
	return &Config{
		Server: ServerConfig{
			Port:        8750,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			MineRateLimitReqs: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Mining: MiningConfig{
			MinSupport:      opts.MinSupport,
			MinConfidence:   opts.MinConfidence,
			MinLift:         opts.MinLift,
			TopN:            apriori.DefaultTopN,
			MaxTopN:         50,
			Timeout:         2 * time.Minute,
			SegmentMining:   true,
			MaxTransactions: 50000,
		},
		Actionable: apriori.DefaultActionableFilter(),
		Dataset: DatasetConfig{
			Source:         SourceSynthetic,
			Table:          "baskets",
			SyntheticCount: 1000,
			Seed:           42,
		},
		Store: StoreConfig{
			Path:     "/data/basketminer",
			InMemory: false,
		},
		Cache: CacheConfig{
			Capacity: 256,
			TTL:      10 * time.Minute,
		},
		Worker: WorkerConfig{
			TrainOnStartup:  true,
			TrainInterval:   time.Hour,
			TriggerInterval: 30 * time.Second,
			TriggerBurst:    1,
			Timeout:         10 * time.Minute,
		},
		Breaker: BreakerConfig{
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
			FailureThreshold: 3,
		},
	}
}

// LoadWithKoanf loads defaults, then the optional config file, then the
// environment, and validates the result.
func LoadWithKoanf() (*Config, error) {
	return load(findConfigFile())
}

// load is LoadWithKoanf with an explicit config file path ("" for none).
func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are split on commas when they arrive as plain strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok || raw == "" {
			continue
		}

		parts := make([]string, 0)
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to config paths.
var envMappings = map[string]string{
	// Server
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// Security
	"cors_origins":             "security.cors_origins",
	"rate_limit_requests":      "security.rate_limit_reqs",
	"rate_limit_window":        "security.rate_limit_window",
	"disable_rate_limit":       "security.rate_limit_disabled",
	"mine_rate_limit_requests": "security.mine_rate_limit_reqs",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Mining thresholds
	"mining_min_support":      "mining.min_support",
	"mining_min_confidence":   "mining.min_confidence",
	"mining_min_lift":         "mining.min_lift",
	"mining_top_n":            "mining.top_n",
	"mining_max_top_n":        "mining.max_top_n",
	"mining_timeout":          "mining.timeout",
	"mining_segments":         "mining.segment_mining",
	"mining_max_transactions": "mining.max_transactions",

	// Actionable rule view
	"actionable_min_confidence":      "actionable.min_confidence",
	"actionable_min_lift":            "actionable.min_lift",
	"actionable_min_leverage":        "actionable.min_leverage",
	"actionable_max_imbalance_ratio": "actionable.max_imbalance_ratio",
	"actionable_antecedent_max_size": "actionable.antecedent_max_size",
	"actionable_consequent_max_size": "actionable.consequent_max_size",

	// Dataset
	"dataset_source":          "dataset.source",
	"dataset_path":            "dataset.path",
	"dataset_table":           "dataset.table",
	"dataset_synthetic_count": "dataset.synthetic_count",
	"dataset_seed":            "dataset.seed",

	// Model store
	"store_path":      "store.path",
	"store_in_memory": "store.in_memory",

	// Result cache
	"cache_capacity": "cache.capacity",
	"cache_ttl":      "cache.ttl",

	// Mining worker
	"worker_train_on_startup": "worker.train_on_startup",
	"worker_train_interval":   "worker.train_interval",
	"worker_trigger_interval": "worker.trigger_interval",
	"worker_trigger_burst":    "worker.trigger_burst",
	"worker_timeout":          "worker.timeout",

	// Dataset circuit breaker
	"breaker_max_requests":      "breaker.max_requests",
	"breaker_interval":          "breaker.interval",
	"breaker_timeout":           "breaker.timeout",
	"breaker_failure_threshold": "breaker.failure_threshold",
}

// envTransformFunc maps an environment variable name to its config path.
// Unmapped variables return "" and are skipped.
//
//   - HTTP_PORT -> server.port
//   - MINING_MIN_SUPPORT -> mining.min_support
//   - DATASET_SOURCE -> dataset.source
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
