// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8750 {
		t.Errorf("Server.Port = %d, want 8750", cfg.Server.Port)
	}
	if cfg.Mining.MinSupport != 0.05 {
		t.Errorf("Mining.MinSupport = %v, want 0.05", cfg.Mining.MinSupport)
	}
	if cfg.Mining.MinConfidence != 0.4 {
		t.Errorf("Mining.MinConfidence = %v, want 0.4", cfg.Mining.MinConfidence)
	}
	if cfg.Mining.MinLift != 1.0 {
		t.Errorf("Mining.MinLift = %v, want 1.0", cfg.Mining.MinLift)
	}
	if cfg.Actionable.MinLift != 1.2 {
		t.Errorf("Actionable.MinLift = %v, want 1.2", cfg.Actionable.MinLift)
	}
	if cfg.Dataset.Source != SourceSynthetic {
		t.Errorf("Dataset.Source = %q, want synthetic", cfg.Dataset.Source)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() = %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"HTTP_PORT", "server.port"},
		{"LOG_LEVEL", "logging.level"},
		{"MINING_MIN_SUPPORT", "mining.min_support"},
		{"ACTIONABLE_MIN_LEVERAGE", "actionable.min_leverage"},
		{"DATASET_SOURCE", "dataset.source"},
		{"WORKER_TRAIN_INTERVAL", "worker.train_interval"},
		{"BREAKER_TIMEOUT", "breaker.timeout"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.input); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MINING_MIN_SUPPORT", "0.02")
	t.Setenv("WORKER_TRAIN_INTERVAL", "15m")
	t.Setenv("DATASET_SEED", "7")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("STORE_IN_MEMORY", "true")

	cfg, err := load("")
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}

	if cfg.Mining.MinSupport != 0.02 {
		t.Errorf("Mining.MinSupport = %v, want 0.02", cfg.Mining.MinSupport)
	}
	if cfg.Worker.TrainInterval != 15*time.Minute {
		t.Errorf("Worker.TrainInterval = %v, want 15m", cfg.Worker.TrainInterval)
	}
	if cfg.Dataset.Seed != 7 {
		t.Errorf("Dataset.Seed = %d, want 7", cfg.Dataset.Seed)
	}
	if !cfg.Store.InMemory {
		t.Error("Store.InMemory = false, want true")
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "http://b.example" {
		t.Errorf("Security.CORSOrigins = %v, want two trimmed origins", cfg.Security.CORSOrigins)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
mining:
  min_confidence: 0.6
  top_n: 3
dataset:
  source: csv
  path: /tmp/baskets.csv
actionable:
  min_lift: 1.5
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MINING_TOP_N", "4")

	cfg, err := load(path)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}

	if cfg.Mining.MinConfidence != 0.6 {
		t.Errorf("Mining.MinConfidence = %v, want 0.6", cfg.Mining.MinConfidence)
	}
	if cfg.Mining.TopN != 4 {
		t.Errorf("Mining.TopN = %d, want 4 (env wins over file)", cfg.Mining.TopN)
	}
	if cfg.Dataset.Source != SourceCSV || cfg.Dataset.Path != "/tmp/baskets.csv" {
		t.Errorf("Dataset = %+v, want csv at /tmp/baskets.csv", cfg.Dataset)
	}
	if cfg.Actionable.MinLift != 1.5 {
		t.Errorf("Actionable.MinLift = %v, want 1.5", cfg.Actionable.MinLift)
	}
	if cfg.Actionable.MinConfidence != 0.5 {
		t.Errorf("Actionable.MinConfidence = %v, want default 0.5", cfg.Actionable.MinConfidence)
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("MINING_MIN_SUPPORT", "1.5")

	_, err := load("")
	if err == nil {
		t.Fatal("load() error = nil, want validation error")
	}
	if !strings.Contains(err.Error(), "MINING_MIN_SUPPORT") {
		t.Errorf("error = %v, want mention of MINING_MIN_SUPPORT", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"bad environment", func(c *Config) { c.Server.Environment = "staging" }, "ENVIRONMENT"},
		{"wildcard cors in production", func(c *Config) { c.Server.Environment = "production" }, "CORS_ORIGINS"},
		{"rate limit disabled skips checks", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"zero support", func(c *Config) { c.Mining.MinSupport = 0 }, "MINING_MIN_SUPPORT"},
		{"confidence above one", func(c *Config) { c.Mining.MinConfidence = 1.1 }, "MINING_MIN_CONFIDENCE"},
		{"negative lift", func(c *Config) { c.Mining.MinLift = -1 }, "MINING_MIN_LIFT"},
		{"max top n below top n", func(c *Config) { c.Mining.MaxTopN = 1 }, "MINING_MAX_TOP_N"},
		{"actionable sizes", func(c *Config) { c.Actionable.AntecedentMaxSize = 0 }, "ACTIONABLE_ANTECEDENT_MAX_SIZE"},
		{"unknown source", func(c *Config) { c.Dataset.Source = "s3" }, "DATASET_SOURCE"},
		{"csv without path", func(c *Config) { c.Dataset.Source = SourceCSV }, "DATASET_PATH"},
		{"duckdb without table", func(c *Config) {
			c.Dataset.Source = SourceDuckDB
			c.Dataset.Table = ""
		}, "DATASET_TABLE"},
		{"store without path", func(c *Config) { c.Store.Path = "" }, "STORE_PATH"},
		{"in-memory store without path", func(c *Config) {
			c.Store.Path = ""
			c.Store.InMemory = true
		}, ""},
		{"zero cache", func(c *Config) { c.Cache.Capacity = 0 }, "CACHE_CAPACITY"},
		{"zero trigger burst", func(c *Config) { c.Worker.TriggerBurst = 0 }, "WORKER_TRIGGER_BURST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %s", err, tt.wantErr)
			}
		})
	}
}

func TestMiningConfigOptions(t *testing.T) {
	m := MiningConfig{MinSupport: 0.1, MinConfidence: 0.5, MinLift: 1.1}
	opts := m.Options()
	if opts.MinSupport != 0.1 || opts.MinConfidence != 0.5 || opts.MinLift != 1.1 {
		t.Errorf("Options() = %+v, want thresholds copied", opts)
	}
}
