// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

/*
Package main is the entry point for the Basketminer server.

Basketminer mines frequent itemsets and association rules from shopping
baskets with the Apriori algorithm and serves next-item recommendations
over HTTP.

# Application Architecture

	RootSupervisor ("basketminer")
	├── DataSupervisor ("data-layer")
	│   ├── MiningService (startup, scheduled and on-demand training)
	│   └── MaintenanceService (cache sweep, badger value log GC)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config file and environment
 2. Logging: zerolog with JSON or console output
 3. Model store: BadgerDB, restoring the last trained models
 4. Dataset: synthetic generator, CSV file or DuckDB table behind a circuit breaker
 5. Supervisor tree: suture v4 with the mining worker and the HTTP server

# Configuration

Configuration is layered (highest priority wins):
  - Environment variables (MINING_MIN_SUPPORT, DATASET_SOURCE, STORE_PATH, ...)
  - Config file (config.yaml)
  - Built-in defaults

# Example Usage

Synthetic data with in-memory models:

	export DATASET_SOURCE=synthetic
	export STORE_IN_MEMORY=true
	./basketminer

Baskets from a CSV file with basket_id, segment and item columns:

	export DATASET_SOURCE=csv
	export DATASET_PATH=/data/baskets.csv
	./basketminer

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
in-flight requests for up to 10 seconds; the model store is closed last.
*/
package main
