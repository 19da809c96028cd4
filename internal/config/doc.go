// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

/*
Package config loads Basketminer configuration with Koanf v2.

Sources are layered, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, config.yaml, config.yml or
    /etc/basketminer/config.yaml
 3. Environment variables, mapped explicitly by envTransformFunc

Example YAML:

	mining:
	  min_support: 0.02
	  min_confidence: 0.3
	  min_lift: 1.0
	dataset:
	  source: csv
	  path: /data/baskets.csv
	worker:
	  train_interval: 30m

The same settings as environment variables:

	MINING_MIN_SUPPORT=0.02 MINING_MIN_CONFIDENCE=0.3 DATASET_SOURCE=csv \
	DATASET_PATH=/data/baskets.csv WORKER_TRAIN_INTERVAL=30m ./basketminer

Unknown environment variables are ignored. Validate runs after loading and
reports the first invalid setting by its environment variable name.
*/
package config
