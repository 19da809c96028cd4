// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

/*
Package logging provides the zerolog-based structured logger shared by every
Basketminer component.

# Quick Start

	logging.Init(logging.Config{Level: "info", Format: "json"})

	logging.Info().Str("source", "synthetic").Msg("Dataset loaded")
	logging.Ctx(ctx).Warn().Err(err).Msg("Recommendation failed")

	engineLog := logging.WithComponent("engine")
	engineLog.Info().Int("rules", n).Msg("Model trained")

# Configuration

Environment variables (read by internal/config):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: include caller file and line (default: false)

# Context

HTTP middleware stores a request ID and a short correlation ID on the request
context; mining runs carry a run ID. Ctx(ctx) returns a logger with whichever
of those fields are present.

# slog Interop

The supervisor library logs through log/slog. NewSlogLogger returns an
slog.Logger that writes through the global zerolog logger so all output shares
one format.
*/
package logging
