// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

/*
Package services provides suture.Service wrappers for Basketminer components.

Each wrapper implements suture.Service (Serve(ctx) error) and fmt.Stringer,
translating a component's lifecycle into suture's context-aware pattern.

# Available Services

HTTP Server (HTTPServerService):
  - Runs *http.Server.ListenAndServe in a goroutine
  - Drains connections with Shutdown when the context is canceled

Mining Worker (MiningService):
  - Trains the recommendation engine on startup and on a ticker
  - Trigger queues an on-demand run without blocking; one queued run absorbs
    further triggers and golang.org/x/time/rate throttles the rest
  - Training failures are logged, never returned, so the last models keep
    serving without restart churn

Maintenance (MaintenanceService):
  - Drops expired entries from the engine's LRU caches
  - Runs badger value log GC when the model store is on disk

The components are reached through small interfaces (Trainer, HTTPServer,
GarbageCollector, CacheSweeper) so tests drive them with mocks.
*/
package services
