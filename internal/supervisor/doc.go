// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

/*
Package supervisor provides process supervision for Basketminer using suture v4.

# Overview

The server's long-running services live in a two-layer tree:

	RootSupervisor ("basketminer")
	├── DataSupervisor ("data-layer")
	│   ├── MiningService (startup, scheduled and on-demand training)
	│   └── MaintenanceService (cache sweep, badger value log GC on disk)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

The layers restart independently. A mining worker that panics or keeps
failing is backed off and restarted while the API keeps answering from the
last published models.

# Logging

Supervisor events (service panics, restarts, backoff) are logged through
sutureslog. The server passes a *slog.Logger backed by logging.SlogHandler,
so events land in the same zerolog stream as the rest of the process:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: 10 * time.Second,
	})
	tree.AddDataService(services.NewMiningService(engine, miningCfg, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))
	err = tree.Serve(ctx)

# Shutdown

Canceling the context passed to Serve stops every service. Services that miss
ShutdownTimeout are listed by UnstoppedServiceReport.
*/
package supervisor
