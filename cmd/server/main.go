// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/basketminer/internal/api"
	"github.com/tomtom215/basketminer/internal/config"
	"github.com/tomtom215/basketminer/internal/logging"
	"github.com/tomtom215/basketminer/internal/supervisor"
	"github.com/tomtom215/basketminer/internal/supervisor/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("dataset", cfg.Dataset.Source).
		Str("store_path", cfg.Store.Path).
		Bool("store_in_memory", cfg.Store.InMemory).
		Msg("Starting Basketminer")

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.IsProduction() && len(cfg.Security.CORSOrigins) == 1 && cfg.Security.CORSOrigins[0] == "*" {
		logging.Warn().Msg("CORS allows any origin in production; set CORS_ORIGINS to the shop front-end")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	components, err := initEngine(ctx, cfg, logging.WithComponent("engine"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}
	defer func() {
		if err := components.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing engine resources")
		}
	}()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  shutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Data layer
	miner := services.NewMiningService(components.Engine, services.MiningServiceConfig{
		TrainOnStartup:  cfg.Worker.TrainOnStartup,
		TrainInterval:   cfg.Worker.TrainInterval,
		TriggerInterval: cfg.Worker.TriggerInterval,
		TriggerBurst:    cfg.Worker.TriggerBurst,
		Timeout:         cfg.Worker.Timeout,
	}, logging.WithComponent("mining-worker"))
	tree.AddDataService(miner)

	var gc services.GarbageCollector
	if !cfg.Store.InMemory {
		gc = components.Store
	}
	tree.AddDataService(services.NewMaintenanceService(gc, components.Engine, 0, logging.WithComponent("maintenance")))

	// API layer
	handler := api.NewHandler(components.Engine, cfg.Mining)
	handler.SetTrainingTrigger(miner)
	router := api.NewRouter(handler, api.NewChiMiddlewareConfig(cfg.Security))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout, logging.WithComponent("api")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
