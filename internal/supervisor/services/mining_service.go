// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/basketminer/internal/metrics"
	"github.com/tomtom215/basketminer/internal/recommend"
)

// Training triggers, recorded on runs and metrics.
const (
	TriggerStartup  = "startup"
	TriggerSchedule = "schedule"
	TriggerManual   = "manual"
)

var (
	// ErrTriggerPending is returned by Trigger when a run is already queued.
	// The queued run covers the request.
	ErrTriggerPending = errors.New("training run already pending")

	// ErrTriggerThrottled is returned by Trigger when on-demand runs exceed
	// the configured rate.
	ErrTriggerThrottled = errors.New("training triggered too frequently")
)

// Trainer is satisfied by *recommend.Engine.
type Trainer interface {
	Train(ctx context.Context, trigger string) error
}

// MiningServiceConfig holds configuration for the mining worker.
type MiningServiceConfig struct {
	// TrainOnStartup runs a training cycle when the service starts.
	TrainOnStartup bool

	// TrainInterval is the re-mine period. Zero disables scheduled runs.
	TrainInterval time.Duration

	// TriggerInterval is the minimum spacing of on-demand runs once the
	// burst is spent. Zero disables throttling.
	TriggerInterval time.Duration
	TriggerBurst    int

	// Timeout bounds a single training cycle.
	Timeout time.Duration
}

// MiningService runs the engine's training cycles under suture supervision:
// on startup, on a ticker and on demand through Trigger.
type MiningService struct {
	engine   Trainer
	config   MiningServiceConfig
	limiter  *rate.Limiter
	triggers chan struct{}
	logger   zerolog.Logger
	name     string
}

// NewMiningService creates a new mining worker.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMiningService(engine Trainer, cfg MiningServiceConfig, logger zerolog.Logger) *MiningService {
	if cfg.TriggerBurst < 1 {
		cfg.TriggerBurst = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Minute
	}

	limit := rate.Inf
	if cfg.TriggerInterval > 0 {
		limit = rate.Every(cfg.TriggerInterval)
	}

	return &MiningService{
		engine:  engine,
		config:  cfg,
		limiter: rate.NewLimiter(limit, cfg.TriggerBurst),
		// One slot: triggers arriving while a run is queued coalesce into it.
		triggers: make(chan struct{}, 1),
		logger:   logger.With().Str("service", "mining").Logger(),
		name:     "mining-service",
	}
}

// Trigger queues an on-demand training run without blocking. It returns
// ErrTriggerPending when a run is already queued and ErrTriggerThrottled
// when the trigger rate is exceeded.
func (s *MiningService) Trigger() error {
	if len(s.triggers) == cap(s.triggers) {
		metrics.TrainingTriggers.WithLabelValues("coalesced").Inc()
		return ErrTriggerPending
	}
	if !s.limiter.Allow() {
		metrics.TrainingTriggers.WithLabelValues("throttled").Inc()
		return ErrTriggerThrottled
	}

	select {
	case s.triggers <- struct{}{}:
		metrics.TrainingTriggers.WithLabelValues("accepted").Inc()
		return nil
	default:
		metrics.TrainingTriggers.WithLabelValues("coalesced").Inc()
		return ErrTriggerPending
	}
}

// Serve implements suture.Service.
func (s *MiningService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("train_on_startup", s.config.TrainOnStartup).
		Dur("train_interval", s.config.TrainInterval).
		Dur("trigger_interval", s.config.TriggerInterval).
		Msg("mining service starting")

	if s.config.TrainOnStartup {
		s.train(ctx, TriggerStartup)
	}

	// A nil channel never fires, so scheduled runs stay off.
	var tick <-chan time.Time
	if s.config.TrainInterval > 0 {
		ticker := time.NewTicker(s.config.TrainInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("mining service shutting down")
			return ctx.Err()

		case <-tick:
			s.train(ctx, TriggerSchedule)

		case <-s.triggers:
			s.train(ctx, TriggerManual)
		}
	}
}

// train runs one cycle. Failures are logged and the previous models keep
// serving, so they never restart the service.
func (s *MiningService) train(ctx context.Context, trigger string) {
	trainCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	s.logger.Debug().Str("trigger", trigger).Msg("training cycle starting")

	err := s.engine.Train(trainCtx, trigger)
	switch {
	case err == nil:
		s.logger.Info().
			Str("trigger", trigger).
			Dur("duration", time.Since(start)).
			Msg("training cycle complete")
	case errors.Is(err, recommend.ErrTrainingInProgress):
		s.logger.Debug().Str("trigger", trigger).Msg("training already running, cycle skipped")
	case ctx.Err() != nil:
		s.logger.Info().Str("trigger", trigger).Msg("training cycle interrupted by shutdown")
	default:
		s.logger.Warn().
			Err(err).
			Str("trigger", trigger).
			Dur("duration", time.Since(start)).
			Msg("training cycle failed, previous models still served")
	}
}

// String returns the service name for logging.
func (s *MiningService) String() string {
	return s.name
}
