// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package api

import (
	"time"

	"github.com/tomtom215/basketminer/internal/config"
	"github.com/tomtom215/basketminer/internal/recommend"
)

// Version is reported by the health endpoint. It is set at build time.
var Version = "dev"

// TrainingTrigger queues a background training run.
type TrainingTrigger interface {
	Trigger() error
}

// Handler serves the API endpoints.
type Handler struct {
	engine    *recommend.Engine
	trainer   TrainingTrigger
	mining    config.MiningConfig
	startTime time.Time
}

// NewHandler creates a handler over a recommendation engine.
func NewHandler(engine *recommend.Engine, mining config.MiningConfig) *Handler {
	if mining.Timeout <= 0 {
		mining.Timeout = 2 * time.Minute
	}
	return &Handler{
		engine:    engine,
		mining:    mining,
		startTime: time.Now(),
	}
}

// SetTrainingTrigger sets the worker that POST /model/train queues runs on.
// Without one the endpoint answers 503.
func (h *Handler) SetTrainingTrigger(t TrainingTrigger) {
	h.trainer = t
}
