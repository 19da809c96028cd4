// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package models

import (
	"time"
)

// HealthStatus is the data of GET /api/v1/health.
type HealthStatus struct {
	Status        string     `json:"status"` // "healthy" or "degraded"
	Version       string     `json:"version"`
	ModelTrained  bool       `json:"model_trained"`
	ModelVersion  int64      `json:"model_version"`
	IsTraining    bool       `json:"is_training"`
	LastTrainedAt *time.Time `json:"last_trained_at,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
	Uptime        float64    `json:"uptime_seconds"`
}

// ReadyStatus is the data of GET /api/v1/health/ready.
type ReadyStatus struct {
	Ready  bool   `json:"ready"`
	Reason string `json:"reason,omitempty"`
}
