// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/basketminer/internal/middleware"
	"github.com/tomtom215/basketminer/internal/models"
)

// Health handles GET /api/v1/health. The process is alive whenever this
// answers; "degraded" means no model is being served yet.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.engine.Status()
	trained := h.engine.IsTrained()

	health := models.HealthStatus{
		Status:       "healthy",
		Version:      Version,
		ModelTrained: trained,
		ModelVersion: status.ModelVersion,
		IsTraining:   status.IsTraining,
		LastError:    status.LastError,
		Uptime:       time.Since(h.startTime).Seconds(),
	}
	if !trained {
		health.Status = "degraded"
	}
	if !status.LastTrainedAt.IsZero() {
		t := status.LastTrainedAt
		health.LastTrainedAt = &t
	}

	respondSuccess(w, r, http.StatusOK, health, models.Metadata{
		ModelVersion: status.ModelVersion,
	})
}

// Ready handles GET /api/v1/health/ready for load balancers and probes.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.engine.IsTrained() {
		resp := models.NewErrorResponse(middleware.GetRequestID(r), &models.APIError{
			Code:    ErrCodeModelNotTrained,
			Message: "No model has been trained yet",
		})
		resp.Data = models.ReadyStatus{Ready: false, Reason: "model not trained"}
		respondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	respondSuccess(w, r, http.StatusOK, models.ReadyStatus{Ready: true}, models.Metadata{})
}
