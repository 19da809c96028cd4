// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/basketminer/internal/apriori"
	"github.com/tomtom215/basketminer/internal/logging"
	"github.com/tomtom215/basketminer/internal/models"
	"github.com/tomtom215/basketminer/internal/recommend"
	"github.com/tomtom215/basketminer/internal/supervisor/services"
)

// Rules handles GET /api/v1/rules.
//
// Query parameters: segment (default global), view ("all" or "actionable"),
// limit (1-1000, default 100). The actionable view accepts min_confidence,
// min_lift, min_leverage, max_imbalance_ratio, antecedent_max_size and
// consequent_max_size overrides of the configured filter.
func (h *Handler) Rules(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, err := getIntParam(r, "limit", defaultListLimit)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	q := rulesQuery{
		Segment: r.URL.Query().Get("segment"),
		View:    r.URL.Query().Get("view"),
		Limit:   limit,
	}
	if q.View == "" {
		q.View = viewAll
	}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	var (
		rules  []apriori.Rule
		served string
	)
	if q.View == viewActionable {
		overrides, perr := parseActionableOverrides(r)
		if perr != nil {
			respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, perr.Error(), nil)
			return
		}
		if apiErr := validateRequest(overrides); apiErr != nil {
			respondValidationError(w, r, apiErr)
			return
		}
		var filter *apriori.ActionableFilter
		if !overrides.empty() {
			f := overrides.apply(h.engine.ActionableFilter())
			filter = &f
		}
		rules, served, err = h.engine.ActionableRules(q.Segment, filter)
	} else {
		rules, served, err = h.engine.Rules(q.Segment)
	}
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	total := len(rules)
	if len(rules) > q.Limit {
		rules = rules[:q.Limit]
	}
	if rules == nil {
		rules = []apriori.Rule{}
	}

	respondSuccess(w, r, http.StatusOK, models.RulesResponse{
		Rules:   rules,
		Total:   total,
		Segment: served,
		View:    q.View,
	}, models.Metadata{
		QueryTimeMS:  elapsedMS(start),
		ModelVersion: h.engine.Status().ModelVersion,
	})
}

// Itemsets handles GET /api/v1/itemsets.
//
// Query parameters: segment, min_size (1-5, default 1), limit (1-1000,
// default 100).
func (h *Handler) Itemsets(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	minSize, err := getIntParam(r, "min_size", 1)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	limit, err := getIntParam(r, "limit", defaultListLimit)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	q := itemsetsQuery{
		Segment: r.URL.Query().Get("segment"),
		MinSize: minSize,
		Limit:   limit,
	}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	itemsets, served, err := h.engine.Itemsets(q.Segment, q.MinSize)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	total := len(itemsets)
	if len(itemsets) > q.Limit {
		itemsets = itemsets[:q.Limit]
	}
	if itemsets == nil {
		itemsets = []apriori.FrequentItemset{}
	}

	respondSuccess(w, r, http.StatusOK, models.ItemsetsResponse{
		Itemsets: itemsets,
		Total:    total,
		Segment:  served,
	}, models.Metadata{
		QueryTimeMS:  elapsedMS(start),
		ModelVersion: h.engine.Status().ModelVersion,
	})
}

// Stats handles GET /api/v1/stats: the training status with the dataset
// statistics of every served segment.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	status := h.engine.Status()
	if status.Segments == nil {
		status.Segments = []recommend.SegmentStatus{}
	}

	respondSuccess(w, r, http.StatusOK, status, models.Metadata{
		QueryTimeMS:  elapsedMS(start),
		ModelVersion: status.ModelVersion,
	})
}

// Train handles POST /api/v1/model/train. The run is queued on the mining
// worker and the request returns 202 immediately.
func (h *Handler) Train(w http.ResponseWriter, r *http.Request) {
	if h.trainer == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Background training is not running", nil)
		return
	}

	err := h.trainer.Trigger()
	switch {
	case err == nil:
		logging.Ctx(r.Context()).Info().Msg("training run queued")
		respondSuccess(w, r, http.StatusAccepted, models.TrainResponse{
			Status:  "accepted",
			Message: "Training run queued",
		}, models.Metadata{})

	case errors.Is(err, services.ErrTriggerPending):
		respondSuccess(w, r, http.StatusAccepted, models.TrainResponse{
			Status:  "pending",
			Message: "A training run is already queued",
		}, models.Metadata{})

	case errors.Is(err, services.ErrTriggerThrottled):
		respondError(w, r, http.StatusTooManyRequests, ErrCodeTooManyRequests,
			"Training was triggered too recently, retry later", nil)

	default:
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Failed to queue training run", err)
	}
}
