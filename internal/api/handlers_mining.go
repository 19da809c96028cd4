// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/basketminer/internal/apriori"
	"github.com/tomtom215/basketminer/internal/logging"
	"github.com/tomtom215/basketminer/internal/models"
	"github.com/tomtom215/basketminer/internal/recommend"
)

// Mine handles POST /api/v1/mine.
//
// The posted transactions are mined with the request thresholds, falling back
// to the configured ones. Identical requests are answered from the result
// cache. When the body carries a basket the response also holds
// recommendations scored against the mined rules.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.MineRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}
	if h.mining.MaxTransactions > 0 && len(req.Transactions) > h.mining.MaxTransactions {
		respondErrorDetails(w, r, http.StatusBadRequest, ErrCodeValidation,
			fmt.Sprintf("transactions must contain at most %d baskets", h.mining.MaxTransactions),
			map[string]interface{}{"field": "transactions", "tag": "max", "value": len(req.Transactions)}, nil)
		return
	}

	opts := req.Options(h.mining.Options())

	ctx, cancel := context.WithTimeout(r.Context(), h.mining.Timeout)
	defer cancel()

	result, cached, err := h.engine.MineAdHoc(ctx, req.TransactionList(), opts)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	resp := models.MineResponse{
		Result:  result,
		Options: opts,
	}
	if len(req.Basket) > 0 {
		topN := h.clampTopN(req.TopN)
		recs := apriori.Recommend(req.Basket, result.AssociationRules, topN)
		resp.Recommendations = &recs
	}

	logging.Ctx(r.Context()).Debug().
		Int("transactions", len(req.Transactions)).
		Int("itemsets", len(result.FrequentItemsets)).
		Int("rules", len(result.AssociationRules)).
		Bool("cached", cached).
		Msg("ad-hoc mining complete")

	respondSuccess(w, r, http.StatusOK, resp, models.Metadata{
		QueryTimeMS: elapsedMS(start),
		Cached:      cached,
	})
}

// Recommendations handles POST /api/v1/recommendations.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RecommendRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	resp, err := h.engine.Recommend(r.Context(), recommend.Request{
		Basket:     req.Basket,
		TopN:       req.TopN,
		Segment:    req.Segment,
		Actionable: req.Actionable,
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	recs := resp.Recommendations
	if recs == nil {
		recs = []apriori.Recommendation{}
	}

	respondSuccess(w, r, http.StatusOK, models.RecommendResponse{
		Recommendations: recs,
		Segment:         resp.Segment,
		Actionable:      resp.Actionable,
		RulesConsidered: resp.RulesConsidered,
	}, models.Metadata{
		QueryTimeMS:  elapsedMS(start),
		Cached:       resp.CacheHit,
		ModelVersion: resp.ModelVersion,
	})
}

// clampTopN applies the configured default and maximum to ad-hoc requests.
func (h *Handler) clampTopN(topN int) int {
	if topN <= 0 {
		topN = h.mining.TopN
	}
	if topN <= 0 {
		topN = apriori.DefaultTopN
	}
	if h.mining.MaxTopN > 0 && topN > h.mining.MaxTopN {
		topN = h.mining.MaxTopN
	}
	return topN
}
