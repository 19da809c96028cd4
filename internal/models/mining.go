// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package models

import (
	"github.com/tomtom215/basketminer/internal/apriori"
)

// MineRequest is the body of POST /api/v1/mine. Omitted thresholds fall back
// to the configured mining defaults. An empty transaction list is rejected by
// the mining core, not by validation.
type MineRequest struct {
	Transactions  [][]string `json:"transactions" validate:"dive,dive,itemid"`
	MinSupport    *float64   `json:"min_support,omitempty" validate:"omitempty,gt=0,lte=1"`
	MinConfidence *float64   `json:"min_confidence,omitempty" validate:"omitempty,gte=0,lte=1"`
	MinLift       *float64   `json:"min_lift,omitempty" validate:"omitempty,gte=0"`
	Basket        []string   `json:"basket,omitempty" validate:"max=200,dive,itemid"`
	TopN          int        `json:"top_n,omitempty" validate:"omitempty,min=1"`
}

// Options resolves the request thresholds against defaults.
func (r *MineRequest) Options(defaults apriori.Options) apriori.Options {
	opts := defaults
	if r.MinSupport != nil {
		opts.MinSupport = *r.MinSupport
	}
	if r.MinConfidence != nil {
		opts.MinConfidence = *r.MinConfidence
	}
	if r.MinLift != nil {
		opts.MinLift = *r.MinLift
	}
	return opts
}

// TransactionList converts the request body into mining transactions.
func (r *MineRequest) TransactionList() []apriori.Transaction {
	txs := make([]apriori.Transaction, len(r.Transactions))
	for i, tx := range r.Transactions {
		txs[i] = apriori.Transaction(tx)
	}
	return txs
}

// MineResponse is the data of a successful POST /api/v1/mine. Recommendations
// is omitted when the request carried no basket and is an array, possibly
// empty, when it did.
type MineResponse struct {
	*apriori.Result
	Options         apriori.Options           `json:"options"`
	Recommendations *[]apriori.Recommendation `json:"recommendations,omitempty"`
}

// RecommendRequest is the body of POST /api/v1/recommendations.
type RecommendRequest struct {
	Basket     []string `json:"basket" validate:"max=200,dive,itemid"`
	TopN       int      `json:"top_n,omitempty" validate:"omitempty,min=1"`
	Segment    string   `json:"segment,omitempty" validate:"omitempty,segment"`
	Actionable bool     `json:"actionable,omitempty"`
}

// RecommendResponse is the data of a successful POST /api/v1/recommendations.
type RecommendResponse struct {
	Recommendations []apriori.Recommendation `json:"recommendations"`
	Segment         string                   `json:"segment"`
	Actionable      bool                     `json:"actionable"`
	RulesConsidered int                      `json:"rules_considered"`
}

// RulesResponse is the data of GET /api/v1/rules.
type RulesResponse struct {
	Rules   []apriori.Rule `json:"rules"`
	Total   int            `json:"total"`
	Segment string         `json:"segment"`
	View    string         `json:"view"` // "all" or "actionable"
}

// ItemsetsResponse is the data of GET /api/v1/itemsets.
type ItemsetsResponse struct {
	Itemsets []apriori.FrequentItemset `json:"itemsets"`
	Total    int                       `json:"total"`
	Segment  string                    `json:"segment"`
}

// TrainResponse is the data of POST /api/v1/model/train.
type TrainResponse struct {
	Status  string `json:"status"` // "accepted" or "pending"
	Message string `json:"message"`
}
