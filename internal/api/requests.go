// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package api

import (
	"net/http"

	"github.com/tomtom215/basketminer/internal/apriori"
)

const (
	viewAll        = "all"
	viewActionable = "actionable"

	defaultListLimit = 100
	maxListLimit     = 1000
)

// rulesQuery holds the query parameters of GET /api/v1/rules.
type rulesQuery struct {
	Segment string `json:"segment" validate:"omitempty,segment"`
	View    string `json:"view" validate:"oneof=all actionable"`
	Limit   int    `json:"limit" validate:"min=1,max=1000"`
}

// itemsetsQuery holds the query parameters of GET /api/v1/itemsets.
type itemsetsQuery struct {
	Segment string `json:"segment" validate:"omitempty,segment"`
	MinSize int    `json:"min_size" validate:"min=1,max=5"`
	Limit   int    `json:"limit" validate:"min=1,max=1000"`
}

// actionableOverrides are the optional query thresholds that replace the
// configured actionable filter for one request.
type actionableOverrides struct {
	MinConfidence     *float64 `json:"min_confidence" validate:"omitempty,gte=0,lte=1"`
	MinLift           *float64 `json:"min_lift" validate:"omitempty,gte=0"`
	MinLeverage       *float64 `json:"min_leverage" validate:"omitempty,gte=-1,lte=1"`
	MaxImbalanceRatio *float64 `json:"max_imbalance_ratio" validate:"omitempty,gte=0,lte=1"`
	AntecedentMaxSize int      `json:"antecedent_max_size" validate:"omitempty,min=1"`
	ConsequentMaxSize int      `json:"consequent_max_size" validate:"omitempty,min=1"`
}

func (o *actionableOverrides) empty() bool {
	return o.MinConfidence == nil && o.MinLift == nil && o.MinLeverage == nil &&
		o.MaxImbalanceRatio == nil && o.AntecedentMaxSize == 0 && o.ConsequentMaxSize == 0
}

// apply returns base with the overridden thresholds replaced.
func (o *actionableOverrides) apply(base apriori.ActionableFilter) apriori.ActionableFilter {
	f := base
	if o.MinConfidence != nil {
		f.MinConfidence = *o.MinConfidence
	}
	if o.MinLift != nil {
		f.MinLift = *o.MinLift
	}
	if o.MinLeverage != nil {
		f.MinLeverage = *o.MinLeverage
	}
	if o.MaxImbalanceRatio != nil {
		f.MaxImbalanceRatio = *o.MaxImbalanceRatio
	}
	if o.AntecedentMaxSize > 0 {
		f.AntecedentMaxSize = o.AntecedentMaxSize
	}
	if o.ConsequentMaxSize > 0 {
		f.ConsequentMaxSize = o.ConsequentMaxSize
	}
	return f
}

// parseActionableOverrides reads the actionable threshold query parameters.
func parseActionableOverrides(r *http.Request) (*actionableOverrides, error) {
	var (
		o   actionableOverrides
		err error
	)
	if o.MinConfidence, err = parseFloatParam(r, "min_confidence"); err != nil {
		return nil, err
	}
	if o.MinLift, err = parseFloatParam(r, "min_lift"); err != nil {
		return nil, err
	}
	if o.MinLeverage, err = parseFloatParam(r, "min_leverage"); err != nil {
		return nil, err
	}
	if o.MaxImbalanceRatio, err = parseFloatParam(r, "max_imbalance_ratio"); err != nil {
		return nil, err
	}
	if o.AntecedentMaxSize, err = getIntParam(r, "antecedent_max_size", 0); err != nil {
		return nil, err
	}
	if o.ConsequentMaxSize, err = getIntParam(r, "consequent_max_size", 0); err != nil {
		return nil, err
	}
	return &o, nil
}
