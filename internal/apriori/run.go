// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package apriori

import (
	"context"
	"time"
)

// Options are the thresholds of a mining run.
type Options struct {
	MinSupport    float64 `json:"min_support" koanf:"min_support"`
	MinConfidence float64 `json:"min_confidence" koanf:"min_confidence"`
	MinLift       float64 `json:"min_lift" koanf:"min_lift"`
}

// DefaultOptions returns the default thresholds.
func DefaultOptions() Options {
	return Options{
		MinSupport:    0.05,
		MinConfidence: 0.4,
		MinLift:       DefaultMinLift,
	}
}

// Validate returns a *PreconditionError naming the first invalid threshold.
func (o Options) Validate() error {
	if err := validateMinSupport(o.MinSupport); err != nil {
		return err
	}
	return validateRuleThresholds(o.MinConfidence, o.MinLift)
}

// Result is the output of a mining run.
type Result struct {
	FrequentItemsets []FrequentItemset `json:"frequentItemsets"`
	AssociationRules []Rule            `json:"associationRules"`
	Stats            Stats             `json:"stats"`
}

// Run mines transactions end to end: dataset statistics, frequent itemsets and
// association rules. One SupportCalculator is shared by the stages of the run.
func Run(ctx context.Context, transactions []Transaction, opts Options) (*Result, error) {
	start := time.Now()

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	calc, err := NewSupportCalculator(transactions)
	if err != nil {
		return nil, err
	}

	stats := ComputeStats(transactions)

	itemsets, err := MineItemsets(ctx, calc, opts.MinSupport)
	if err != nil {
		return nil, err
	}

	rules, err := GenerateRules(ctx, calc, itemsets, opts.MinConfidence, opts.MinLift)
	if err != nil {
		return nil, err
	}

	stats.TotalItemsets = len(itemsets)
	stats.MiningTimeMs = time.Since(start).Milliseconds()

	return &Result{
		FrequentItemsets: itemsets,
		AssociationRules: rules,
		Stats:            stats,
	}, nil
}
