// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package apriori

// ActionableFilter selects the rules that are strong, balanced and short enough
// to act on. It is applied after mining as a view over the primary rule set.
type ActionableFilter struct {
	MinConfidence     float64 `json:"min_confidence" koanf:"min_confidence"`
	MinLift           float64 `json:"min_lift" koanf:"min_lift"`
	MinLeverage       float64 `json:"min_leverage" koanf:"min_leverage"`
	MaxImbalanceRatio float64 `json:"max_imbalance_ratio" koanf:"max_imbalance_ratio"`
	AntecedentMaxSize int     `json:"antecedent_max_size" koanf:"antecedent_max_size"`
	ConsequentMaxSize int     `json:"consequent_max_size" koanf:"consequent_max_size"`
}

// DefaultActionableFilter returns the stock actionable thresholds.
func DefaultActionableFilter() ActionableFilter {
	return ActionableFilter{
		MinConfidence:     0.5,
		MinLift:           1.2,
		MinLeverage:       0.01,
		MaxImbalanceRatio: 0.8,
		AntecedentMaxSize: 3,
		ConsequentMaxSize: 2,
	}
}

// Allows reports whether rule passes every threshold of the filter.
func (f ActionableFilter) Allows(rule Rule) bool {
	return rule.Confidence >= f.MinConfidence &&
		rule.Lift >= f.MinLift &&
		rule.Leverage >= f.MinLeverage &&
		rule.ImbalanceRatio <= f.MaxImbalanceRatio &&
		len(rule.Antecedent) <= f.AntecedentMaxSize &&
		len(rule.Consequent) <= f.ConsequentMaxSize
}

// Apply returns the rules allowed by the filter in their original order.
func (f ActionableFilter) Apply(rules []Rule) []Rule {
	out := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if f.Allows(rule) {
			out = append(out, rule)
		}
	}
	return out
}
