// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package apriori

import (
	"slices"
)

// DefaultTopN is the number of recommendations returned when topN <= 0.
const DefaultTopN = 5

// Recommendation is a candidate next item for a basket.
type Recommendation struct {
	Item       string    `json:"item"`
	Score      float64   `json:"score"`
	Reasons    []Itemset `json:"reasons"`
	Confidence float64   `json:"confidence"`
	Support    float64   `json:"support"`
	Rules      []Rule    `json:"rules"`
}

// RuleScore is the recommendation score contributed by a single rule.
func RuleScore(r Rule) float64 {
	return (r.Confidence * r.Lift * r.Kulczynski) / 3
}

// Recommend ranks items that are not in basket using the rules whose
// antecedent is contained in basket. An item recommended by several rules
// keeps its best score and the union of their antecedents as reasons.
//
// The result is sorted by descending score, holds at most topN entries and is
// never nil.
func Recommend(basket []string, rules []Rule, topN int) []Recommendation {
	if topN <= 0 {
		topN = DefaultTopN
	}
	out := make([]Recommendation, 0)
	if len(basket) == 0 || len(rules) == 0 {
		return out
	}

	inBasket := make(map[string]struct{}, len(basket))
	for _, item := range basket {
		inBasket[item] = struct{}{}
	}

	byItem := make(map[string]*Recommendation)
	reasonKeys := make(map[string]map[string]struct{})
	order := make([]string, 0)

	for _, rule := range rules {
		if !rule.Antecedent.SubsetOf(inBasket) {
			continue
		}
		score := RuleScore(rule)

		for _, item := range rule.Consequent {
			if _, owned := inBasket[item]; owned {
				continue
			}

			rec, ok := byItem[item]
			if !ok {
				rec = &Recommendation{Item: item, Score: score, Reasons: make([]Itemset, 0), Rules: make([]Rule, 0)}
				byItem[item] = rec
				reasonKeys[item] = make(map[string]struct{})
				order = append(order, item)
			}

			rec.Score = max(rec.Score, score)
			rec.Confidence = max(rec.Confidence, rule.Confidence)
			rec.Support = max(rec.Support, rule.Support)
			rec.Rules = append(rec.Rules, rule)

			key := rule.Antecedent.Key()
			if _, dup := reasonKeys[item][key]; !dup {
				reasonKeys[item][key] = struct{}{}
				rec.Reasons = append(rec.Reasons, rule.Antecedent)
			}
		}
	}

	for _, item := range order {
		out = append(out, *byItem[item])
	}
	slices.SortStableFunc(out, func(a, b Recommendation) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if len(out) > topN {
		out = out[:topN]
	}
	return out
}
