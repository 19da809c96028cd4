// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package apriori

import (
	"context"
	"fmt"
	"math"
	"slices"
)

// ConvictionCap stands in for the infinite conviction of a rule with
// confidence exactly 1.
const ConvictionCap = 999.0

// DefaultMinLift is the lift threshold used when callers have no preference.
const DefaultMinLift = 1.0

// Rule is an association rule Antecedent => Consequent drawn from a single
// frequent itemset, with its interestingness metrics.
type Rule struct {
	Antecedent     Itemset `json:"antecedent"`
	Consequent     Itemset `json:"consequent"`
	Support        float64 `json:"support"`
	Confidence     float64 `json:"confidence"`
	Lift           float64 `json:"lift"`
	Conviction     float64 `json:"conviction"`
	Leverage       float64 `json:"leverage"`
	Jaccard        float64 `json:"jaccard"`
	Cosine         float64 `json:"cosine"`
	Kulczynski     float64 `json:"kulczynski"`
	ImbalanceRatio float64 `json:"imbalanceRatio"`
}

// Quality is the composite ranking score confidence * lift.
func (r Rule) Quality() float64 {
	return r.Confidence * r.Lift
}

// Key identifies the rule by its antecedent and consequent.
func (r Rule) Key() string {
	return r.Antecedent.Key() + "=>" + r.Consequent.Key()
}

// String implements fmt.Stringer.
func (r Rule) String() string {
	return fmt.Sprintf("{%s} => {%s} (conf=%.3f lift=%.3f)", r.Antecedent.Key(), r.Consequent.Key(), r.Confidence, r.Lift)
}

// GenerateAssociationRules builds a SupportCalculator over transactions and
// generates rules from itemsets. Use GenerateRules to share the calculator
// that mined the itemsets.
func GenerateAssociationRules(ctx context.Context, itemsets []FrequentItemset, transactions []Transaction, minConfidence, minLift float64) ([]Rule, error) {
	if err := validateRuleThresholds(minConfidence, minLift); err != nil {
		return nil, err
	}
	calc, err := NewSupportCalculator(transactions)
	if err != nil {
		return nil, err
	}
	return GenerateRules(ctx, calc, itemsets, minConfidence, minLift)
}

// GenerateRules enumerates every antecedent/consequent split of each itemset of
// size two or more, keeps rules with confidence >= minConfidence and
// lift >= minLift, and returns them sorted by descending confidence * lift.
// Ties keep generation order.
func GenerateRules(ctx context.Context, calc *SupportCalculator, itemsets []FrequentItemset, minConfidence, minLift float64) ([]Rule, error) {
	if err := validateRuleThresholds(minConfidence, minLift); err != nil {
		return nil, err
	}

	rules := make([]Rule, 0)
	seen := make(map[string]struct{})

	for idx, fi := range itemsets {
		if idx%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		items := NewItemset(fi.Items...)
		k := len(items)
		if k < 2 {
			continue
		}
		union := calc.Support(items)

		// Masks 1 .. 2^k-2 select every non-empty proper antecedent.
		for mask := 1; mask < (1<<k)-1; mask++ {
			antecedent := make(Itemset, 0, k)
			consequent := make(Itemset, 0, k)
			for i, item := range items {
				if mask&(1<<i) != 0 {
					antecedent = append(antecedent, item)
				} else {
					consequent = append(consequent, item)
				}
			}

			rule, err := buildRule(calc, antecedent, consequent, union)
			if err != nil {
				return nil, err
			}
			if rule.Confidence < minConfidence || rule.Lift < minLift {
				continue
			}

			key := rule.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			rules = append(rules, rule)
		}
	}

	slices.SortStableFunc(rules, func(a, b Rule) int {
		qa, qb := a.Quality(), b.Quality()
		switch {
		case qa > qb:
			return -1
		case qa < qb:
			return 1
		default:
			return 0
		}
	})
	return rules, nil
}

// buildRule computes the metrics of antecedent => consequent given the support
// of their union.
func buildRule(calc *SupportCalculator, antecedent, consequent Itemset, union SupportValue) (Rule, error) {
	ant := calc.Support(antecedent)
	con := calc.Support(consequent)
	if ant.Count == 0 || con.Count == 0 {
		return Rule{}, &InvariantError{
			Detail: fmt.Sprintf("rule {%s} => {%s}", antecedent.Key(), consequent.Key()),
			Err:    ErrZeroSupport,
		}
	}

	s, sa, sc := union.Support, ant.Support, con.Support

	// Counts keep confidence exact so that a certain rule is exactly 1.
	confidence := float64(union.Count) / float64(ant.Count)
	reverse := float64(union.Count) / float64(con.Count)

	conviction := ConvictionCap
	if confidence != 1 {
		conviction = (1 - sc) / (1 - confidence)
	}

	rule := Rule{
		Antecedent:     antecedent,
		Consequent:     consequent,
		Support:        s,
		Confidence:     confidence,
		Lift:           confidence / sc,
		Conviction:     conviction,
		Leverage:       s - sa*sc,
		Jaccard:        s / (sa + sc - s),
		Cosine:         s / math.Sqrt(sa*sc),
		Kulczynski:     (confidence + reverse) / 2,
		ImbalanceRatio: math.Abs(sa-sc) / (sa + sc - s),
	}

	if !rule.finite() {
		return Rule{}, &InvariantError{Detail: "non-finite metric for " + rule.String()}
	}
	return rule, nil
}

func (r Rule) finite() bool {
	for _, v := range []float64{
		r.Support, r.Confidence, r.Lift, r.Conviction, r.Leverage,
		r.Jaccard, r.Cosine, r.Kulczynski, r.ImbalanceRatio,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func validateRuleThresholds(minConfidence, minLift float64) error {
	if math.IsNaN(minConfidence) || minConfidence < 0 || minConfidence > 1 {
		return newPrecondition("minConfidence", "a number in [0, 1]", minConfidence)
	}
	if math.IsNaN(minLift) || math.IsInf(minLift, 0) || minLift < 0 {
		return newPrecondition("minLift", "a finite number >= 0", minLift)
	}
	return nil
}
