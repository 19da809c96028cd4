// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package apriori

import (
	"context"
	"math"
	"slices"
)

// MaxItemsetSize is the largest itemset size the miner explores.
const MaxItemsetSize = 5

// cancelCheckInterval is how many candidates are counted between context checks.
const cancelCheckInterval = 256

// FindFrequentItemsets mines transactions with a fresh SupportCalculator.
func FindFrequentItemsets(ctx context.Context, transactions []Transaction, minSupport float64) ([]FrequentItemset, error) {
	if err := validateMinSupport(minSupport); err != nil {
		return nil, err
	}
	calc, err := NewSupportCalculator(transactions)
	if err != nil {
		return nil, err
	}
	return MineItemsets(ctx, calc, minSupport)
}

// MineItemsets returns every itemset of size 1..MaxItemsetSize whose support is
// at least minSupport. Levels are concatenated in ascending size and each level
// is sorted by item sequence.
func MineItemsets(ctx context.Context, calc *SupportCalculator, minSupport float64) ([]FrequentItemset, error) {
	if err := validateMinSupport(minSupport); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all := frequentSingletons(calc, minSupport)
	prev := all

	for k := 2; k <= MaxItemsetSize && len(prev) > 0; k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidates := GenerateCandidates(prev, k)
		if len(candidates) == 0 {
			break
		}

		level := make([]FrequentItemset, 0, len(candidates))
		for i, candidate := range candidates {
			if i%cancelCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			sv := calc.Support(candidate)
			if sv.Support >= minSupport {
				level = append(level, FrequentItemset{Items: candidate, Support: sv.Support, SupportCount: sv.Count})
			}
		}
		sortLevel(level)

		all = append(all, level...)
		prev = level
	}

	return all, nil
}

// frequentSingletons counts each distinct item once per transaction in a single
// pass and seeds the calculator cache with the counts.
func frequentSingletons(calc *SupportCalculator, minSupport float64) []FrequentItemset {
	counts := make(map[string]int)
	for _, tx := range calc.transactions {
		for item := range tx {
			counts[item]++
		}
	}

	level := make([]FrequentItemset, 0, len(counts))
	for item, count := range counts {
		items := Itemset{item}
		sv := calc.remember(items, count)
		if sv.Support >= minSupport {
			level = append(level, FrequentItemset{Items: items, Support: sv.Support, SupportCount: count})
		}
	}
	sortLevel(level)
	return level
}

func sortLevel(level []FrequentItemset) {
	slices.SortFunc(level, func(a, b FrequentItemset) int {
		return compareItemsets(a.Items, b.Items)
	})
}

func validateMinSupport(minSupport float64) error {
	if math.IsNaN(minSupport) || minSupport <= 0 || minSupport > 1 {
		return newPrecondition("minSupport", "a number in (0, 1]", minSupport)
	}
	return nil
}
