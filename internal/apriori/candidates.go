// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package apriori

import (
	"slices"
)

// GenerateCandidates builds the size-k candidates from the frequent
// (k-1)-itemsets in prev. Two itemsets are joined only when their first k-2
// items match, and a candidate survives only if every one of its (k-1)-subsets
// is in prev.
//
// prev does not need to be sorted; a sorted copy is used for the join.
func GenerateCandidates(prev []FrequentItemset, k int) []Itemset {
	candidates := make([]Itemset, 0)
	if k < 2 || len(prev) < 2 {
		return candidates
	}

	sorted := make([]Itemset, 0, len(prev))
	frequent := make(map[string]struct{}, len(prev))
	for _, fi := range prev {
		if len(fi.Items) != k-1 {
			continue
		}
		sorted = append(sorted, fi.Items)
		frequent[fi.Items.Key()] = struct{}{}
	}
	slices.SortFunc(sorted, compareItemsets)

	seen := make(map[string]struct{})
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			a, b := sorted[i], sorted[j]
			if !slices.Equal(a[:k-2], b[:k-2]) {
				// Sorted order groups shared prefixes together.
				break
			}

			candidate := NewItemset(append(slices.Clone(a), b[k-2])...)
			if len(candidate) != k {
				continue
			}
			key := candidate.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			if allSubsetsFrequent(candidate, frequent) {
				candidates = append(candidates, candidate)
			}
		}
	}
	return candidates
}

// allSubsetsFrequent reports whether every subset of candidate obtained by
// dropping one item is in frequent.
func allSubsetsFrequent(candidate Itemset, frequent map[string]struct{}) bool {
	subset := make(Itemset, 0, len(candidate)-1)
	for skip := range candidate {
		subset = subset[:0]
		for i, item := range candidate {
			if i != skip {
				subset = append(subset, item)
			}
		}
		if _, ok := frequent[subset.Key()]; !ok {
			return false
		}
	}
	return true
}
