// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package apriori

import (
	"slices"
	"strconv"
	"strings"
)

// keySeparator joins canonical items into an itemset key. Items containing it
// are rejected on entry, so distinct itemsets never share a key.
const keySeparator = "|"

// Transaction is one basket of item identifiers. Duplicates are ignored and
// order is irrelevant.
type Transaction []string

// Itemset is a canonical set of items: unique and sorted lexicographically.
type Itemset []string

// NewItemset returns the canonical form of items.
func NewItemset(items ...string) Itemset {
	set := make(Itemset, len(items))
	copy(set, items)
	slices.Sort(set)
	return slices.Compact(set)
}

// Key returns the cache key of the itemset. The receiver must be canonical.
func (s Itemset) Key() string {
	return strings.Join(s, keySeparator)
}

// hasSeparator reports whether any item contains keySeparator.
func (s Itemset) hasSeparator() bool {
	return slices.ContainsFunc(s, func(item string) bool {
		return strings.Contains(item, keySeparator)
	})
}

// SubsetOf reports whether every item of s is in set.
func (s Itemset) SubsetOf(set map[string]struct{}) bool {
	for _, item := range s {
		if _, ok := set[item]; !ok {
			return false
		}
	}
	return true
}

// compareItemsets orders canonical itemsets by their item sequence.
func compareItemsets(a, b Itemset) int {
	return slices.Compare(a, b)
}

// FrequentItemset is an itemset whose support met the mining threshold.
type FrequentItemset struct {
	Items        Itemset `json:"items"`
	Support      float64 `json:"support"`
	SupportCount int     `json:"supportCount"`
}

// Size returns the number of items in the itemset.
func (f FrequentItemset) Size() int {
	return len(f.Items)
}

// normalizeTransactions validates transactions and returns them as item sets.
// Empty item identifiers and identifiers containing keySeparator are
// rejected; empty baskets are kept and count toward the support denominator.
func normalizeTransactions(transactions []Transaction) ([]map[string]struct{}, error) {
	if len(transactions) == 0 {
		return nil, &PreconditionError{
			Parameter: "transactions",
			Expected:  "non-empty list",
			Got:       0,
			Err:       ErrEmptyTransactions,
		}
	}

	sets := make([]map[string]struct{}, len(transactions))
	for i, tx := range transactions {
		set := make(map[string]struct{}, len(tx))
		for _, item := range tx {
			if item == "" {
				return nil, newPrecondition("transactions", "non-empty item identifiers", "empty item in transaction "+strconv.Itoa(i))
			}
			if strings.Contains(item, keySeparator) {
				return nil, newPrecondition("transactions", "item identifiers without "+strconv.Quote(keySeparator),
					"item "+strconv.Quote(item)+" in transaction "+strconv.Itoa(i))
			}
			set[item] = struct{}{}
		}
		sets[i] = set
	}
	return sets, nil
}
