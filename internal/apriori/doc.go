// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

/*
Package apriori implements frequent itemset mining and association rule
generation over transactional basket data using the classic Apriori
algorithm, plus a rule-based next-item recommendation scorer.

# Pipeline

A mining run moves through four stages:

 1. Dataset statistics over the raw transactions (ComputeStats)
 2. Level-wise frequent itemset mining, k = 1..MaxItemsetSize (MineItemsets)
 3. Association rule generation with eight interestingness metrics (GenerateRules)
 4. Optional recommendation scoring against a live basket (Recommend)

Run wires the stages together with a single SupportCalculator so that
supports computed while mining are reused by rule generation:

	result, err := apriori.Run(ctx, transactions, apriori.DefaultOptions())
	if err != nil {
	    return err
	}
	recs := apriori.Recommend([]string{"bread"}, result.AssociationRules, 5)

# Canonical Itemsets

Every Itemset handled by the package is canonical: its items are unique and
sorted lexicographically. The canonical items joined with "|" form the key
used by the support cache and by candidate deduplication.

# Determinism

Given the same transactions and thresholds, Run produces identical itemsets
and rules in identical order. The package holds no global state, performs no
I/O and does not log; callers own logging and persistence.

# Cancellation

Mining honors context cancellation between levels and periodically while
counting candidates. A cancelled run returns ctx.Err() and never a partial
result.
*/
package apriori
