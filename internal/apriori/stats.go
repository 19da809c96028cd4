// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package apriori

// Stats summarizes a dataset and the mining run over it.
type Stats struct {
	TotalTransactions int     `json:"totalTransactions"`
	UniqueItems       int     `json:"uniqueItems"`
	AvgBasketSize     float64 `json:"avgBasketSize"`
	MinBasketSize     int     `json:"minBasketSize"`
	MaxBasketSize     int     `json:"maxBasketSize"`
	TotalItemsets     int     `json:"totalItemsets"`
	MiningTimeMs      int64   `json:"miningTimeMs"`
}

// ComputeStats returns the dataset statistics of transactions. Basket sizes
// count distinct items. TotalItemsets and MiningTimeMs are left for the caller.
func ComputeStats(transactions []Transaction) Stats {
	stats := Stats{TotalTransactions: len(transactions)}
	if len(transactions) == 0 {
		return stats
	}

	items := make(map[string]struct{})
	total := 0
	for i, tx := range transactions {
		basket := make(map[string]struct{}, len(tx))
		for _, item := range tx {
			basket[item] = struct{}{}
			items[item] = struct{}{}
		}

		size := len(basket)
		total += size
		if i == 0 || size < stats.MinBasketSize {
			stats.MinBasketSize = size
		}
		if size > stats.MaxBasketSize {
			stats.MaxBasketSize = size
		}
	}

	stats.UniqueItems = len(items)
	stats.AvgBasketSize = float64(total) / float64(len(transactions))
	return stats
}
