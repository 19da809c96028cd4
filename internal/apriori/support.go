// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package apriori

// SupportValue is the support of an itemset as a fraction and as a raw count.
type SupportValue struct {
	Support float64
	Count   int
}

// SupportCalculator computes itemset support against a fixed transaction list
// and memoizes results by itemset key. A calculator belongs to a single mining
// run; create a new one for every run.
//
// SupportCalculator is not safe for concurrent use.
type SupportCalculator struct {
	transactions []map[string]struct{}
	cache        map[string]SupportValue
}

// NewSupportCalculator validates transactions and returns a calculator over
// them. It returns a *PreconditionError for an empty list or an empty item.
func NewSupportCalculator(transactions []Transaction) (*SupportCalculator, error) {
	sets, err := normalizeTransactions(transactions)
	if err != nil {
		return nil, err
	}
	return &SupportCalculator{
		transactions: sets,
		cache:        make(map[string]SupportValue),
	}, nil
}

// Support returns the fraction and count of transactions containing every
// item of items. Non-canonical input is canonicalized before lookup. An item
// containing the key separator cannot occur in any transaction, so its
// itemset has zero support and is never cached.
func (c *SupportCalculator) Support(items Itemset) SupportValue {
	canonical := NewItemset(items...)
	if canonical.hasSeparator() {
		return SupportValue{}
	}
	key := canonical.Key()
	if v, ok := c.cache[key]; ok {
		return v
	}

	count := 0
	for _, tx := range c.transactions {
		if canonical.SubsetOf(tx) {
			count++
		}
	}

	v := SupportValue{
		Support: float64(count) / float64(len(c.transactions)),
		Count:   count,
	}
	c.cache[key] = v
	return v
}

// Len returns the number of transactions, the support denominator.
func (c *SupportCalculator) Len() int {
	return len(c.transactions)
}

func (c *SupportCalculator) cacheSize() int {
	return len(c.cache)
}

// remember seeds the cache with a support already counted elsewhere.
func (c *SupportCalculator) remember(items Itemset, count int) SupportValue {
	v := SupportValue{
		Support: float64(count) / float64(len(c.transactions)),
		Count:   count,
	}
	c.cache[items.Key()] = v
	return v
}
