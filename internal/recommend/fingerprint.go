// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package recommend

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strconv"
	"strings"

	"github.com/tomtom215/basketminer/internal/apriori"
)

// Fingerprint identifies a mining input. Transactions are canonicalized
// (items sorted and deduplicated, transactions sorted) so reordering the
// input does not change the fingerprint; the thresholds are part of it.
func Fingerprint(transactions []apriori.Transaction, opts apriori.Options) string {
	lines := make([]string, len(transactions))
	for i, tx := range transactions {
		lines[i] = encodeItems(tx)
	}
	slices.Sort(lines)

	h := sha256.New()
	for _, line := range lines {
		h.Write([]byte(line))
		h.Write([]byte{'\n'})
	}
	h.Write([]byte(strconv.FormatFloat(opts.MinSupport, 'g', -1, 64)))
	h.Write([]byte{'/'})
	h.Write([]byte(strconv.FormatFloat(opts.MinConfidence, 'g', -1, 64)))
	h.Write([]byte{'/'})
	h.Write([]byte(strconv.FormatFloat(opts.MinLift, 'g', -1, 64)))

	return hex.EncodeToString(h.Sum(nil))
}

// encodeItems canonicalizes items and quotes each one, so no item content
// can make two different sets encode alike.
func encodeItems(items []string) string {
	set := apriori.NewItemset(items...)
	var b strings.Builder
	for i, item := range set {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(item))
	}
	return b.String()
}
