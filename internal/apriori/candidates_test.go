// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package apriori

import (
	"testing"
)

func frequent(keys ...[]string) []FrequentItemset {
	out := make([]FrequentItemset, 0, len(keys))
	for _, items := range keys {
		out = append(out, FrequentItemset{Items: NewItemset(items...)})
	}
	return out
}

func candidateKeys(candidates []Itemset) []string {
	keys := make([]string, len(candidates))
	for i, c := range candidates {
		keys[i] = c.Key()
	}
	return keys
}

func TestGenerateCandidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		prev []FrequentItemset
		k    int
		want []string
	}{
		{
			name: "pairs from singletons",
			prev: frequent([]string{"c"}, []string{"a"}, []string{"b"}),
			k:    2,
			want: []string{"a|b", "a|c", "b|c"},
		},
		{
			name: "join on shared prefix",
			prev: frequent([]string{"a", "b"}, []string{"a", "c"}, []string{"b", "c"}),
			k:    3,
			want: []string{"a|b|c"},
		},
		{
			name: "pruned when a subset is infrequent",
			prev: frequent([]string{"a", "b"}, []string{"a", "c"}),
			k:    3,
			want: []string{},
		},
		{
			name: "different prefixes never join",
			prev: frequent([]string{"a", "b"}, []string{"c", "d"}),
			k:    3,
			want: []string{},
		},
		{
			name: "four-itemset from complete triples",
			prev: frequent(
				[]string{"a", "b", "c"}, []string{"a", "b", "d"},
				[]string{"a", "c", "d"}, []string{"b", "c", "d"},
			),
			k:    4,
			want: []string{"a|b|c|d"},
		},
		{
			name: "single input",
			prev: frequent([]string{"a"}),
			k:    2,
			want: []string{},
		},
		{
			name: "k below two",
			prev: frequent([]string{"a"}, []string{"b"}),
			k:    1,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := candidateKeys(GenerateCandidates(tt.prev, tt.k))
			if len(got) != len(tt.want) {
				t.Fatalf("GenerateCandidates() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("candidate[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGenerateCandidates_NoDuplicates(t *testing.T) {
	t.Parallel()

	prev := frequent(
		[]string{"a", "b"}, []string{"a", "c"}, []string{"a", "d"},
		[]string{"b", "c"}, []string{"b", "d"}, []string{"c", "d"},
	)
	got := GenerateCandidates(prev, 3)

	seen := make(map[string]bool)
	for _, c := range got {
		if seen[c.Key()] {
			t.Errorf("duplicate candidate %v", c)
		}
		seen[c.Key()] = true
		if len(c) != 3 {
			t.Errorf("candidate %v has size %d, want 3", c, len(c))
		}
	}
	if len(got) != 4 {
		t.Errorf("len(candidates) = %d, want 4", len(got))
	}
}
