// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package dataset

import (
	"context"
	"errors"
	"math"
	"reflect"
	"slices"
	"testing"

	"github.com/tomtom215/basketminer/internal/apriori"
	"github.com/tomtom215/basketminer/internal/recommend"
)

func TestSegments_WeightsSumToOne(t *testing.T) {
	t.Parallel()

	total := 0.0
	for _, seg := range Segments {
		total += seg.Weight
		if seg.MinBasket < 1 || seg.MaxBasket < seg.MinBasket {
			t.Errorf("segment %s basket size [%d, %d] is invalid", seg.Name, seg.MinBasket, seg.MaxBasket)
		}
		for _, cat := range seg.Categories {
			if _, ok := categoryIndex[cat]; !ok {
				t.Errorf("segment %s prefers unknown category %q", seg.Name, cat)
			}
		}
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("sum of segment weights = %v, want 1", total)
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	t.Parallel()

	a := NewGenerator(42).Generate(200)
	b := NewGenerator(42).Generate(200)
	if !reflect.DeepEqual(a, b) {
		t.Error("Generate() with the same seed produced different baskets")
	}

	c := NewGenerator(43).Generate(200)
	if reflect.DeepEqual(a, c) {
		t.Error("Generate() with different seeds produced identical baskets")
	}
}

func TestGenerator_BasketShape(t *testing.T) {
	t.Parallel()

	maxBasket := make(map[string]int, len(Segments))
	for _, seg := range Segments {
		maxBasket[seg.Name] = seg.MaxBasket
	}

	baskets := NewGenerator(7).Generate(500)
	if len(baskets) != 500 {
		t.Fatalf("len(Generate(500)) = %d, want 500", len(baskets))
	}

	ids := make(map[string]struct{}, len(baskets))
	seen := make(map[string]int)
	for _, b := range baskets {
		if _, dup := ids[b.ID]; dup {
			t.Errorf("duplicate basket id %s", b.ID)
		}
		ids[b.ID] = struct{}{}

		limit, ok := maxBasket[b.Segment]
		if !ok {
			t.Errorf("basket %s has unknown segment %q", b.ID, b.Segment)
			continue
		}
		seen[b.Segment]++

		if len(b.Items) == 0 || len(b.Items) > limit {
			t.Errorf("basket %s (%s) has %d items, want 1..%d", b.ID, b.Segment, len(b.Items), limit)
		}
		if !slices.IsSorted(b.Items) {
			t.Errorf("basket %s items not sorted: %v", b.ID, b.Items)
		}
		if len(slices.Compact(slices.Clone(b.Items))) != len(b.Items) {
			t.Errorf("basket %s has duplicate items: %v", b.ID, b.Items)
		}
	}

	// With 500 draws the two largest segments always appear.
	for _, name := range []string{"budget", "regular"} {
		if seen[name] == 0 {
			t.Errorf("segment %s never generated", name)
		}
	}
}

func TestGenerator_ProducesAssociations(t *testing.T) {
	t.Parallel()

	baskets := NewGenerator(42).Generate(1000)
	txs := make([]apriori.Transaction, len(baskets))
	for i, b := range baskets {
		txs[i] = b.Items
	}

	result, err := apriori.Run(context.Background(), txs, apriori.Options{
		MinSupport:    0.01,
		MinConfidence: 0.3,
		MinLift:       1.0,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.FrequentItemsets) == 0 {
		t.Error("synthetic data has no frequent itemsets")
	}
	if len(result.AssociationRules) == 0 {
		t.Error("synthetic data has no association rules")
	}
}

func TestSyntheticSource_GetBaskets(t *testing.T) {
	t.Parallel()

	src := NewSyntheticSource(50, 1)
	if src.Name() != "synthetic" {
		t.Errorf("Name() = %q, want synthetic", src.Name())
	}

	first, err := src.GetBaskets(context.Background())
	if err != nil {
		t.Fatalf("GetBaskets() error = %v", err)
	}
	second, _ := src.GetBaskets(context.Background())
	if len(first) != 50 || !reflect.DeepEqual(first, second) {
		t.Error("GetBaskets() should return the same 50 baskets on every call")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.GetBaskets(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("GetBaskets(cancelled) error = %v, want context.Canceled", err)
	}
}

func TestSyntheticSource_TrainsEngine(t *testing.T) {
	t.Parallel()

	cfg := recommend.DefaultConfig()
	cfg.Options = apriori.Options{MinSupport: 0.1, MinConfidence: 0.3, MinLift: 1.0}
	engine, err := recommend.NewEngine(cfg, testLogger())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	engine.SetDataProvider(NewSyntheticSource(800, 42))

	if err := engine.Train(context.Background(), "test"); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	status := engine.Status()
	if len(status.Segments) < 2 {
		t.Errorf("trained %d segments, want global plus customer segments", len(status.Segments))
	}
}
