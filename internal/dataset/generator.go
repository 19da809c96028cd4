// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package dataset

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/tomtom215/basketminer/internal/metrics"
	"github.com/tomtom215/basketminer/internal/recommend"
)

// Generation probabilities of the simulated store.
const (
	patternBasketRate = 0.75
	seasonalRate      = 0.20
	impulseRate       = 0.40
	preferredRate     = 0.70

	// maxDraws bounds the attempts to fill a basket with distinct items.
	maxDraws = 200
)

// pcgStream is the second PCG word; only the seed varies between generators.
const pcgStream = 0x9e3779b97f4a7c15

// Generator produces synthetic supermarket baskets. The same seed always
// yields the same baskets. A Generator is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, pcgStream))}
}

// Generate returns n baskets labelled with their customer segment.
func (g *Generator) Generate(n int) []recommend.Basket {
	baskets := make([]recommend.Basket, 0, n)
	for i := 0; i < n; i++ {
		seg := g.pickSegment()
		var items []string
		if g.rng.Float64() < patternBasketRate {
			items = g.patternBasket(seg)
		} else {
			items = g.randomBasket(seg)
		}
		if len(items) == 0 {
			continue
		}
		slices.Sort(items)
		baskets = append(baskets, recommend.Basket{
			ID:      fmt.Sprintf("syn-%06d", i+1),
			Segment: seg.Name,
			Items:   items,
		})
	}
	return baskets
}

func (g *Generator) pickSegment() Segment {
	roll := g.rng.Float64()
	cumulative := 0.0
	for _, seg := range Segments {
		cumulative += seg.Weight
		if roll <= cumulative {
			return seg
		}
	}
	return Segments[len(Segments)-1]
}

// pickTime chooses the time of day; evenings are the busiest.
func (g *Generator) pickTime() string {
	switch roll := g.rng.Float64(); {
	case roll < 0.30:
		return "morning"
	case roll < 0.50:
		return "afternoon"
	case roll < 0.90:
		return "evening"
	default:
		return "night"
	}
}

// patternBasket starts from a shopping pattern for the time of day, then adds
// preferred, seasonal and impulse items and fits the segment's basket size.
func (g *Generator) patternBasket(seg Segment) []string {
	season := seasons[g.rng.IntN(len(seasons))]
	groups := timeOfDay[g.pickTime()]
	group := groups[g.rng.IntN(len(groups))]

	var basket []string
	if group == "impulse" {
		basket = []string{pick(g.rng, impulseItems)}
	} else {
		options := patterns[group]
		basket = slices.Clone(options[g.rng.IntN(len(options))])
	}

	additions := g.rng.IntN(3) + 1
	for j := 0; j < additions; j++ {
		cat := catalog[categoryIndex[pick(g.rng, seg.Categories)]]
		basket = appendUnique(basket, pick(g.rng, cat.products))
	}

	if g.rng.Float64() < seasonalRate {
		basket = appendUnique(basket, pick(g.rng, seasonalItems[season]))
	}
	if g.rng.Float64() < impulseRate {
		basket = appendUnique(basket, pick(g.rng, impulseItems))
	}

	for draws := 0; len(basket) < seg.MinBasket && draws < maxDraws; draws++ {
		cat := catalog[g.rng.IntN(len(catalog))]
		basket = appendUnique(basket, pick(g.rng, cat.products))
	}
	if len(basket) > seg.MaxBasket {
		basket = basket[:seg.MaxBasket]
	}
	return basket
}

// randomBasket draws a basket of the segment's size, mostly from its
// preferred categories.
func (g *Generator) randomBasket(seg Segment) []string {
	size := seg.MinBasket + g.rng.IntN(seg.MaxBasket-seg.MinBasket+1)
	basket := make([]string, 0, size)
	for draws := 0; len(basket) < size && draws < maxDraws; draws++ {
		var cat category
		if g.rng.Float64() < preferredRate {
			cat = catalog[categoryIndex[pick(g.rng, seg.Categories)]]
		} else {
			cat = catalog[g.rng.IntN(len(catalog))]
		}
		basket = appendUnique(basket, pick(g.rng, cat.products))
	}
	return basket
}

func pick(rng *rand.Rand, items []string) string {
	return items[rng.IntN(len(items))]
}

func appendUnique(basket []string, item string) []string {
	if slices.Contains(basket, item) {
		return basket
	}
	return append(basket, item)
}

// SyntheticSource serves generated baskets. Every call returns the same
// baskets for the same count and seed.
type SyntheticSource struct {
	count int
	seed  uint64
}

// NewSyntheticSource creates a source of count baskets generated from seed.
func NewSyntheticSource(count int, seed uint64) *SyntheticSource {
	return &SyntheticSource{count: count, seed: seed}
}

// Name identifies the source in metrics and logs.
func (s *SyntheticSource) Name() string {
	return "synthetic"
}

// GetBaskets implements recommend.DataProvider.
func (s *SyntheticSource) GetBaskets(ctx context.Context) ([]recommend.Basket, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		metrics.RecordDatasetLoad(s.Name(), time.Since(start), err)
		return nil, err
	}
	baskets := NewGenerator(s.seed).Generate(s.count)
	metrics.RecordDatasetLoad(s.Name(), time.Since(start), nil)
	return baskets, nil
}

var _ recommend.DataProvider = (*SyntheticSource)(nil)
