// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package store

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/basketminer/internal/apriori"
	"github.com/tomtom215/basketminer/internal/recommend"
)

// createTestStore opens an in-memory store closed at test cleanup.
func createTestStore(t *testing.T) *BadgerStore {
	t.Helper()

	s, err := Open(Config{InMemory: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return s
}

func testResult(t *testing.T) *apriori.Result {
	t.Helper()

	result, err := apriori.Run(context.Background(), []apriori.Transaction{
		{"milk", "bread"},
		{"milk", "bread", "butter"},
		{"milk"},
	}, apriori.Options{MinSupport: 0.5, MinConfidence: 0.5, MinLift: 0})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return result
}

func TestBadgerStore_Models(t *testing.T) {
	t.Parallel()

	s := createTestStore(t)
	ctx := context.Background()
	trainedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	models, err := s.LoadModels(ctx)
	if err != nil {
		t.Fatalf("LoadModels() on empty store error = %v", err)
	}
	if len(models) != 0 {
		t.Errorf("LoadModels() on empty store = %d models, want 0", len(models))
	}

	for _, segment := range []string{recommend.GlobalSegment, "family"} {
		for version := int64(1); version <= 2; version++ {
			err := s.SaveModel(ctx, &recommend.Model{
				Version:     version,
				Segment:     segment,
				Options:     apriori.DefaultOptions(),
				Result:      testResult(t),
				TrainedAt:   trainedAt,
				Fingerprint: "abc",
			})
			if err != nil {
				t.Fatalf("SaveModel(%s, v%d) error = %v", segment, version, err)
			}
		}
	}

	models, err = s.LoadModels(ctx)
	if err != nil {
		t.Fatalf("LoadModels() error = %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("LoadModels() = %d models, want latest of 2 segments", len(models))
	}
	for _, m := range models {
		if m.Version != 2 {
			t.Errorf("segment %s version = %d, want 2", m.Segment, m.Version)
		}
		if !m.TrainedAt.Equal(trainedAt) {
			t.Errorf("TrainedAt = %v, want %v", m.TrainedAt, trainedAt)
		}
		if m.Result == nil || len(m.Result.AssociationRules) == 0 {
			t.Errorf("segment %s lost its rules", m.Segment)
		}
	}
}

func TestBadgerStore_Runs(t *testing.T) {
	t.Parallel()

	s := createTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		err := s.SaveRun(ctx, &recommend.RunRecord{
			ID:        "run-" + string(rune('a'+i)),
			Trigger:   "schedule",
			Version:   int64(i + 1),
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			Duration:  time.Second,
		})
		if err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
	}

	runs, err := s.Runs(ctx, 3)
	if err != nil {
		t.Fatalf("Runs() error = %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Runs(3) = %d runs, want 3", len(runs))
	}
	for i, want := range []int64{5, 4, 3} {
		if runs[i].Version != want {
			t.Errorf("runs[%d].Version = %d, want %d", i, runs[i].Version, want)
		}
	}

	all, err := s.Runs(ctx, 0)
	if err != nil {
		t.Fatalf("Runs(0) error = %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Runs(0) = %d runs, want 5", len(all))
	}
}

func TestBadgerStore_Results(t *testing.T) {
	t.Parallel()

	s := createTestStore(t)
	ctx := context.Background()

	if _, ok, err := s.LoadResult(ctx, "missing"); err != nil || ok {
		t.Errorf("LoadResult(missing) = ok %v, err %v, want miss", ok, err)
	}

	want := testResult(t)
	if err := s.SaveResult(ctx, "fp1", want); err != nil {
		t.Fatalf("SaveResult() error = %v", err)
	}

	got, ok, err := s.LoadResult(ctx, "fp1")
	if err != nil || !ok {
		t.Fatalf("LoadResult() = ok %v, err %v, want hit", ok, err)
	}
	if len(got.FrequentItemsets) != len(want.FrequentItemsets) {
		t.Errorf("itemsets = %d, want %d", len(got.FrequentItemsets), len(want.FrequentItemsets))
	}
	if len(got.AssociationRules) != len(want.AssociationRules) {
		t.Errorf("rules = %d, want %d", len(got.AssociationRules), len(want.AssociationRules))
	}
	if got.Stats.TotalTransactions != 3 {
		t.Errorf("TotalTransactions = %d, want 3", got.Stats.TotalTransactions)
	}
}

func TestBadgerStore_CancelledContext(t *testing.T) {
	t.Parallel()

	s := createTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.SaveModel(ctx, &recommend.Model{Segment: "x"}); err == nil {
		t.Error("SaveModel() with cancelled context = nil error")
	}
	if _, err := s.LoadModels(ctx); err == nil {
		t.Error("LoadModels() with cancelled context = nil error")
	}
	if _, _, err := s.LoadResult(ctx, "fp"); err == nil {
		t.Error("LoadResult() with cancelled context = nil error")
	}
}

func TestBadgerStore_OnDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(Config{Path: dir})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.SaveModel(ctx, &recommend.Model{Version: 7, Segment: recommend.GlobalSegment, Result: testResult(t)}); err != nil {
		t.Fatalf("SaveModel() error = %v", err)
	}
	if err := s.RunGC(); err != nil {
		t.Errorf("RunGC() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(Config{Path: dir})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	models, err := reopened.LoadModels(ctx)
	if err != nil {
		t.Fatalf("LoadModels() error = %v", err)
	}
	if len(models) != 1 || models[0].Version != 7 {
		t.Errorf("LoadModels() after reopen = %+v, want version 7", models)
	}
}

func TestBadgerStore_EngineIntegration(t *testing.T) {
	t.Parallel()

	s := createTestStore(t)
	ctx := context.Background()

	engine, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	engine.SetModelStore(s)
	engine.SetResultStore(s)

	txs := []apriori.Transaction{{"a", "b"}, {"a", "b"}, {"a"}}
	opts := apriori.Options{MinSupport: 0.5, MinConfidence: 0.5, MinLift: 0}
	if _, cached, err := engine.MineAdHoc(ctx, txs, opts); err != nil || cached {
		t.Fatalf("MineAdHoc() = cached %v, err %v", cached, err)
	}

	fp := recommend.Fingerprint(txs, opts)
	if _, ok, _ := s.LoadResult(ctx, fp); !ok {
		t.Error("ad-hoc result was not persisted under its fingerprint")
	}
}
