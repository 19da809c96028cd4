// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

// Package store persists trained models, training runs and ad-hoc mining
// results in BadgerDB.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/basketminer/internal/apriori"
	"github.com/tomtom215/basketminer/internal/logging"
	"github.com/tomtom215/basketminer/internal/recommend"
)

// Key prefixes for BadgerDB storage
const (
	modelKeyPrefix  = "model:"
	runKeyPrefix    = "run:"
	resultKeyPrefix = "result:"
)

// DefaultResultTTL is how long ad-hoc mining results are kept.
const DefaultResultTTL = 24 * time.Hour

// Config configures the BadgerDB store.
type Config struct {
	Path      string
	InMemory  bool
	ResultTTL time.Duration
}

// BadgerStore implements recommend.ModelStore and recommend.ResultStore.
type BadgerStore struct {
	db        *badger.DB
	resultTTL time.Duration
}

// Open opens (or creates) the store described by cfg.
func Open(cfg Config) (*BadgerStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Model store opened")

	return NewBadgerStore(db, cfg.ResultTTL), nil
}

// NewBadgerStore wraps an open BadgerDB. A non-positive resultTTL uses
// DefaultResultTTL.
func NewBadgerStore(db *badger.DB, resultTTL time.Duration) *BadgerStore {
	if resultTTL <= 0 {
		resultTTL = DefaultResultTTL
	}
	return &BadgerStore{db: db, resultTTL: resultTTL}
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// SaveModel stores model as the latest model of its segment.
func (s *BadgerStore) SaveModel(ctx context.Context, model *recommend.Model) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(modelKeyPrefix+model.Segment), data)
	})
}

// LoadModels returns the latest model of every segment.
func (s *BadgerStore) LoadModels(ctx context.Context) ([]*recommend.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var models []*recommend.Model
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(modelKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var model recommend.Model
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &model)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			models = append(models, &model)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load models: %w", err)
	}
	return models, nil
}

// runKey sorts runs chronologically.
func runKey(run *recommend.RunRecord) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", runKeyPrefix, run.StartedAt.UnixNano(), run.ID))
}

// SaveRun records a training run.
func (s *BadgerStore) SaveRun(ctx context.Context, run *recommend.RunRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(runKey(run), data)
	})
}

// Runs returns up to limit training runs, most recent first. A non-positive
// limit returns every run.
func (s *BadgerStore) Runs(ctx context.Context, limit int) ([]*recommend.RunRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var runs []*recommend.RunRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(runKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration starts from the largest key with the prefix.
		seek := []byte(runKeyPrefix + "\xff")
		for it.Seek(seek); it.ValidForPrefix(opts.Prefix); it.Next() {
			var run recommend.RunRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &run)
			}); err != nil {
				return err
			}
			runs = append(runs, &run)
			if limit > 0 && len(runs) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// SaveResult caches an ad-hoc mining result under its fingerprint. Entries
// expire after the store's result TTL.
func (s *BadgerStore) SaveResult(ctx context.Context, fingerprint string, result *apriori.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(resultKeyPrefix+fingerprint), data).WithTTL(s.resultTTL)
		return txn.SetEntry(entry)
	})
}

// LoadResult returns the cached result for fingerprint, if any.
func (s *BadgerStore) LoadResult(ctx context.Context, fingerprint string) (*apriori.Result, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var result apriori.Result
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(resultKeyPrefix + fingerprint))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &result)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load result: %w", err)
	}
	return &result, true, nil
}

// RunGC reclaims value log space. Badger reports ErrNoRewrite when there was
// nothing to collect; that is not an error.
func (s *BadgerStore) RunGC() error {
	if s.db.Opts().InMemory {
		return nil
	}
	err := s.db.RunValueLogGC(0.5)
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		return err
	}
	return nil
}

var (
	_ recommend.ModelStore  = (*BadgerStore)(nil)
	_ recommend.ResultStore = (*BadgerStore)(nil)
)
