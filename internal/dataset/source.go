// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

// Package dataset provides the basket sources models are trained on: a seeded
// synthetic supermarket, DuckDB tables and CSV files read through DuckDB.
package dataset

import (
	"context"
	"fmt"

	"github.com/tomtom215/basketminer/internal/config"
	"github.com/tomtom215/basketminer/internal/recommend"
)

// Source is a named basket source.
type Source interface {
	recommend.DataProvider
	Name() string
}

// Open builds the source selected by cfg. The returned close function
// releases any database handle and is never nil.
func Open(ctx context.Context, cfg config.DatasetConfig) (Source, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Source {
	case config.SourceSynthetic:
		return NewSyntheticSource(cfg.SyntheticCount, cfg.Seed), noop, nil

	case config.SourceCSV:
		db, err := OpenDuckDB(ctx, ":memory:")
		if err != nil {
			return nil, noop, err
		}
		return NewCSVSource(db, cfg.Path), db.Close, nil

	case config.SourceDuckDB:
		db, err := OpenDuckDB(ctx, cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		src, err := NewDuckDBSource(db, cfg.Table)
		if err != nil {
			closeQuietly(db)
			return nil, noop, err
		}
		return src, db.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown dataset source %q", cfg.Source)
	}
}

var (
	_ Source = (*SyntheticSource)(nil)
	_ Source = (*DuckDBSource)(nil)
)
