// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

// Package recommend trains association rule models from customer baskets and
// serves "frequently bought together" recommendations from them.
//
// # Architecture
//
// The Engine sits between a DataProvider (where baskets come from) and the
// pure mining core in package apriori:
//
//   - Train loads every basket, mines a global model and, optionally, one
//     model per customer segment. Segments are mined concurrently, each with
//     its own support calculator.
//   - Recommend scores a basket against the rules of the requested segment,
//     falling back to the global model for unknown segments.
//   - MineAdHoc mines caller-supplied transactions, cached by fingerprint.
//
// # Model Lifecycle
//
// Every successful training run produces a new model version. Models are
// persisted through a ModelStore and restored by LoadModels at startup, so
// recommendations are available before the first run completes. A failed run
// leaves the previous models in service.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	engine.SetDataProvider(source)
//	engine.SetModelStore(store)
//
//	if err := engine.Train(ctx, "startup"); err != nil {
//	    return err
//	}
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    Basket: []string{"milk", "bread"},
//	    TopN:   5,
//	})
//
// # Thread Safety
//
// The engine is safe for concurrent use. Only one training run executes at a
// time; concurrent calls return ErrTrainingInProgress instead of queueing.
// Requests keep being served from the current models while a run is active,
// and the new model set is swapped in atomically when it completes.
package recommend
