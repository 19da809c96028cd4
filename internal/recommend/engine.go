// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package recommend

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/basketminer/internal/apriori"
	"github.com/tomtom215/basketminer/internal/cache"
	"github.com/tomtom215/basketminer/internal/logging"
	"github.com/tomtom215/basketminer/internal/metrics"
)

// Cache names used in metrics labels.
const (
	recommendationCache = "recommendations"
	miningCache         = "mining"
)

// TriggerAdHoc labels mining runs started by ad-hoc requests.
const TriggerAdHoc = "adhoc"

// Engine trains association rule models from baskets and serves
// recommendations from them. It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	// trainMu serializes training runs. statusMu guards status and models so
	// readers are never blocked by a run in progress.
	trainMu  sync.Mutex
	statusMu sync.RWMutex
	status   TrainingStatus
	models   map[string]*Model
	version  atomic.Int64

	recCache   *cache.LRUCache[*Response]
	adhocCache *cache.LRUCache[*apriori.Result]

	dataProvider DataProvider
	store        ModelStore
	results      ResultStore
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		models: make(map[string]*Model),
	}
	if cfg.Cache.Enabled {
		e.recCache = cache.NewLRUCache[*Response](cfg.Cache.Capacity, cfg.Cache.TTL)
		e.adhocCache = cache.NewLRUCache[*apriori.Result](cfg.Cache.Capacity, cfg.Cache.TTL)
	}
	return e, nil
}

// SetDataProvider sets the basket source used by Train.
func (e *Engine) SetDataProvider(dp DataProvider) {
	e.dataProvider = dp
}

// SetModelStore sets where trained models and run records are persisted.
func (e *Engine) SetModelStore(store ModelStore) {
	e.store = store
}

// SetResultStore sets the durable cache behind MineAdHoc.
func (e *Engine) SetResultStore(store ResultStore) {
	e.results = store
}

// ActionableFilter returns the configured actionable view.
func (e *Engine) ActionableFilter() apriori.ActionableFilter {
	return e.config.Actionable
}

// Train mines the baskets of the data provider into a new model version: one
// global model and, when segment mining is enabled, one model per segment.
// Returns ErrTrainingInProgress immediately if another run is active.
func (e *Engine) Train(ctx context.Context, trigger string) error {
	if !e.trainMu.TryLock() {
		return ErrTrainingInProgress
	}
	defer e.trainMu.Unlock()

	if e.dataProvider == nil {
		return ErrNoDataProvider
	}

	start := time.Now()
	runID := logging.GenerateRunID()
	logger := e.logger.With().
		Str("run_id", runID).
		Str("trigger", trigger).
		Logger()

	e.setTraining(true)
	logger.Info().Msg("starting model training")

	trainCtx, cancel := context.WithTimeout(logging.ContextWithRunID(ctx, runID), e.config.Limits.TrainingTimeout)
	defer cancel()

	models, transactions, err := e.train(trainCtx, logger)
	duration := time.Since(start)

	run := &RunRecord{
		ID:           runID,
		Trigger:      trigger,
		StartedAt:    start,
		Duration:     duration,
		Transactions: transactions,
	}

	if err != nil {
		e.finishTraining(duration, err)
		run.Error = err.Error()
		e.saveRun(ctx, run, logger)
		metrics.RecordMiningRun(trigger, runOutcome(err), transactions, duration)
		logger.Error().Err(err).Dur("duration", duration).Msg("model training failed")
		return err
	}

	version := e.version.Add(1)
	trainedAt := time.Now()
	for _, model := range models {
		model.Version = version
		model.TrainedAt = trainedAt
		run.Segments = append(run.Segments, model.Segment)
	}
	run.Version = version

	e.persistModels(ctx, models, logger)
	e.publish(models, version, trainedAt)
	e.finishTraining(duration, nil)
	e.saveRun(ctx, run, logger)

	metrics.RecordMiningRun(trigger, "success", transactions, duration)
	logger.Info().
		Int64("version", version).
		Int("segments", len(models)).
		Int("transactions", transactions).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("model training complete")

	return nil
}

// train loads the baskets and mines every segment concurrently.
func (e *Engine) train(ctx context.Context, logger zerolog.Logger) ([]*Model, int, error) {
	baskets, err := e.dataProvider.GetBaskets(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("get baskets: %w", err)
	}

	groups := e.groupBaskets(baskets)
	global := groups[GlobalSegment]

	logger.Info().
		Int("baskets", len(baskets)).
		Int("segments", len(groups)-1).
		Msg("loaded training data")

	segments := make([]string, 0, len(groups))
	for segment := range groups {
		segments = append(segments, segment)
	}
	slices.SortFunc(segments, compareSegments)

	type mined struct {
		model *Model
		err   error
	}
	results := make([]mined, len(segments))

	var wg sync.WaitGroup
	for i, segment := range segments {
		wg.Add(1)
		go func(idx int, seg string) {
			defer wg.Done()
			model, err := e.mineSegment(ctx, seg, groups[seg])
			results[idx] = mined{model: model, err: err}
		}(i, segment)
	}
	wg.Wait()

	models := make([]*Model, 0, len(segments))
	for i, r := range results {
		if r.err == nil {
			models = append(models, r.model)
			continue
		}
		if segments[i] == GlobalSegment || ctx.Err() != nil {
			return nil, len(global), fmt.Errorf("mine segment %s: %w", segments[i], r.err)
		}
		logger.Warn().
			Str("segment", segments[i]).
			Err(r.err).
			Msg("segment mining failed, segment skipped")
	}

	return models, len(global), nil
}

// groupBaskets splits baskets into the global transaction list plus one list
// per segment. Baskets without a segment only feed the global model.
func (e *Engine) groupBaskets(baskets []Basket) map[string][]apriori.Transaction {
	groups := map[string][]apriori.Transaction{
		GlobalSegment: make([]apriori.Transaction, 0, len(baskets)),
	}
	for _, b := range baskets {
		tx := apriori.Transaction(b.Items)
		groups[GlobalSegment] = append(groups[GlobalSegment], tx)
		if !e.config.SegmentMining || b.Segment == "" || b.Segment == GlobalSegment {
			continue
		}
		groups[b.Segment] = append(groups[b.Segment], tx)
	}
	return groups
}

func (e *Engine) mineSegment(ctx context.Context, segment string, txs []apriori.Transaction) (*Model, error) {
	result, err := apriori.Run(ctx, txs, e.config.Options)
	if err != nil {
		return nil, err
	}
	return &Model{
		Segment:     segment,
		Options:     e.config.Options,
		Result:      result,
		Fingerprint: Fingerprint(txs, e.config.Options),
	}, nil
}

// persistModels saves models to the store. A failed save is logged and the
// model is still served from memory.
func (e *Engine) persistModels(ctx context.Context, models []*Model, logger zerolog.Logger) {
	if e.store == nil {
		return
	}
	for _, model := range models {
		if err := e.store.SaveModel(ctx, model); err != nil {
			logger.Error().
				Err(err).
				Str("segment", model.Segment).
				Int64("version", model.Version).
				Msg("failed to persist model")
		}
	}
}

func (e *Engine) saveRun(ctx context.Context, run *RunRecord, logger zerolog.Logger) {
	if e.store == nil {
		return
	}
	if err := e.store.SaveRun(ctx, run); err != nil {
		logger.Warn().Err(err).Msg("failed to record training run")
	}
}

// publish swaps in a new model set and invalidates cached recommendations.
func (e *Engine) publish(models []*Model, version int64, trainedAt time.Time) {
	next := make(map[string]*Model, len(models))
	for _, model := range models {
		next[model.Segment] = model
		metrics.RecordModel(model.Segment, len(model.Result.FrequentItemsets), len(model.Result.AssociationRules))
	}

	e.statusMu.Lock()
	e.models = next
	e.status.ModelVersion = version
	e.status.LastTrainedAt = trainedAt
	e.statusMu.Unlock()

	if e.recCache != nil {
		e.recCache.Clear()
		metrics.CacheSize.WithLabelValues(recommendationCache).Set(0)
	}
	metrics.RecordModelVersion(version, trainedAt)
}

func (e *Engine) setTraining(training bool) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()

	e.status.IsTraining = training
	if training {
		e.status.LastError = ""
	}
}

func (e *Engine) finishTraining(duration time.Duration, err error) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()

	e.status.IsTraining = false
	e.status.LastTrainingDurationMS = duration.Milliseconds()
	if err != nil {
		e.status.LastError = err.Error()
	}
}

// LoadModels restores the latest persisted model set so recommendations are
// served before the first training run. Segment models from an older version
// than the global model are ignored. Returns the restored version, or zero if
// the store holds no global model.
func (e *Engine) LoadModels(ctx context.Context) (int64, error) {
	if e.store == nil {
		return 0, nil
	}

	stored, err := e.store.LoadModels(ctx)
	if err != nil {
		return 0, fmt.Errorf("load models: %w", err)
	}

	var global *Model
	for _, model := range stored {
		if model.Segment == GlobalSegment {
			global = model
			break
		}
	}
	if global == nil {
		e.logger.Info().Int("stored", len(stored)).Msg("no persisted global model")
		return 0, nil
	}

	models := make([]*Model, 0, len(stored))
	for _, model := range stored {
		if model.Version == global.Version && model.Result != nil {
			models = append(models, model)
		}
	}

	// Keep version numbers increasing across restarts.
	for {
		current := e.version.Load()
		if current >= global.Version || e.version.CompareAndSwap(current, global.Version) {
			break
		}
	}

	e.publish(models, global.Version, global.TrainedAt)

	e.logger.Info().
		Int64("version", global.Version).
		Int("segments", len(models)).
		Time("trained_at", global.TrainedAt).
		Msg("restored persisted models")

	return global.Version, nil
}

// Model returns the model serving segment. Unknown or empty segments fall
// back to the global model. The returned model must not be modified.
func (e *Engine) Model(segment string) (*Model, error) {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()

	if segment == "" {
		segment = GlobalSegment
	}
	if model, ok := e.models[segment]; ok {
		return model, nil
	}
	if model, ok := e.models[GlobalSegment]; ok {
		return model, nil
	}
	return nil, ErrModelNotTrained
}

// Recommend scores the next items for a basket with the rules of the
// requested segment's model.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	model, err := e.Model(req.Segment)
	if err != nil {
		metrics.RecordRecommendation("not_trained", time.Since(start))
		return nil, err
	}

	topN := e.clampTopN(req.TopN)
	logger := e.logger.With().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Str("segment", model.Segment).
		Logger()

	key := recommendationKey(model, topN, req)
	if e.recCache != nil {
		if resp, ok := e.recCache.Get(key); ok {
			metrics.RecordCacheLookup(recommendationCache, true)
			metrics.RecordRecommendation("cache_hit", time.Since(start))
			hit := *resp
			hit.CacheHit = true
			logger.Debug().Msg("cache hit")
			return &hit, nil
		}
		metrics.RecordCacheLookup(recommendationCache, false)
	}

	rules := model.Result.AssociationRules
	if req.Actionable {
		rules = e.config.Actionable.Apply(rules)
	}

	resp := &Response{
		Recommendations: apriori.Recommend(req.Basket, rules, topN),
		Segment:         model.Segment,
		Actionable:      req.Actionable,
		RulesConsidered: len(rules),
		ModelVersion:    model.Version,
	}

	if e.recCache != nil {
		e.recCache.Add(key, resp)
		metrics.CacheSize.WithLabelValues(recommendationCache).Set(float64(e.recCache.Len()))
	}

	metrics.RecordRecommendation("success", time.Since(start))
	logger.Debug().
		Int("basket", len(req.Basket)).
		Int("rules", len(rules)).
		Int("returned", len(resp.Recommendations)).
		Msg("recommendation complete")

	return resp, nil
}

// clampTopN applies the default and maximum result counts.
func (e *Engine) clampTopN(topN int) int {
	if topN <= 0 {
		return e.config.Limits.DefaultTopN
	}
	if topN > e.config.Limits.MaxTopN {
		return e.config.Limits.MaxTopN
	}
	return topN
}

// recommendationKey identifies a response: the model version, the request
// shape and the canonical basket.
//
//nolint:gocritic // hugeParam: req passed by value for simplicity
func recommendationKey(model *Model, topN int, req Request) string {
	return fmt.Sprintf("rec:%s:%d:%d:%t:%s",
		model.Segment, model.Version, topN, req.Actionable, encodeItems(req.Basket))
}

// Rules returns the association rules of a segment's model and the segment
// actually serving them.
func (e *Engine) Rules(segment string) ([]apriori.Rule, string, error) {
	model, err := e.Model(segment)
	if err != nil {
		return nil, "", err
	}
	return model.Result.AssociationRules, model.Segment, nil
}

// ActionableRules returns the rules of a segment's model that pass filter, or
// the configured actionable filter when filter is nil.
func (e *Engine) ActionableRules(segment string, filter *apriori.ActionableFilter) ([]apriori.Rule, string, error) {
	rules, served, err := e.Rules(segment)
	if err != nil {
		return nil, "", err
	}
	f := e.config.Actionable
	if filter != nil {
		f = *filter
	}
	return f.Apply(rules), served, nil
}

// Itemsets returns the frequent itemsets of a segment's model having at least
// minSize items.
func (e *Engine) Itemsets(segment string, minSize int) ([]apriori.FrequentItemset, string, error) {
	model, err := e.Model(segment)
	if err != nil {
		return nil, "", err
	}
	if minSize <= 1 {
		return model.Result.FrequentItemsets, model.Segment, nil
	}
	out := make([]apriori.FrequentItemset, 0, len(model.Result.FrequentItemsets))
	for _, fi := range model.Result.FrequentItemsets {
		if fi.Size() >= minSize {
			out = append(out, fi)
		}
	}
	return out, model.Segment, nil
}

// Status returns the training status with one entry per served segment, the
// global segment first.
func (e *Engine) Status() TrainingStatus {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()

	status := e.status
	status.Segments = make([]SegmentStatus, 0, len(e.models))
	for _, model := range e.models {
		status.Segments = append(status.Segments, SegmentStatus{
			Segment:      model.Segment,
			Version:      model.Version,
			TrainedAt:    model.TrainedAt,
			Itemsets:     len(model.Result.FrequentItemsets),
			Rules:        len(model.Result.AssociationRules),
			Transactions: model.Result.Stats.TotalTransactions,
			Stats:        model.Result.Stats,
		})
	}
	slices.SortFunc(status.Segments, func(a, b SegmentStatus) int {
		return compareSegments(a.Segment, b.Segment)
	})
	status.Caches = e.cacheStats()
	return status
}

func (e *Engine) cacheStats() map[string]cache.Stats {
	stats := make(map[string]cache.Stats, 2)
	if e.recCache != nil {
		stats[recommendationCache] = e.recCache.Stats()
	}
	if e.adhocCache != nil {
		stats[miningCache] = e.adhocCache.Stats()
	}
	return stats
}

// SweepCaches drops expired entries from the in-memory caches, refreshes the
// cache size gauges and returns the number of entries removed.
func (e *Engine) SweepCaches() int {
	removed := 0
	if e.recCache != nil {
		removed += e.recCache.CleanupExpired()
	}
	if e.adhocCache != nil {
		removed += e.adhocCache.CleanupExpired()
	}
	for name, st := range e.cacheStats() {
		metrics.CacheSize.WithLabelValues(name).Set(float64(st.Size))
	}
	return removed
}

// IsTrained reports whether a global model is being served.
func (e *Engine) IsTrained() bool {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()

	_, ok := e.models[GlobalSegment]
	return ok
}

// MineAdHoc mines caller-supplied transactions without touching the served
// models. Results are cached by fingerprint in memory and, when a result
// store is set, durably. The bool result reports a cache hit.
func (e *Engine) MineAdHoc(ctx context.Context, transactions []apriori.Transaction, opts apriori.Options) (*apriori.Result, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}

	fingerprint := Fingerprint(transactions, opts)
	logger := e.logger.With().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Str("fingerprint", fingerprint[:12]).
		Logger()

	if result, ok := e.cachedResult(ctx, fingerprint, logger); ok {
		return result, true, nil
	}

	start := time.Now()
	result, err := apriori.Run(ctx, transactions, opts)
	duration := time.Since(start)
	if err != nil {
		metrics.RecordMiningRun(TriggerAdHoc, runOutcome(err), len(transactions), duration)
		return nil, false, err
	}
	metrics.RecordMiningRun(TriggerAdHoc, "success", len(transactions), duration)

	if e.adhocCache != nil {
		e.adhocCache.Add(fingerprint, result)
		metrics.CacheSize.WithLabelValues(miningCache).Set(float64(e.adhocCache.Len()))
	}
	if e.results != nil {
		if err := e.results.SaveResult(ctx, fingerprint, result); err != nil {
			logger.Warn().Err(err).Msg("failed to persist mining result")
		}
	}

	logger.Debug().
		Int("transactions", len(transactions)).
		Int("itemsets", len(result.FrequentItemsets)).
		Int("rules", len(result.AssociationRules)).
		Dur("duration", duration).
		Msg("ad-hoc mining complete")

	return result, false, nil
}

// cachedResult looks a fingerprint up in memory, then in the result store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) cachedResult(ctx context.Context, fingerprint string, logger zerolog.Logger) (*apriori.Result, bool) {
	if e.adhocCache != nil {
		if result, ok := e.adhocCache.Get(fingerprint); ok {
			metrics.RecordCacheLookup(miningCache, true)
			return result, true
		}
		metrics.RecordCacheLookup(miningCache, false)
	}

	if e.results == nil {
		return nil, false
	}
	result, ok, err := e.results.LoadResult(ctx, fingerprint)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load persisted mining result")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	if e.adhocCache != nil {
		e.adhocCache.Add(fingerprint, result)
	}
	return result, true
}

// runOutcome labels a failed run for metrics.
func runOutcome(err error) string {
	switch {
	case apriori.IsPrecondition(err):
		return "invalid"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}

// compareSegments orders the global segment first, then by name.
func compareSegments(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == GlobalSegment:
		return -1
	case b == GlobalSegment:
		return 1
	case a < b:
		return -1
	default:
		return 1
	}
}
