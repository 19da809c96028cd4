// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/basketminer/internal/apriori"
	"github.com/tomtom215/basketminer/internal/cache"
)

// GlobalSegment names the model mined over every basket.
const GlobalSegment = "all"

var (
	// ErrTrainingInProgress is returned when Train is called while a run is active.
	ErrTrainingInProgress = errors.New("training already in progress")

	// ErrModelNotTrained is returned when no model exists to serve a request.
	ErrModelNotTrained = errors.New("model not trained")

	// ErrNoDataProvider is returned by Train when no basket source is set.
	ErrNoDataProvider = errors.New("data provider not set")
)

// Basket is one checkout: the items bought together, labelled with the
// customer segment that produced it.
type Basket struct {
	ID      string   `json:"id"`
	Segment string   `json:"segment,omitempty"`
	Items   []string `json:"items"`
}

// DataProvider supplies the baskets a model is trained on.
type DataProvider interface {
	GetBaskets(ctx context.Context) ([]Basket, error)
}

// ModelStore persists trained models and the history of training runs.
type ModelStore interface {
	SaveModel(ctx context.Context, model *Model) error

	// LoadModels returns the latest model of every segment.
	LoadModels(ctx context.Context) ([]*Model, error)

	SaveRun(ctx context.Context, run *RunRecord) error
}

// ResultStore is a durable second level for the ad-hoc mining cache.
type ResultStore interface {
	SaveResult(ctx context.Context, fingerprint string, result *apriori.Result) error
	LoadResult(ctx context.Context, fingerprint string) (*apriori.Result, bool, error)
}

// Model is the mined result for one segment at one version.
type Model struct {
	Version     int64           `json:"version"`
	Segment     string          `json:"segment"`
	Options     apriori.Options `json:"options"`
	Result      *apriori.Result `json:"result"`
	TrainedAt   time.Time       `json:"trained_at"`
	Fingerprint string          `json:"fingerprint"`
}

// RunRecord describes one training run.
type RunRecord struct {
	ID           string        `json:"id"`
	Trigger      string        `json:"trigger"`
	Version      int64         `json:"version"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration"`
	Transactions int           `json:"transactions"`
	Segments     []string      `json:"segments"`
	Error        string        `json:"error,omitempty"`
}

// SegmentStatus summarizes the model of one segment.
type SegmentStatus struct {
	Segment      string        `json:"segment"`
	Version      int64         `json:"version"`
	TrainedAt    time.Time     `json:"trained_at"`
	Itemsets     int           `json:"itemsets"`
	Rules        int           `json:"rules"`
	Transactions int           `json:"transactions"`
	Stats        apriori.Stats `json:"stats"`
}

// TrainingStatus reports the state of the engine's models.
type TrainingStatus struct {
	IsTraining             bool            `json:"is_training"`
	ModelVersion           int64           `json:"model_version"`
	LastTrainedAt          time.Time       `json:"last_trained_at"`
	LastTrainingDurationMS int64           `json:"last_training_duration_ms"`
	LastError              string          `json:"last_error,omitempty"`
	Segments               []SegmentStatus `json:"segments"`

	// Caches holds counters of the in-memory caches by name. Empty when
	// caching is disabled.
	Caches map[string]cache.Stats `json:"caches"`
}

// Request asks for recommendations for a basket.
type Request struct {
	Basket  []string
	TopN    int
	Segment string

	// Actionable restricts scoring to rules passing the actionable filter.
	Actionable bool
}

// Response carries recommendations and the model that produced them.
type Response struct {
	Recommendations []apriori.Recommendation `json:"recommendations"`
	Segment         string                   `json:"segment"`
	Actionable      bool                     `json:"actionable"`
	RulesConsidered int                      `json:"rules_considered"`
	ModelVersion    int64                    `json:"model_version"`
	CacheHit        bool                     `json:"cache_hit"`
}
