// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/marketlens/internal/logging"
	"github.com/tomtom215/marketlens/internal/metrics"
	"github.com/tomtom215/marketlens/internal/recommend/storage"
)

// ModelStore persists model snapshots. *storage.Store implements it.
type ModelStore interface {
	Save(ctx context.Context, name string, version int, data any, meta storage.ModelMetadata) error
	GetLatestVersion(name string) (int, bool)
}

// TrainingResult summarizes one training run.
type TrainingResult struct {
	Ratings      int
	TrainRatings int
	TestRatings  int
	RMSE         float64
	Products     int

	CFVersion      int
	ContentVersion int

	StartTime time.Time
	EndTime   time.Time
}

// Duration returns how long the run took.
func (r *TrainingResult) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}

// Trainer trains, evaluates and saves the collaborative filtering and
// content-based models.
type Trainer struct {
	cfg     *Config
	data    DataProvider
	store   ModelStore
	cf      RatingModel
	content SimilarityModel
}

// NewTrainer creates a trainer. The models are trained in place.
func NewTrainer(cfg *Config, data DataProvider, store ModelStore, cf RatingModel, content SimilarityModel) (*Trainer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid training config: %w", err)
	}
	return &Trainer{
		cfg:     cfg,
		data:    data,
		store:   store,
		cf:      cf,
		content: content,
	}, nil
}

// Run trains and saves both models and returns the trained content model
// for similar-product lookups.
func (t *Trainer) Run(ctx context.Context) (SimilarityModel, *TrainingResult, error) {
	result := &TrainingResult{StartTime: time.Now()}

	if err := t.trainCF(ctx, result); err != nil {
		return nil, result, fmt.Errorf("collaborative filtering: %w", err)
	}
	if err := t.trainContent(ctx, result); err != nil {
		return nil, result, fmt.Errorf("content-based: %w", err)
	}

	result.EndTime = time.Now()
	return t.content, result, nil
}

func (t *Trainer) trainCF(ctx context.Context, result *TrainingResult) error {
	log := logging.Ctx(ctx)

	ratings, err := t.data.Ratings(ctx)
	if err != nil {
		return err
	}
	result.Ratings = len(ratings)

	train, test, err := TrainTestSplit(ratings, t.cfg.TestSize, t.cfg.Seed)
	if err != nil {
		return err
	}
	result.TrainRatings = len(train)
	result.TestRatings = len(test)

	start := time.Now()
	if err := t.cf.Train(ctx, train); err != nil {
		return fmt.Errorf("train: %w", err)
	}
	duration := time.Since(start)

	rmse, err := RMSE(t.cf, test)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	result.RMSE = rmse

	users, items := countUsersAndItems(train)
	metrics.RecordModelTraining(t.cf.Name(), duration, items)
	metrics.SetCFEvaluation(rmse, len(train), len(test))

	log.Info().
		Int("train_ratings", len(train)).
		Int("test_ratings", len(test)).
		Int("users", users).
		Int("items", items).
		Float64("rmse", rmse).
		Dur("duration", duration).
		Msg("CF SVD trained")

	version, err := t.save(ctx, t.cf, storage.ModelMetadata{
		TrainedAt:          t.cf.LastTrainedAt(),
		InteractionCount:   len(train),
		ItemCount:          items,
		UserCount:          users,
		TrainingDurationMS: duration.Milliseconds(),
		Metrics:            map[string]float64{"rmse": rmse, "test_ratings": float64(len(test))},
	})
	if err != nil {
		return err
	}
	result.CFVersion = version
	return nil
}

func (t *Trainer) trainContent(ctx context.Context, result *TrainingResult) error {
	log := logging.Ctx(ctx)

	products, err := t.data.Products(ctx)
	if err != nil {
		return err
	}
	result.Products = len(products)

	start := time.Now()
	if err := t.content.Train(ctx, products); err != nil {
		return fmt.Errorf("train: %w", err)
	}
	duration := time.Since(start)

	metrics.RecordModelTraining(t.content.Name(), duration, len(products))
	log.Info().Int("products", len(products)).Dur("duration", duration).Msg("Content TF-IDF trained")

	version, err := t.save(ctx, t.content, storage.ModelMetadata{
		TrainedAt:          t.content.LastTrainedAt(),
		ItemCount:          len(products),
		TrainingDurationMS: duration.Milliseconds(),
	})
	if err != nil {
		return err
	}
	result.ContentVersion = version
	return nil
}

// save stores m as the next version of its name.
//
//nolint:gocritic // meta is filled in here before the store copies it
func (t *Trainer) save(ctx context.Context, m Model, meta storage.ModelMetadata) (int, error) {
	version := 1
	if latest, ok := t.store.GetLatestVersion(m.Name()); ok {
		version = latest + 1
	}

	if err := t.store.Save(ctx, m.Name(), version, m.Snapshot(), meta); err != nil {
		return 0, fmt.Errorf("save %s: %w", m.Name(), err)
	}

	logging.Ctx(ctx).Info().Str("model", m.Name()).Int("version", version).Msg("Model saved")
	return version, nil
}

func countUsersAndItems(ratings []Rating) (users, items int) {
	u := make(map[string]struct{})
	i := make(map[string]struct{})
	for _, r := range ratings {
		u[r.UserID] = struct{}{}
		i[r.ItemID] = struct{}{}
	}
	return len(u), len(i)
}
