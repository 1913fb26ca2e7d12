// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package algorithms

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/tomtom215/marketlens/internal/config"
	"github.com/tomtom215/marketlens/internal/recommend"
	"github.com/tomtom215/marketlens/internal/recommend/storage"
)

// SVDConfig contains configuration for the biased matrix factorization.
type SVDConfig struct {
	// Factors is the dimension of the latent factor vectors.
	Factors int

	// Epochs is the number of SGD passes over the training ratings.
	Epochs int

	// LearningRate is the SGD step size for biases and factors.
	LearningRate float64

	// Regularization is the L2 penalty on biases and factors.
	Regularization float64

	// InitStdDev is the standard deviation of the normal factor initialization.
	InitStdDev float64

	// Seed makes factor initialization reproducible.
	Seed int64

	// MinRating and MaxRating bound predictions.
	MinRating float64
	MaxRating float64
}

// DefaultSVDConfig returns default SVD configuration.
func DefaultSVDConfig() SVDConfig {
	return SVDConfig{
		Factors:        50,
		Epochs:         20,
		LearningRate:   0.005,
		Regularization: 0.02,
		InitStdDev:     0.1,
		Seed:           42,
		MinRating:      1,
		MaxRating:      5,
	}
}

// SVDConfigFrom converts the application CF settings.
func SVDConfigFrom(cfg config.CFConfig) SVDConfig {
	return SVDConfig{
		Factors:        cfg.Factors,
		Epochs:         cfg.Epochs,
		LearningRate:   cfg.LearningRate,
		Regularization: cfg.Regularization,
		InitStdDev:     cfg.InitStdDev,
		Seed:           cfg.Seed,
		MinRating:      cfg.MinRating,
		MaxRating:      cfg.MaxRating,
	}
}

// SVD is a biased matrix factorization model trained by stochastic gradient
// descent on explicit ratings.
//
// The estimate for user u and item i is:
//
//	r̂_ui = μ + b_u + b_i + q_iᵀp_u
//
// Each epoch visits the training ratings in their given order. Terms for an
// unknown user or item are left out of the estimate.
type SVD struct {
	BaseAlgorithm
	config SVDConfig

	globalMean float64

	userIndex map[string]int
	itemIndex map[string]int
	userIDs   []string
	itemIDs   []string

	userBias []float64
	itemBias []float64

	// P is the user factor matrix (numUsers x Factors)
	P [][]float64

	// Q is the item factor matrix (numItems x Factors)
	Q [][]float64
}

// NewSVD creates a new SVD model with the given configuration.
func NewSVD(cfg SVDConfig) *SVD {
	def := DefaultSVDConfig()
	if cfg.Factors <= 0 {
		cfg.Factors = def.Factors
	}
	if cfg.Epochs <= 0 {
		cfg.Epochs = def.Epochs
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = def.LearningRate
	}
	if cfg.Regularization < 0 {
		cfg.Regularization = def.Regularization
	}
	if cfg.InitStdDev <= 0 {
		cfg.InitStdDev = def.InitStdDev
	}
	if cfg.MaxRating <= cfg.MinRating {
		cfg.MinRating, cfg.MaxRating = def.MinRating, def.MaxRating
	}

	return &SVD{
		BaseAlgorithm: NewBaseAlgorithm(recommend.ModelCF),
		config:        cfg,
	}
}

// Config returns the model configuration.
func (s *SVD) Config() SVDConfig {
	return s.config
}

// Train fits the model on ratings.
func (s *SVD) Train(ctx context.Context, ratings []recommend.Rating) error {
	s.acquireTrainLock()
	defer s.releaseTrainLock()

	if ContextCancelled(ctx) {
		return ctx.Err()
	}
	if len(ratings) == 0 {
		return recommend.ErrNoRatings
	}

	s.userIndex = make(map[string]int)
	s.itemIndex = make(map[string]int)
	s.userIDs = nil
	s.itemIDs = nil

	users := make([]int, len(ratings))
	items := make([]int, len(ratings))
	var sum float64
	for k, r := range ratings {
		u, ok := s.userIndex[r.UserID]
		if !ok {
			u = len(s.userIDs)
			s.userIndex[r.UserID] = u
			s.userIDs = append(s.userIDs, r.UserID)
		}
		i, ok := s.itemIndex[r.ItemID]
		if !ok {
			i = len(s.itemIDs)
			s.itemIndex[r.ItemID] = i
			s.itemIDs = append(s.itemIDs, r.ItemID)
		}
		users[k] = u
		items[k] = i
		sum += r.Value
	}
	s.globalMean = sum / float64(len(ratings))

	rng := rand.New(rand.NewSource(s.config.Seed)) //nolint:gosec // reproducible initialization, not security
	s.P = initFactors(rng, len(s.userIDs), s.config.Factors, s.config.InitStdDev)
	s.Q = initFactors(rng, len(s.itemIDs), s.config.Factors, s.config.InitStdDev)
	s.userBias = make([]float64, len(s.userIDs))
	s.itemBias = make([]float64, len(s.itemIDs))

	lr := s.config.LearningRate
	reg := s.config.Regularization

	for epoch := 0; epoch < s.config.Epochs; epoch++ {
		if ContextCancelled(ctx) {
			return ctx.Err()
		}

		for k, r := range ratings {
			u, i := users[k], items[k]
			pu, qi := s.P[u], s.Q[i]

			errUI := r.Value - (s.globalMean + s.userBias[u] + s.itemBias[i] + dot(pu, qi))

			s.userBias[u] += lr * (errUI - reg*s.userBias[u])
			s.itemBias[i] += lr * (errUI - reg*s.itemBias[i])

			for f := range pu {
				puf, qif := pu[f], qi[f]
				pu[f] += lr * (errUI*qif - reg*puf)
				qi[f] += lr * (errUI*puf - reg*qif)
			}
		}
	}

	s.markTrained()
	return nil
}

// Predict returns the estimated rating clipped to [MinRating, MaxRating].
// An untrained model returns the midpoint of the rating scale.
func (s *SVD) Predict(userID, itemID string) float64 {
	s.acquirePredictLock()
	defer s.releasePredictLock()

	if !s.trained {
		return (s.config.MinRating + s.config.MaxRating) / 2
	}

	est := s.globalMean
	u, userKnown := s.userIndex[userID]
	i, itemKnown := s.itemIndex[itemID]
	if userKnown {
		est += s.userBias[u]
	}
	if itemKnown {
		est += s.itemBias[i]
	}
	if userKnown && itemKnown {
		est += dot(s.P[u], s.Q[i])
	}

	return math.Min(s.config.MaxRating, math.Max(s.config.MinRating, est))
}

// GlobalMean returns the mean training rating.
func (s *SVD) GlobalMean() float64 {
	s.acquirePredictLock()
	defer s.releasePredictLock()
	return s.globalMean
}

// KnowsUser reports whether the user appeared in the training ratings.
func (s *SVD) KnowsUser(userID string) bool {
	s.acquirePredictLock()
	defer s.releasePredictLock()
	_, ok := s.userIndex[userID]
	return ok
}

// KnowsItem reports whether the item appeared in the training ratings.
func (s *SVD) KnowsItem(itemID string) bool {
	s.acquirePredictLock()
	defer s.releasePredictLock()
	_, ok := s.itemIndex[itemID]
	return ok
}

// Snapshot returns the persistable model state.
func (s *SVD) Snapshot() any {
	s.acquirePredictLock()
	defer s.releasePredictLock()

	return storage.SVDModelState{
		GlobalMean:     s.globalMean,
		UserIDs:        s.userIDs,
		ItemIDs:        s.itemIDs,
		UserBias:       s.userBias,
		ItemBias:       s.itemBias,
		UserFactors:    s.P,
		ItemFactors:    s.Q,
		Factors:        s.config.Factors,
		Epochs:         s.config.Epochs,
		LearningRate:   s.config.LearningRate,
		Regularization: s.config.Regularization,
		InitStdDev:     s.config.InitStdDev,
		Seed:           s.config.Seed,
		MinRating:      s.config.MinRating,
		MaxRating:      s.config.MaxRating,
	}
}

// Restore replaces the model with a saved state.
//
//nolint:gocritic // state is decoded by value from the store
func (s *SVD) Restore(state storage.SVDModelState, meta *storage.ModelMetadata) error {
	if len(state.UserIDs) != len(state.UserBias) || len(state.UserIDs) != len(state.UserFactors) {
		return fmt.Errorf("svd state: %d users, %d biases, %d factor rows",
			len(state.UserIDs), len(state.UserBias), len(state.UserFactors))
	}
	if len(state.ItemIDs) != len(state.ItemBias) || len(state.ItemIDs) != len(state.ItemFactors) {
		return fmt.Errorf("svd state: %d items, %d biases, %d factor rows",
			len(state.ItemIDs), len(state.ItemBias), len(state.ItemFactors))
	}

	s.acquireTrainLock()
	defer s.releaseTrainLock()

	s.config = SVDConfig{
		Factors:        state.Factors,
		Epochs:         state.Epochs,
		LearningRate:   state.LearningRate,
		Regularization: state.Regularization,
		InitStdDev:     state.InitStdDev,
		Seed:           state.Seed,
		MinRating:      state.MinRating,
		MaxRating:      state.MaxRating,
	}
	s.globalMean = state.GlobalMean
	s.userIDs = state.UserIDs
	s.itemIDs = state.ItemIDs
	s.userBias = state.UserBias
	s.itemBias = state.ItemBias
	s.P = state.UserFactors
	s.Q = state.ItemFactors

	s.userIndex = make(map[string]int, len(s.userIDs))
	for i, id := range s.userIDs {
		s.userIndex[id] = i
	}
	s.itemIndex = make(map[string]int, len(s.itemIDs))
	for i, id := range s.itemIDs {
		s.itemIndex[id] = i
	}

	var version int
	var trainedAt time.Time
	if meta != nil {
		version = meta.Version
		trainedAt = meta.TrainedAt
	}
	s.markRestored(version, trainedAt)
	return nil
}

// LoadSVD loads a saved SVD model. Version 0 loads the latest.
func LoadSVD(ctx context.Context, store *storage.Store, version int) (*SVD, error) {
	var state storage.SVDModelState
	meta, err := store.Load(ctx, recommend.ModelCF, version, &state)
	if err != nil {
		return nil, err
	}

	s := NewSVD(DefaultSVDConfig())
	if err := s.Restore(state, meta); err != nil {
		return nil, err
	}
	return s, nil
}

func initFactors(rng *rand.Rand, rows, factors int, stdDev float64) [][]float64 {
	m := make([][]float64, rows)
	for r := range m {
		m[r] = make([]float64, factors)
		for f := range m[r] {
			m[r][f] = rng.NormFloat64() * stdDev
		}
	}
	return m
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
