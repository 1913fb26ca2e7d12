// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainerFixture() (*fakeProvider, *fakeStore, *fakeRatingModel, *fakeSimilarityModel) {
	return &fakeProvider{
			ratings: makeRatings(10),
			products: []Product{
				{ID: "p1", Category: "beleza_saude"},
				{ID: "p2", Category: ""},
			},
		},
		newFakeStore(),
		&fakeRatingModel{value: 3},
		&fakeSimilarityModel{}
}

func TestNewTrainer_InvalidConfig(t *testing.T) {
	data, store, cf, content := trainerFixture()
	_, err := NewTrainer(&Config{TestSize: 2, SampleTopK: 5}, data, store, cf, content)
	assert.Error(t, err)
}

func TestTrainer_Run(t *testing.T) {
	data, store, cf, content := trainerFixture()
	trainer, err := NewTrainer(nil, data, store, cf, content)
	require.NoError(t, err)

	lookup, result, err := trainer.Run(context.Background())
	require.NoError(t, err)
	assert.Same(t, content, lookup)

	assert.Equal(t, 10, result.Ratings)
	assert.Equal(t, 8, result.TrainRatings)
	assert.Equal(t, 2, result.TestRatings)
	assert.Equal(t, 2, result.Products)
	assert.Len(t, cf.trained, 8)
	assert.Len(t, content.trained, 2)
	assert.False(t, result.EndTime.Before(result.StartTime))

	require.Len(t, store.saved, 2)
	assert.Equal(t, ModelCF, store.saved[0].name)
	assert.Equal(t, 1, store.saved[0].version)
	assert.Equal(t, "cf-state", store.saved[0].data)
	assert.Equal(t, 8, store.saved[0].meta.InteractionCount)
	assert.InDelta(t, result.RMSE, store.saved[0].meta.Metrics["rmse"], 1e-12)
	assert.Equal(t, 2.0, store.saved[0].meta.Metrics["test_ratings"])

	assert.Equal(t, ModelContent, store.saved[1].name)
	assert.Equal(t, 2, store.saved[1].meta.ItemCount)
	assert.Equal(t, 1, result.CFVersion)
	assert.Equal(t, 1, result.ContentVersion)
}

func TestTrainer_RunIncrementsVersion(t *testing.T) {
	data, store, cf, content := trainerFixture()
	store.versions[ModelCF] = 4

	trainer, err := NewTrainer(nil, data, store, cf, content)
	require.NoError(t, err)

	_, result, err := trainer.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, result.CFVersion)
	assert.Equal(t, 1, result.ContentVersion)
}

func TestTrainer_RunFailures(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name    string
		mutate  func(*fakeProvider, *fakeStore, *fakeRatingModel, *fakeSimilarityModel)
		wantErr error
		wantMsg string
	}{
		{
			name:    "ratings query",
			mutate:  func(p *fakeProvider, _ *fakeStore, _ *fakeRatingModel, _ *fakeSimilarityModel) { p.ratingsErr = boom },
			wantErr: boom,
			wantMsg: "collaborative filtering",
		},
		{
			name:    "too few ratings",
			mutate:  func(p *fakeProvider, _ *fakeStore, _ *fakeRatingModel, _ *fakeSimilarityModel) { p.ratings = p.ratings[:1] },
			wantErr: ErrNoRatings,
			wantMsg: "collaborative filtering",
		},
		{
			name:    "cf training",
			mutate:  func(_ *fakeProvider, _ *fakeStore, cf *fakeRatingModel, _ *fakeSimilarityModel) { cf.trainErr = boom },
			wantErr: boom,
			wantMsg: "collaborative filtering: train",
		},
		{
			name:    "products query",
			mutate:  func(p *fakeProvider, _ *fakeStore, _ *fakeRatingModel, _ *fakeSimilarityModel) { p.productsErr = boom },
			wantErr: boom,
			wantMsg: "content-based",
		},
		{
			name:    "content training",
			mutate:  func(_ *fakeProvider, _ *fakeStore, _ *fakeRatingModel, c *fakeSimilarityModel) { c.trainErr = boom },
			wantErr: boom,
			wantMsg: "content-based: train",
		},
		{
			name:    "save",
			mutate:  func(_ *fakeProvider, s *fakeStore, _ *fakeRatingModel, _ *fakeSimilarityModel) { s.saveErr = boom },
			wantErr: boom,
			wantMsg: "save cf_svd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, store, cf, content := trainerFixture()
			tt.mutate(data, store, cf, content)

			trainer, err := NewTrainer(nil, data, store, cf, content)
			require.NoError(t, err)

			lookup, _, err := trainer.Run(context.Background())
			require.Error(t, err)
			assert.Nil(t, lookup)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}
