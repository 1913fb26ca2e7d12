// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/marketlens/internal/recommend/storage"
)

// fakeRatingModel predicts a constant value and records what it was trained on.
type fakeRatingModel struct {
	value    float64
	trained  []Rating
	trainErr error
}

func (m *fakeRatingModel) Name() string             { return ModelCF }
func (m *fakeRatingModel) IsTrained() bool          { return m.trained != nil }
func (m *fakeRatingModel) Version() int             { return 1 }
func (m *fakeRatingModel) LastTrainedAt() time.Time { return time.Time{} }
func (m *fakeRatingModel) Snapshot() any            { return "cf-state" }

func (m *fakeRatingModel) Train(_ context.Context, ratings []Rating) error {
	if m.trainErr != nil {
		return m.trainErr
	}
	m.trained = ratings
	return nil
}

func (m *fakeRatingModel) Predict(_, _ string) float64 { return m.value }

// fakeSimilarityModel records the catalog it was trained on.
type fakeSimilarityModel struct {
	trained  []Product
	trainErr error
}

func (m *fakeSimilarityModel) Name() string             { return ModelContent }
func (m *fakeSimilarityModel) IsTrained() bool          { return m.trained != nil }
func (m *fakeSimilarityModel) Version() int             { return 1 }
func (m *fakeSimilarityModel) LastTrainedAt() time.Time { return time.Time{} }
func (m *fakeSimilarityModel) Snapshot() any            { return "content-state" }

func (m *fakeSimilarityModel) Train(_ context.Context, products []Product) error {
	if m.trainErr != nil {
		return m.trainErr
	}
	m.trained = products
	return nil
}

func (m *fakeSimilarityModel) Similar(productID string, _ int) ([]Recommendation, error) {
	return []Recommendation{{ProductID: productID}}, nil
}

// fakeProvider serves fixed training data.
type fakeProvider struct {
	ratings     []Rating
	products    []Product
	ratingsErr  error
	productsErr error
}

func (p *fakeProvider) Ratings(context.Context) ([]Rating, error) {
	return p.ratings, p.ratingsErr
}

func (p *fakeProvider) Products(context.Context) ([]Product, error) {
	return p.products, p.productsErr
}

type savedModel struct {
	name    string
	version int
	data    any
	meta    storage.ModelMetadata
}

// fakeStore records saves and tracks versions in memory.
type fakeStore struct {
	saved    []savedModel
	versions map[string]int
	saveErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{versions: make(map[string]int)}
}

//nolint:gocritic // mirrors storage.Store.Save
func (s *fakeStore) Save(_ context.Context, name string, version int, data any, meta storage.ModelMetadata) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, savedModel{name: name, version: version, data: data, meta: meta})
	s.versions[name] = version
	return nil
}

func (s *fakeStore) GetLatestVersion(name string) (int, bool) {
	v, ok := s.versions[name]
	return v, ok
}
