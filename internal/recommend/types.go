// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package recommend

import (
	"context"
	"errors"
	"time"
)

// Model names used for persistence and metrics.
const (
	ModelCF      = "cf_svd"
	ModelContent = "content_tfidf"
)

var (
	// ErrUnknownItem is returned when a lookup names a product the model was not trained on.
	ErrUnknownItem = errors.New("unknown item")

	// ErrNotTrained is returned when a model is used before training or loading.
	ErrNotTrained = errors.New("model not trained")

	// ErrNoRatings is returned when there are too few ratings to train or evaluate.
	ErrNoRatings = errors.New("not enough ratings")

	// ErrNoProducts is returned when the product catalog is empty.
	ErrNoProducts = errors.New("no products")
)

// Rating is one explicit review score given by a customer to a product.
type Rating struct {
	// UserID is the customer ID.
	UserID string `json:"user_id"`

	// ItemID is the product ID.
	ItemID string `json:"item_id"`

	// Value is the review score, normally 1 to 5.
	Value float64 `json:"rating"`
}

// Product is a catalog entry used by the content-based model.
type Product struct {
	ID string `json:"product_id"`

	// Category is the raw category name. Empty when the product has none.
	Category string `json:"product_category_name"`
}

// Recommendation is one similar product returned by a lookup.
type Recommendation struct {
	ProductID string  `json:"product_id"`
	Category  string  `json:"product_category_name"`
	Score     float64 `json:"score"`
}

// Model is the state every trained model exposes.
type Model interface {
	// Name returns the model identifier (ModelCF, ModelContent).
	Name() string

	// IsTrained returns whether the model has been trained or loaded.
	IsTrained() bool

	// Version returns the model version.
	Version() int

	// LastTrainedAt returns when the model was last trained.
	LastTrainedAt() time.Time

	// Snapshot returns the gob-encodable model state for persistence.
	Snapshot() any
}

// RatingModel predicts how a customer would rate a product.
type RatingModel interface {
	Model

	// Train fits the model on ratings.
	Train(ctx context.Context, ratings []Rating) error

	// Predict returns the estimated rating, clipped to the rating scale.
	// Unknown users or items fall back to the terms that are known.
	Predict(userID, itemID string) float64
}

// SimilarityModel finds products similar to a given product.
type SimilarityModel interface {
	Model

	// Train fits the model on the product catalog.
	Train(ctx context.Context, products []Product) error

	// Similar returns the topN most similar other products ordered by score
	// descending, ties in catalog order. Unknown products return ErrUnknownItem.
	Similar(productID string, topN int) ([]Recommendation, error)
}

// DataProvider supplies training data from the warehouse.
type DataProvider interface {
	// Ratings returns every rated order item. Items without a score are skipped.
	Ratings(ctx context.Context) ([]Rating, error)

	// Products returns the product catalog in a stable order.
	Products(ctx context.Context) ([]Product, error)
}
