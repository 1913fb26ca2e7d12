// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package storage

import (
	"encoding/gob"
)

// SVDModelState is the serializable state of the biased matrix
// factorization model.
type SVDModelState struct {
	// GlobalMean is the mean training rating.
	GlobalMean float64

	// UserIDs and ItemIDs map factor rows back to IDs, in first-seen order.
	UserIDs []string
	ItemIDs []string

	// UserBias and ItemBias are indexed like UserIDs and ItemIDs.
	UserBias []float64
	ItemBias []float64

	// UserFactors and ItemFactors are the latent factor rows.
	UserFactors [][]float64
	ItemFactors [][]float64

	// Hyperparameters the model was trained with.
	Factors        int
	Epochs         int
	LearningRate   float64
	Regularization float64
	InitStdDev     float64
	Seed           int64
	MinRating      float64
	MaxRating      float64
}

// SparseEntry is one non-zero TF-IDF weight.
type SparseEntry struct {
	Term   int
	Weight float64
}

// TFIDFModelState is the serializable state of the content-based model.
type TFIDFModelState struct {
	// ProductIDs and Categories are in catalog order.
	ProductIDs []string
	Categories []string

	// Vocabulary is sorted; a term's index is its position.
	Vocabulary []string

	// IDF holds the inverse document frequency per vocabulary term.
	IDF []float64

	// Vectors holds the L2-normalized TF-IDF row of each product, sorted by term.
	Vectors [][]SparseEntry
}

// Register gob types for serialization.
//
//nolint:gochecknoinits // gob.Register must be called in init for type registration
func init() {
	gob.Register(SVDModelState{})
	gob.Register(TFIDFModelState{})
	gob.Register(SparseEntry{})
	gob.Register(ModelMetadata{})
	gob.Register(storedFile{})
}
