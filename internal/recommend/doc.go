// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

// Package recommend implements the modeling stage: it reads ratings and the
// product catalog from the analytics schema, trains a collaborative
// filtering model and a content-based model, and saves both to the model
// store.
//
// # Models
//
//   - cf_svd: biased matrix factorization over review scores, evaluated by
//     RMSE on a seeded hold-out split
//   - content_tfidf: TF-IDF similarity over product category names
//
// The implementations live in internal/recommend/algorithms and persistence
// in internal/recommend/storage. This package holds the shared types, the
// warehouse data provider, the train/test split and the Trainer that ties
// them together.
//
// # Usage Example
//
//	trainer, err := recommend.NewTrainer(
//	    recommend.ConfigFrom(&cfg.Recommend),
//	    recommend.NewSQLDataProvider(db),
//	    store,
//	    algorithms.NewSVD(algorithms.SVDConfigFrom(cfg.Recommend.CF)),
//	    algorithms.NewTFIDF(),
//	)
//	if err != nil {
//	    return err
//	}
//	content, result, err := trainer.Run(ctx)
//
// # Determinism
//
// The split, factor initialization and SGD order are fixed by the seed and
// the query order, so the same warehouse contents give the same models.
package recommend
