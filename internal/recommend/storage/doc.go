// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

// Package storage persists trained recommender models.
//
// Each saved model version is a gob-encoded file holding the model's
// metadata and its gzip-compressed, gob-encoded state, plus a JSON sidecar
// with the same metadata for inspection without decoding the model.
//
// # Storage Format
//
//	{name}_v{version}.gob.gz   metadata + compressed state
//	{name}_v{version}.json     metadata sidecar
//
// Versions increase monotonically per model name. Version 0 passed to
// Load or LoadMetadata means the latest version.
//
// # Usage Example
//
//	store, err := storage.NewStore(cfg.Paths.ModelsDir)
//	if err != nil {
//	    return err
//	}
//
//	err = store.Save(ctx, "cf_svd", 1, svd.Snapshot(), storage.ModelMetadata{
//	    TrainedAt:        time.Now(),
//	    InteractionCount: len(train),
//	    Metrics:          map[string]float64{"rmse": rmse},
//	})
//
//	var state storage.SVDModelState
//	meta, err := store.Load(ctx, "cf_svd", 0, &state)
//
// # Model State Types
//
// SVDModelState holds the biased matrix factorization: global mean, user and
// item biases, latent factor rows and the ID order they are indexed by.
//
// TFIDFModelState holds the content model: the catalog in order, the sorted
// vocabulary with its IDF weights, and one sparse L2-normalized row per product.
//
// # Data Integrity
//
// Load recomputes the SHA-256 of the decompressed state and rejects files
// whose checksum does not match the stored metadata. Files are written to a
// temporary name and renamed into place.
//
// # Thread Safety
//
// All store operations are safe for concurrent use. Save and Prune take
// the write lock; Load and LoadMetadata share the read lock.
package storage
