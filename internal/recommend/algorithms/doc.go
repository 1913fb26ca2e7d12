// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

// Package algorithms implements the recommender models trained by the
// modeling stage.
//
// # Models
//
// SVD: biased matrix factorization fit by stochastic gradient descent on
// review scores. Implements recommend.RatingModel.
//
// TFIDF: content-based similarity over product category text. Implements
// recommend.SimilarityModel.
//
// # Usage Example
//
//	svd := algorithms.NewSVD(algorithms.SVDConfigFrom(cfg.Recommend.CF))
//	if err := svd.Train(ctx, train); err != nil {
//	    return err
//	}
//	score := svd.Predict(customerID, productID)
//
//	content := algorithms.NewTFIDF()
//	if err := content.Train(ctx, products); err != nil {
//	    return err
//	}
//	recs, err := content.Similar(productID, 5)
//
// # Persistence
//
// Snapshot returns a storage state value for the model store; Restore and
// the LoadSVD and LoadTFIDF helpers rebuild a model from it.
//
// # Thread Safety
//
// Training and Restore take an exclusive lock. Predict, Similar and
// Snapshot share a read lock.
package algorithms
