// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

// Package main is the modeling stage: it trains the collaborative filtering
// and content-based recommenders from the analytics schema, saves them to
// MODELS_DIR and prints a sample similar-product lookup. Older versions beyond
// MODELS_KEEP are pruned after a successful run.
//
//	DB_USER=etl DB_PASSWORD=secret DB_NAME=olist MODELS_DIR=models ./train
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tomtom215/marketlens/internal/config"
	"github.com/tomtom215/marketlens/internal/database"
	"github.com/tomtom215/marketlens/internal/logging"
	"github.com/tomtom215/marketlens/internal/recommend"
	"github.com/tomtom215/marketlens/internal/recommend/algorithms"
	"github.com/tomtom215/marketlens/internal/recommend/storage"
	"github.com/tomtom215/marketlens/internal/stage"
	"github.com/tomtom215/marketlens/internal/warehouse"
)

func main() {
	os.Exit(stage.Main("train", run))
}

func run(ctx context.Context, cfg *config.Config) error {
	url, err := cfg.Database.URL(warehouse.AnalyticsSchema)
	if err != nil {
		return err
	}

	wh, err := warehouse.Open(ctx, url)
	if err != nil {
		return err
	}
	defer database.CloseWithLog(wh, logging.Ctx(ctx), "warehouse")

	store, err := storage.NewStore(cfg.Paths.ModelsDir)
	if err != nil {
		return fmt.Errorf("open model store: %w", err)
	}

	content := algorithms.NewTFIDF()
	trainer, err := recommend.NewTrainer(
		recommend.ConfigFrom(&cfg.Recommend),
		recommend.NewSQLDataProvider(wh.DB()),
		store,
		algorithms.NewSVD(algorithms.SVDConfigFrom(cfg.Recommend.CF)),
		content,
	)
	if err != nil {
		return err
	}

	_, result, err := trainer.Run(ctx)
	if err != nil {
		return err
	}

	logging.Ctx(ctx).Info().
		Int("ratings", result.Ratings).
		Float64("rmse", result.RMSE).
		Int("products", result.Products).
		Int("vocabulary", len(content.Vocabulary())).
		Int("cf_version", result.CFVersion).
		Int("content_version", result.ContentVersion).
		Dur("duration", result.Duration()).
		Str("models_dir", store.Dir()).
		Msg("Training completed")

	if err := pruneModels(ctx, store, cfg.Recommend.KeepVersions); err != nil {
		return err
	}
	return printSample(os.Stdout, content, cfg.Recommend.Content.TopK)
}

// pruneModels drops all but the newest keep versions of each model.
// keep 0 leaves the store untouched.
func pruneModels(ctx context.Context, store *storage.Store, keep int) error {
	if keep == 0 {
		return nil
	}
	for _, name := range []string{recommend.ModelCF, recommend.ModelContent} {
		removed, err := store.Prune(ctx, name, keep)
		if err != nil {
			return err
		}
		if len(removed) > 0 {
			logging.Ctx(ctx).Info().Str("model", name).Ints("versions", removed).Msg("Pruned old model versions")
		}
	}
	return nil
}

// printSample prints the similar-product lookup for the first catalog product.
func printSample(w io.Writer, content *algorithms.TFIDF, topK int) error {
	products := content.Products()
	if len(products) == 0 {
		return nil
	}

	first := products[0].ID
	recs, err := content.Similar(first, topK)
	if err != nil {
		return fmt.Errorf("sample lookup: %w", err)
	}
	return recommend.WriteRecommendations(w, first, recs)
}
