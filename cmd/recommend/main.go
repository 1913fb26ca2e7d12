// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

// Package main looks up recommendations from the models saved by the train
// stage.
//
// Similar products from the content model:
//
//	./recommend --product 4244733e06e7ecb4970a6e2683c13e61 --top 5
//
// Predicted rating from the collaborative filtering model:
//
//	./recommend --user 871766c5855e863f6eccc05f988b23cb --item 4244733e06e7ecb4970a6e2683c13e61
//
// Saved models with their sidecar metadata:
//
//	./recommend --list
//
// Add --json for machine-readable output and --version to pick a saved
// model version instead of the latest.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/tomtom215/marketlens/internal/config"
	"github.com/tomtom215/marketlens/internal/recommend"
	"github.com/tomtom215/marketlens/internal/recommend/algorithms"
	"github.com/tomtom215/marketlens/internal/recommend/storage"
	"github.com/tomtom215/marketlens/internal/stage"
)

// errUsage is returned when the flags name no mode or more than one.
var errUsage = errors.New("one of --list, --product or both --user and --item is required")

type options struct {
	product string
	user    string
	item    string
	top     int
	version int
	json    bool
	list    bool
}

func parseFlags(args []string) (*options, error) {
	fs := pflag.NewFlagSet("recommend", pflag.ContinueOnError)
	opts := &options{}
	fs.StringVarP(&opts.product, "product", "p", "", "product ID to find similar products for")
	fs.IntVarP(&opts.top, "top", "n", 0, "number of similar products (default CONTENT_TOP_K)")
	fs.StringVarP(&opts.user, "user", "u", "", "customer ID for a rating prediction")
	fs.StringVarP(&opts.item, "item", "i", "", "product ID for a rating prediction")
	fs.IntVar(&opts.version, "version", 0, "model version to load (0 = latest)")
	fs.BoolVar(&opts.json, "json", false, "print JSON instead of text")
	fs.BoolVarP(&opts.list, "list", "l", false, "list saved models instead of a lookup")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, opts.validate()
}

func (o *options) validate() error {
	predict := o.user != "" || o.item != ""
	switch {
	case o.version < 0:
		return fmt.Errorf("--version must not be negative, got %d", o.version)
	case o.list && (o.product != "" || predict):
		return fmt.Errorf("%w, --list takes no lookup flags", errUsage)
	case o.list:
		return nil
	case o.product != "" && predict:
		return fmt.Errorf("%w, not both", errUsage)
	case o.product == "" && !predict:
		return errUsage
	case predict && (o.user == "" || o.item == ""):
		return errUsage
	case o.top < 0:
		return fmt.Errorf("--top must not be negative, got %d", o.top)
	}
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(stage.ExitOK)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	os.Exit(stage.Main("recommend", func(ctx context.Context, cfg *config.Config) error {
		store, err := storage.NewStore(cfg.Paths.ModelsDir)
		if err != nil {
			return fmt.Errorf("open model store: %w", err)
		}
		if opts.top == 0 {
			opts.top = cfg.Recommend.Content.TopK
		}
		return lookup(ctx, store, opts, os.Stdout)
	}))
}

// lookup runs the requested lookup against the saved models and prints it to w.
func lookup(ctx context.Context, store *storage.Store, opts *options, w io.Writer) error {
	if opts.list {
		return listModels(ctx, store, opts, w)
	}
	if opts.product != "" {
		content, err := algorithms.LoadTFIDF(ctx, store, opts.version)
		if err != nil {
			return fmt.Errorf("load content model: %w", err)
		}
		recs, err := content.Similar(opts.product, opts.top)
		if err != nil {
			return err
		}
		if opts.json {
			return recommend.WriteJSON(w, recs)
		}
		return recommend.WriteRecommendations(w, opts.product, recs)
	}

	cf, err := algorithms.LoadSVD(ctx, store, opts.version)
	if err != nil {
		return fmt.Errorf("load cf model: %w", err)
	}
	p := recommend.Prediction{
		UserID:     opts.user,
		ProductID:  opts.item,
		Rating:     cf.Predict(opts.user, opts.item),
		GlobalMean: cf.GlobalMean(),
		KnownUser:  cf.KnowsUser(opts.user),
		KnownItem:  cf.KnowsItem(opts.item),
	}
	if opts.json {
		return recommend.WriteJSON(w, p)
	}
	return recommend.WritePrediction(w, p)
}

// listModels prints the metadata of the latest model versions, or of
// opts.version when it is set. Models without that version are skipped.
func listModels(ctx context.Context, store *storage.Store, opts *options, w io.Writer) error {
	metas := []storage.ModelMetadata{}
	if opts.version == 0 {
		latest, err := store.ListModels(ctx)
		if err != nil {
			return fmt.Errorf("list models: %w", err)
		}
		metas = append(metas, latest...)
	} else {
		for _, name := range []string{recommend.ModelCF, recommend.ModelContent} {
			meta, err := store.LoadMetadata(name, opts.version)
			if errors.Is(err, storage.ErrModelNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("load %s metadata: %w", name, err)
			}
			metas = append(metas, *meta)
		}
	}

	if opts.json {
		return recommend.WriteJSON(w, metas)
	}
	return recommend.WriteModels(w, metas)
}
