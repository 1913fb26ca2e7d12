// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package stage

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/marketlens/internal/config"
	"github.com/tomtom215/marketlens/internal/logging"
	"github.com/tomtom215/marketlens/internal/metrics"
)

// Exit codes returned by Main and Run.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Func is the body of a stage.
type Func func(ctx context.Context, cfg *config.Config) error

// Main loads configuration, sets up logging and signal handling, and runs fn
// as the named stage. It returns the process exit code.
func Main(name string, fn Func) int {
	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Str("stage", name).Msg("Failed to load configuration")
		return ExitFailure
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Run(ctx, name, cfg, fn)
}

// Run executes fn under a fresh run context and records its outcome.
func Run(ctx context.Context, name string, cfg *config.Config, fn Func) int {
	ctx = logging.NewRunContext(ctx, name)
	log := logging.Ctx(ctx)

	log.Info().Msg("Stage started")
	start := time.Now()

	err := fn(ctx, cfg)
	duration := time.Since(start)
	metrics.RecordStage(name, duration, err)

	if werr := metrics.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
		log.Warn().Err(werr).Str("path", cfg.Metrics.Textfile).Msg("Failed to write metrics textfile")
	}

	if err != nil {
		if ctx.Err() != nil {
			log.Error().Err(err).Dur("duration", duration).Msg("Stage interrupted")
		} else {
			log.Error().Err(err).Dur("duration", duration).Msg("Stage failed")
		}
		return ExitFailure
	}

	log.Info().Dur("duration", duration).Msg("Stage completed")
	return ExitOK
}
