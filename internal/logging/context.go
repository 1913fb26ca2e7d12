// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Context keys for logging.
type contextKey string

const (
	// runIDKey is the context key for the batch run identifier.
	runIDKey contextKey = "run_id"

	// stageKey is the context key for the pipeline stage name.
	stageKey contextKey = "stage"
)

// GenerateRunID creates a new unique run ID.
func GenerateRunID() string {
	return uuid.New().String()
}

// ContextWithRunID returns a new context with the given run ID.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext retrieves the run ID from context.
// Returns empty string if not present.
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithStage returns a new context tagged with a pipeline stage name.
func ContextWithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext retrieves the stage name from context.
func StageFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(stageKey).(string); ok {
		return s
	}
	return ""
}

// NewRunContext starts a batch run: it tags ctx with the stage and a fresh run ID.
//
//	ctx := logging.NewRunContext(context.Background(), "extract")
//	logging.Ctx(ctx).Info().Msg("Extract started")
func NewRunContext(ctx context.Context, stage string) context.Context {
	return ContextWithRunID(ContextWithStage(ctx, stage), GenerateRunID())
}

// Ctx returns the global logger with run_id and stage fields added when present.
//
//	logging.Ctx(ctx).Info().Str("table", table).Msg("Cleaned table")
//	// {"level":"info","run_id":"...","stage":"extract","table":"orders",...}
func Ctx(ctx context.Context) *zerolog.Logger {
	logCtx := Logger().With()

	if runID := RunIDFromContext(ctx); runID != "" {
		logCtx = logCtx.Str("run_id", runID)
	}
	if stage := StageFromContext(ctx); stage != "" {
		logCtx = logCtx.Str("stage", stage)
	}

	l := logCtx.Logger()
	return &l
}
