// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestGenerateRunID(t *testing.T) {
	t.Parallel()

	id1 := GenerateRunID()
	id2 := GenerateRunID()

	if len(id1) != 36 {
		t.Errorf("expected 36-character run ID, got %d", len(id1))
	}
	if id1 == id2 {
		t.Error("expected unique run IDs")
	}
}

func TestRunIDContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if id := RunIDFromContext(ctx); id != "" {
		t.Errorf("expected empty run ID, got %s", id)
	}

	ctx = ContextWithRunID(ctx, "run-123")
	if id := RunIDFromContext(ctx); id != "run-123" {
		t.Errorf("expected 'run-123', got '%s'", id)
	}
}

func TestNewRunContext(t *testing.T) {
	t.Parallel()

	ctx := NewRunContext(context.Background(), "extract")

	if StageFromContext(ctx) != "extract" {
		t.Errorf("expected stage 'extract', got %q", StageFromContext(ctx))
	}
	if RunIDFromContext(ctx) == "" {
		t.Error("expected run ID to be generated")
	}
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))

	ctx := ContextWithStage(ContextWithRunID(context.Background(), "run-abc"), "load")
	Ctx(ctx).Info().Msg("with fields")

	output := buf.String()
	if !strings.Contains(output, `"run_id":"run-abc"`) {
		t.Errorf("expected run_id in output: %s", output)
	}
	if !strings.Contains(output, `"stage":"load"`) {
		t.Errorf("expected stage in output: %s", output)
	}

	buf.Reset()
	Ctx(context.Background()).Info().Msg("plain")
	if strings.Contains(buf.String(), "run_id") {
		t.Errorf("expected no run_id without context value: %s", buf.String())
	}
}
