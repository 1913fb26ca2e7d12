// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

//go:build integration

package testinfra

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func TestPostgresContainer_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pg, err := NewPostgresContainer(ctx)
	if err != nil {
		t.Fatalf("Failed to create postgres container: %v", err)
	}
	defer CleanupContainer(t, ctx, pg)

	db, err := sql.Open("pgx", pg.URL)
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	defer db.Close()

	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		t.Fatalf("SELECT 1 error = %v", err)
	}
	if one != 1 {
		t.Errorf("SELECT 1 = %d, want 1", one)
	}

	host, port, err := pg.Endpoint(ctx)
	if err != nil {
		t.Fatalf("Endpoint() error = %v", err)
	}
	if host == "" || port == "" {
		t.Errorf("Endpoint() = %q, %q, want non-empty", host, port)
	}

	if info, err := GetContainerInfo(ctx, pg); err == nil {
		t.Logf("Container ID: %s, State: %s, Ports: %v", info.ID, info.State, info.Ports)
	}
}
