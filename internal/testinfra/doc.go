// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

// Package testinfra provides container-backed infrastructure for
// integration tests.
//
// Everything here is behind the integration build tag and uses
// testcontainers-go. Tests skip when Docker is unavailable.
//
//	func TestLoad(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    pg, err := testinfra.NewPostgresContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, pg)
//
//	    wh, err := warehouse.Open(ctx, pg.URL)
//	    // ...
//	}
//
// Run with:
//
//	go test -tags integration ./...
package testinfra
