// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultPostgresImage is the PostgreSQL image used for warehouse tests.
	DefaultPostgresImage = "postgres:16-alpine"

	// DefaultDatabase, DefaultUser and DefaultPassword seed the test server.
	DefaultDatabase = "marketlens"
	DefaultUser     = "marketlens"
	DefaultPassword = "marketlens"
)

// PostgresContainer is a running PostgreSQL server for integration tests.
type PostgresContainer struct {
	*tcpostgres.PostgresContainer

	// URL is a connection string with sslmode=disable.
	URL string
}

// PostgresOption configures the PostgreSQL container.
type PostgresOption func(*postgresConfig)

type postgresConfig struct {
	image        string
	database     string
	startTimeout time.Duration
}

// WithPostgresImage sets a custom PostgreSQL image.
func WithPostgresImage(image string) PostgresOption {
	return func(c *postgresConfig) {
		c.image = image
	}
}

// WithDatabaseName sets the name of the database created at startup.
func WithDatabaseName(name string) PostgresOption {
	return func(c *postgresConfig) {
		c.database = name
	}
}

// WithStartTimeout sets how long to wait for the server to accept connections.
func WithStartTimeout(timeout time.Duration) PostgresOption {
	return func(c *postgresConfig) {
		c.startTimeout = timeout
	}
}

// NewPostgresContainer starts a PostgreSQL server and waits until it is
// ready to accept connections.
//
//	pg, err := testinfra.NewPostgresContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer testinfra.CleanupContainer(t, ctx, pg)
func NewPostgresContainer(ctx context.Context, opts ...PostgresOption) (*PostgresContainer, error) {
	cfg := &postgresConfig{
		image:        DefaultPostgresImage,
		database:     DefaultDatabase,
		startTimeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	container, err := tcpostgres.Run(ctx, cfg.image,
		tcpostgres.WithDatabase(cfg.database),
		tcpostgres.WithUsername(DefaultUser),
		tcpostgres.WithPassword(DefaultPassword),
		testcontainers.WithWaitStrategy(
			// The server logs readiness twice: once for the init run, once for the real start.
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(cfg.startTimeout),
		),
	)
	if err != nil {
		if container != nil {
			_ = container.Terminate(ctx)
		}
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	return &PostgresContainer{PostgresContainer: container, URL: url}, nil
}

// Endpoint returns host and mapped port of the server.
func (c *PostgresContainer) Endpoint(ctx context.Context) (host, port string, err error) {
	host, err = c.Host(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to get container host: %w", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return "", "", fmt.Errorf("failed to get mapped port: %w", err)
	}
	return host, mapped.Port(), nil
}
