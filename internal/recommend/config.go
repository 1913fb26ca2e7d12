// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package recommend

import (
	"fmt"

	"github.com/tomtom215/marketlens/internal/config"
)

// Config contains the training run settings that sit outside the models.
type Config struct {
	// TestSize is the fraction of ratings held out for evaluation, in (0, 1).
	TestSize float64 `json:"test_size"`

	// Seed drives the train/test split and factor initialization.
	Seed int64 `json:"seed"`

	// SampleTopK is the number of similar products in the post-training sample lookup.
	SampleTopK int `json:"sample_top_k"`
}

// DefaultConfig returns the default training settings.
func DefaultConfig() *Config {
	return &Config{
		TestSize:   0.2,
		Seed:       42,
		SampleTopK: 5,
	}
}

// ConfigFrom derives training settings from the application configuration.
func ConfigFrom(cfg *config.RecommendConfig) *Config {
	return &Config{
		TestSize:   cfg.CF.TestSize,
		Seed:       cfg.CF.Seed,
		SampleTopK: cfg.Content.TopK,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.TestSize <= 0 || c.TestSize >= 1 {
		return fmt.Errorf("test_size must be in (0, 1), got %v", c.TestSize)
	}
	if c.SampleTopK < 1 {
		return fmt.Errorf("sample_top_k must be at least 1, got %d", c.SampleTopK)
	}
	return nil
}
