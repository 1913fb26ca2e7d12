// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

// Package validation provides struct validation using go-playground/validator v10.
//
// It holds a thread-safe singleton validator that reports field names by their
// koanf key, so a failed check on the configuration reads the same way the
// YAML file and the environment mapping name the setting:
//
//	type CFConfig struct {
//	    Factors  int     `koanf:"factors" validate:"min=1"`
//	    TestSize float64 `koanf:"test_size" validate:"gt=0,lt=1"`
//	}
//
//	if err := validation.ValidateStruct(cfg); err != nil {
//	    // "recommend.cf.factors must be at least 1"
//	}
//
// All field errors of one pass are collected in a *StructError.
package validation
