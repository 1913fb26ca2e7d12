// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package config

import (
	"fmt"
	"regexp"

	"github.com/tomtom215/marketlens/internal/validation"
)

// tableNamePattern restricts table names to plain SQL identifiers; they are
// interpolated into file paths and DDL.
var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Validate checks that the configuration is present and valid.
// Struct tags cover ranges and enums; the hand checks below cover
// rules that span fields.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if err := c.validateTables(); err != nil {
		return err
	}

	return c.validateRatingScale()
}

// validateTables checks table names and rejects duplicates.
func (c *Config) validateTables() error {
	seen := make(map[string]bool, len(c.Extract.Tables))
	for _, table := range c.Extract.Tables {
		if !tableNamePattern.MatchString(table) {
			return fmt.Errorf("EXTRACT_TABLES contains invalid table name %q", table)
		}
		if seen[table] {
			return fmt.Errorf("EXTRACT_TABLES lists %q more than once", table)
		}
		seen[table] = true
	}
	return nil
}

// validateRatingScale checks that the CF rating bounds form a non-empty range.
func (c *Config) validateRatingScale() error {
	if c.Recommend.CF.MinRating >= c.Recommend.CF.MaxRating {
		return fmt.Errorf("recommend.cf rating scale is empty: min %.2f >= max %.2f",
			c.Recommend.CF.MinRating, c.Recommend.CF.MaxRating)
	}
	return nil
}
