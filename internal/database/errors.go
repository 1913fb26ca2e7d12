// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package database

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marketlens/internal/logging"
)

// CloseWithLog closes a resource and logs any error at warn level.
// Use this for cleanup where errors should be acknowledged but not fail the operation.
// A nil logger falls back to the global logger.
func CloseWithLog(closer io.Closer, logger *zerolog.Logger, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		if logger == nil {
			l := logging.Logger()
			logger = &l
		}
		logger.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use this in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
