// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

// Package stage runs one pipeline stage as a batch process.
//
// Every binary under cmd/ calls Main with its stage name. Main loads the
// configuration, initializes logging, cancels the run on SIGINT or SIGTERM,
// records the stage metrics and writes the metrics textfile when one is
// configured.
//
//	func main() {
//	    os.Exit(stage.Main("extract", run))
//	}
package stage
