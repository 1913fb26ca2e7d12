// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

// Package sqlscript splits an externally authored SQL script into statements.
//
// The rules are deliberately line-based: every line whose trimmed form starts
// with "--" is dropped, the remainder is split on ";", each piece is trimmed
// and empty pieces are discarded. Semicolons inside string literals or
// dollar-quoted bodies are not recognized, so scripts must not contain them.
package sqlscript

import (
	"fmt"
	"os"
	"strings"
)

// Statement is one executable statement of a script.
type Statement struct {
	// SQL is the trimmed statement text without the terminating semicolon.
	SQL string

	// Index is the zero-based position of the statement in the script.
	Index int
}

// FirstLine returns the first line of the statement, for logging.
func (s Statement) FirstLine() string {
	line, _, _ := strings.Cut(s.SQL, "\n")
	return strings.TrimSpace(line)
}

// Parse splits script text into statements in source order.
func Parse(text string) []Statement {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}

	var stmts []Statement
	for _, piece := range strings.Split(strings.Join(kept, "\n"), ";") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		stmts = append(stmts, Statement{SQL: piece, Index: len(stmts)})
	}
	return stmts
}

// ReadFile reads and parses a script file.
func ReadFile(path string) ([]Statement, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("read transform script: %w", err)
	}
	return Parse(string(data)), nil
}
