// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

type innerConfig struct {
	Factors  int     `koanf:"factors" validate:"min=1"`
	TestSize float64 `koanf:"test_size" validate:"gt=0,lt=1"`
}

type testConfig struct {
	Name   string      `koanf:"name" validate:"required"`
	Format string      `koanf:"format" validate:"oneof=json console"`
	Tables []string    `koanf:"tables" validate:"min=1"`
	Inner  innerConfig `koanf:"inner"`
	Plain  int         `validate:"gte=0"`
}

func validTestConfig() testConfig {
	return testConfig{
		Name:   "marketlens",
		Format: "json",
		Tables: []string{"orders"},
		Inner:  innerConfig{Factors: 50, TestSize: 0.2},
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	cfg := validTestConfig()
	if err := ValidateStruct(&cfg); err != nil {
		t.Errorf("ValidateStruct() unexpected error: %v", err)
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*testConfig)
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{
			name:      "missing required",
			mutate:    func(c *testConfig) { c.Name = "" },
			wantField: "name",
			wantTag:   "required",
			wantMsg:   "name is required",
		},
		{
			name:      "oneof",
			mutate:    func(c *testConfig) { c.Format = "xml" },
			wantField: "format",
			wantTag:   "oneof",
			wantMsg:   "format must be one of: json console",
		},
		{
			name:      "empty slice",
			mutate:    func(c *testConfig) { c.Tables = nil },
			wantField: "tables",
			wantTag:   "min",
			wantMsg:   "tables must contain at least 1 entries",
		},
		{
			name:      "nested min",
			mutate:    func(c *testConfig) { c.Inner.Factors = 0 },
			wantField: "inner.factors",
			wantTag:   "min",
			wantMsg:   "inner.factors must be at least 1",
		},
		{
			name:      "nested lt",
			mutate:    func(c *testConfig) { c.Inner.TestSize = 1 },
			wantField: "inner.test_size",
			wantTag:   "lt",
			wantMsg:   "inner.test_size must be less than 1",
		},
		{
			name:      "field without koanf tag",
			mutate:    func(c *testConfig) { c.Plain = -1 },
			wantField: "Plain",
			wantTag:   "gte",
			wantMsg:   "Plain must be greater than or equal to 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(&cfg)

			err := ValidateStruct(&cfg)
			if err == nil {
				t.Fatal("ValidateStruct() expected error, got nil")
			}

			var se *StructError
			if !errors.As(err, &se) {
				t.Fatalf("error type = %T, want *StructError", err)
			}
			if len(se.Errors()) != 1 {
				t.Fatalf("got %d field errors, want 1: %v", len(se.Errors()), err)
			}

			fe := se.Errors()[0]
			if fe.Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", fe.Field(), tt.wantField)
			}
			if fe.Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", fe.Tag(), tt.wantTag)
			}
			if fe.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", fe.Error(), tt.wantMsg)
			}
		})
	}
}

func TestStructError_CombinesMessages(t *testing.T) {
	cfg := validTestConfig()
	cfg.Name = ""
	cfg.Inner.Factors = 0

	err := ValidateStruct(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}

	msg := err.Error()
	if !strings.Contains(msg, "name is required") || !strings.Contains(msg, "inner.factors must be at least 1") {
		t.Errorf("combined message missing parts: %q", msg)
	}
	if !strings.Contains(msg, "; ") {
		t.Errorf("expected '; ' separator in %q", msg)
	}
}

func TestStructError_Empty(t *testing.T) {
	se := &StructError{}
	if se.Error() != "validation failed" {
		t.Errorf("Error() = %q, want %q", se.Error(), "validation failed")
	}
}
