// File: validation.go
// Title: Configuration Validation Implementation
// Description: Checks configuration values against declarative rules:
//              required keys, types, numeric ranges and allowed values.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of validation
// - 2026-10-18 v0.2.0: Added OneOf, dropped regex patterns and defaults

package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	mdwerror "github.com/msto63/asa/foundation/core/error"
)

// ValidationRule defines validation criteria for a configuration value
type ValidationRule struct {
	Required bool     // Whether the key must be present
	Type     string   // "string", "int" or "bool"
	Min      *int     // Lower bound for ints
	Max      *int     // Upper bound for ints
	OneOf    []string // Allowed values for strings, compared case-insensitively
}

// ValidationRules maps configuration keys to their validation rules
type ValidationRules map[string]ValidationRule

// ValidationResult contains the results of configuration validation
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Err converts a failed result into a structured error; nil when valid
func (r *ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return mdwerror.New("invalid configuration: " + strings.Join(r.Errors, "; ")).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("errors", r.Errors)
}

// IntPtr is a helper for Min and Max
func IntPtr(v int) *int {
	return &v
}

// Validate validates the configuration against the provided rules. Keys are
// checked in sorted order so the error list is stable.
func (c *Config) Validate(rules ValidationRules) *ValidationResult {
	result := &ValidationResult{Valid: true}

	keys := make([]string, 0, len(rules))
	for key := range rules {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := c.validateField(key, rules[key]); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, err.Error())
		}
	}
	return result
}

// validateField validates a single configuration field
func (c *Config) validateField(key string, rule ValidationRule) error {
	if !c.Has(key) {
		if rule.Required {
			return fmt.Errorf("required field '%s' is missing", key)
		}
		return nil
	}

	raw := c.GetString(key)

	switch rule.Type {
	case "int":
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("field '%s' must be an integer, got %q", key, raw)
		}
		if rule.Min != nil && n < *rule.Min {
			return fmt.Errorf("field '%s' must be at least %d, got %d", key, *rule.Min, n)
		}
		if rule.Max != nil && n > *rule.Max {
			return fmt.Errorf("field '%s' must be at most %d, got %d", key, *rule.Max, n)
		}
	case "bool":
		if _, err := strconv.ParseBool(raw); err != nil {
			return fmt.Errorf("field '%s' must be a boolean, got %q", key, raw)
		}
	}

	if len(rule.OneOf) > 0 {
		for _, allowed := range rule.OneOf {
			if strings.EqualFold(allowed, raw) {
				return nil
			}
		}
		return fmt.Errorf("field '%s' must be one of [%s], got %q", key, strings.Join(rule.OneOf, ", "), raw)
	}
	return nil
}
