// File: doc.go
// Title: Configuration Management Package Documentation
// Description: Package documentation for TOML/YAML configuration loading.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial documentation
// - 2026-10-18 v0.2.0: Updated for asa

/*
Package config loads configuration files for the asa toolkit.

TOML and YAML are supported; the format is picked from the file extension.
Values are addressed by dotted keys and every lookup takes an optional
default:

	cfg, err := mdwconfig.Discover(mdwconfig.DefaultDiscoveryOptions())
	if err != nil {
		return err
	}
	depth := cfg.GetInt("parser.max_depth", 256)

When an environment prefix is set, ASA_PARSER_MAX_DEPTH overrides
parser.max_depth from the file. Validate checks values against declarative
rules before they reach the parser.
*/
package config
