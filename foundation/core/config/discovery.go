// File: discovery.go
// Title: Configuration File Discovery Implementation
// Description: Searches a list of directories for the first existing
//              configuration file and loads it.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of file discovery
// - 2026-10-18 v0.2.0: Optional discovery falls back to an empty config

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mdwerror "github.com/msto63/asa/foundation/core/error"
)

// DiscoveryOptions defines options for automatic configuration file discovery
type DiscoveryOptions struct {
	Paths      []string // Directories to search for config files
	Filenames  []string // Base filenames to look for (without extension)
	Extensions []string // File extensions to try (.toml, .yaml, .yml)
	EnvPrefix  string   // Environment variable prefix for overrides
	Required   bool     // Whether finding a config file is required
}

// DefaultDiscoveryOptions returns the search order of the asa tool: the
// working directory first, then the user configuration directory
func DefaultDiscoveryOptions() DiscoveryOptions {
	paths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "asa"))
	}
	return DiscoveryOptions{
		Paths:      paths,
		Filenames:  []string{"asa", "config"},
		Extensions: []string{".toml", ".yaml", ".yml"},
		EnvPrefix:  "ASA",
		Required:   false,
	}
}

// ListPossibleConfigFiles returns every candidate path in search order
func ListPossibleConfigFiles(options DiscoveryOptions) []string {
	var paths []string
	for _, path := range options.Paths {
		for _, filename := range options.Filenames {
			for _, ext := range options.Extensions {
				paths = append(paths, filepath.Join(path, filename+ext))
			}
		}
	}
	return paths
}

// FindConfigFile returns the first candidate that exists
func FindConfigFile(options DiscoveryOptions) (string, error) {
	for _, candidate := range ListPossibleConfigFiles(options) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", mdwerror.New("configuration file not found").
		WithCode(mdwerror.CodeNotFound).
		WithOperation("config.FindConfigFile")
}

// Discover finds and loads the first configuration file. Without a file it
// fails when Required is set and returns an empty configuration otherwise.
func Discover(options DiscoveryOptions) (*Config, error) {
	if len(options.Paths) == 0 {
		options.Paths = []string{"."}
	}
	if len(options.Filenames) == 0 {
		options.Filenames = []string{"config"}
	}
	if len(options.Extensions) == 0 {
		options.Extensions = []string{".toml", ".yaml", ".yml"}
	}

	configPath, err := FindConfigFile(options)
	if err != nil {
		if !options.Required {
			return Empty(options.EnvPrefix), nil
		}
		searchPaths := ListPossibleConfigFiles(options)
		return nil, mdwerror.New(fmt.Sprintf("no configuration file found in paths: %s", strings.Join(searchPaths, ", "))).
			WithCode(mdwerror.CodeMissingConfig).
			WithOperation("config.Discover").
			WithDetail("searchPaths", searchPaths)
	}

	cfg, err := LoadWithOptions(configPath, LoadOptions{
		Format:    FormatAuto,
		EnvPrefix: options.EnvPrefix,
	})
	if err != nil {
		return nil, mdwerror.Wrap(err, fmt.Sprintf("found config file %s but failed to load", configPath)).
			WithOperation("config.Discover").
			WithDetail("configPath", configPath)
	}
	return cfg, nil
}
