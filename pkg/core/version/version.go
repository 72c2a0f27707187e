// ============================================================================
// asa - Asa Language Toolkit
// ============================================================================
//
// Package:     version
// Description: Central version management for the toolkit components
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for the asa components
const (
	// Toolkit version
	Toolkit = "0.1.0"

	// Component versions
	Lexer   = "0.1.0"
	Parser  = "0.1.0"
	Grammar = "0.1.0"
	History = "0.1.0"
)

// Build metadata, set with -ldflags "-X github.com/msto63/asa/pkg/core/version.GitCommit=..."
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "lexer":
		return Lexer
	case "parser":
		return Parser
	case "grammar":
		return Grammar
	case "history":
		return History
	default:
		return Toolkit
	}
}

// Info describes the running binary
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Current returns the build information of the running binary
func Current() Info {
	return Info{
		Version:   Toolkit,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
