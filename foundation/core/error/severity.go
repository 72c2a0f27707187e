// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels used to decide how loudly an error is
//              reported and whether processing may continue.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-18 v0.2.0: Severity mapping for asa codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates bad user input, e.g. a syntax error in a source file
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects functionality but has workarounds
	SeverityMedium

	// SeverityHigh indicates a serious error such as an exhausted resource limit
	SeverityHigh

	// SeverityCritical indicates a defect: an internal invariant no longer holds
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeAsaInternal, CodeInternal:
		return SeverityCritical

	case CodeAsaLimit, CodeStorageError:
		return SeverityHigh

	case CodeAsaSyntax, CodeAsaUnimplemented, CodeInvalidInput, CodeNotFound,
		CodeInvalidConfig, CodeMissingConfig:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
