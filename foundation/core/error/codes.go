// File: codes.go
// Title: Error Code Definitions
// Description: Defines standardized error codes for the asa toolkit. Codes
//              classify failures of the language front end, configuration
//              loading and the supporting tools.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-18 v0.2.0: Codes for the asa lexer and parser

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Language front end
	CodeAsaSyntax        Code = "ASA_SYNTAX"
	CodeAsaInternal      Code = "ASA_INTERNAL"
	CodeAsaUnimplemented Code = "ASA_UNIMPLEMENTED"
	CodeAsaLimit         Code = "ASA_LIMIT"

	// Configuration and environment
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Storage
	CodeStorageError Code = "STORAGE_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// ExitCode returns the process exit status a command line tool should use
// when it terminates because of an error with this code.
func (c Code) ExitCode() int {
	switch c {
	case CodeAsaSyntax, CodeAsaUnimplemented:
		return 2
	case CodeAsaLimit, CodeInvalidInput:
		return 3
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return 4
	default:
		return 1
	}
}
