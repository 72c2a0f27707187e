// File: doc.go
// Title: Error Package Documentation
// Description: Package documentation for the structured error system.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial documentation
// - 2026-10-18 v0.2.0: Updated for asa codes

/*
Package error provides structured errors for the asa toolkit.

An Error carries a Code, a Severity derived from that code, free-form details
and the stack at the point of creation:

	err := mdwerror.New("unexpected '(' at line 1, column 4, expected Alpha").
		WithCode(mdwerror.CodeAsaSyntax).
		WithOperation("parse").
		WithDetail("line", 1).
		WithDetail("column", 4)

Errors wrap with Wrap and unwrap through the standard errors package, so
errors.As(err, &target) works across package boundaries. Command line tools
map codes to exit status with Code.ExitCode.
*/
package error
