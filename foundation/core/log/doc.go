// File: doc.go
// Title: Log Package Documentation
// Description: Package documentation for structured logging.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial documentation
// - 2026-10-18 v0.2.0: Updated for asa

/*
Package log provides structured logging for the asa toolkit.

Loggers are immutable from the caller's point of view: WithField, WithName
and friends return copies, so a component can derive its own logger once and
keep it:

	logger := mdwlog.GetDefault().WithField("component", "asa-parser")
	logger.Debug("Parsing source", mdwlog.Fields{"bytes": len(src)})

Four formats are available (json, text, console, logfmt). Structured errors
from the error package are logged with LogError, which flattens their code,
severity and details into fields.
*/
package log
