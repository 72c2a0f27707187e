// File: timer.go
// Title: Performance Timer
// Description: Measures the duration of an operation and logs it with the
//              owning logger when stopped.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-18 v0.2.0: Reduced to Stop/StopWithError

package log

import (
	"time"
)

// Timer measures the duration of a single operation
type Timer struct {
	logger    *Logger
	operation string
	start     time.Time
	level     Level
	fields    Fields
	stopped   bool
}

// NewTimer creates and starts a timer for operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		start:     time.Now(),
		level:     LevelDebug,
		fields:    make(Fields),
	}
}

// WithField attaches a field to the completion entry
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the time since the timer started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Stop logs the completion of the operation and returns its duration.
// Only the first call logs.
func (t *Timer) Stop() time.Duration {
	elapsed := t.Elapsed()
	if t.stopped {
		return elapsed
	}
	t.stopped = true

	fields := t.fields.Merge(Fields{"operation": t.operation})
	t.logger.log(t.level, t.operation+" completed", nil, elapsed, fields)
	return elapsed
}

// StopWithError logs a failed operation at warn level and returns its duration
func (t *Timer) StopWithError(err error) time.Duration {
	elapsed := t.Elapsed()
	if t.stopped {
		return elapsed
	}
	t.stopped = true

	fields := t.fields.Merge(Fields{"operation": t.operation})
	t.logger.log(LevelWarn, t.operation+" failed", err, elapsed, fields)
	return elapsed
}
