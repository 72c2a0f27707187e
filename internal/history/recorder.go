package history

import (
	"context"
	"time"

	mdwerror "github.com/msto63/asa/foundation/core/error"
	mdwlog "github.com/msto63/asa/foundation/core/log"

	"github.com/msto63/asa/foundation/asa/parser"
)

// NewEntry starts an entry for one run of command over input
func NewEntry(command, source, input string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Command:   command,
		Source:    source,
		Input:     input,
		Status:    StatusOK,
	}
}

// Complete records a successful run
func (e *Entry) Complete(tokens, functions int, duration time.Duration) *Entry {
	e.Status = StatusOK
	e.Tokens = tokens
	e.Functions = functions
	e.Duration = duration
	return e
}

// Reject records a failed run with the error's code and source position
func (e *Entry) Reject(err error, tokens int, duration time.Duration) *Entry {
	e.Status = StatusRejected
	e.Tokens = tokens
	e.Duration = duration
	e.ErrorCode = mdwerror.GetCode(err).String()
	e.Severity = mdwerror.GetSeverity(err).String()
	e.Message = err.Error()
	if pos, ok := parser.Location(err); ok {
		e.Line = pos.Line
		e.Column = pos.Column
	}
	return e
}

// Recorder writes entries to a store without failing the caller. A nil
// Recorder discards everything.
type Recorder struct {
	store  Store
	logger *mdwlog.Logger
}

// NewRecorder creates a recorder for store
func NewRecorder(store Store, logger *mdwlog.Logger) *Recorder {
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	return &Recorder{
		store:  store,
		logger: logger.WithName("history"),
	}
}

// Record stores entry. Storage failures do not fail the run, so they are
// logged with low severity and swallowed.
func (r *Recorder) Record(ctx context.Context, entry *Entry) {
	if r == nil || r.store == nil {
		return
	}
	if err := r.store.Record(ctx, entry); err != nil {
		r.logger.LogError(mdwerror.Wrap(err, "failed to record history entry").
			WithSeverity(mdwerror.SeverityLow).
			WithOperation("history.Recorder").
			WithDetail("command", entry.Command))
		return
	}
	r.logger.Debug("History entry recorded", mdwlog.Fields{
		"id":     entry.ID,
		"status": string(entry.Status),
	})
}

// Store returns the underlying store
func (r *Recorder) Store() Store {
	if r == nil {
		return nil
	}
	return r.store
}

// Close closes the underlying store
func (r *Recorder) Close() error {
	if r == nil || r.store == nil {
		return nil
	}
	return r.store.Close()
}
