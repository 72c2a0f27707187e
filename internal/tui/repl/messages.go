package repl

import "time"

// Message types for tea.Cmd async operations

// evaluatedMsg is sent when an input line has been parsed
type evaluatedMsg struct {
	input    string
	output   string
	err      error
	duration time.Duration
}
