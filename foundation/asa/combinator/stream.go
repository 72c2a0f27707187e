// File: stream.go
// Title: Token Stream
// Description: A value-typed cursor over a materialized token slice.
//              Copying a Stream is the snapshot used for backtracking.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package combinator

// DefaultMaxDepth bounds rule nesting when no explicit limit is set
const DefaultMaxDepth = 256

// Stream is an immutable view of a token sequence at a position. Parsers
// receive a Stream by value and return the advanced copy; the caller's copy
// is untouched, so restoring a position means reusing the old value.
type Stream[T any] struct {
	tokens   []T
	pos      int
	depth    int
	maxDepth int
}

// NewStream creates a stream at the first token with the default depth limit
func NewStream[T any](tokens []T) Stream[T] {
	return Stream[T]{tokens: tokens, maxDepth: DefaultMaxDepth}
}

// WithMaxDepth returns a copy with a different rule nesting limit.
// Zero or less disables the limit.
func (s Stream[T]) WithMaxDepth(limit int) Stream[T] {
	s.maxDepth = limit
	return s
}

// Pos returns the index of the next token
func (s Stream[T]) Pos() int {
	return s.pos
}

// AtEnd reports whether every token has been consumed
func (s Stream[T]) AtEnd() bool {
	return s.pos >= len(s.tokens)
}

// Peek returns the next token without consuming it
func (s Stream[T]) Peek() (T, bool) {
	if s.AtEnd() {
		var zero T
		return zero, false
	}
	return s.tokens[s.pos], true
}

// Advance returns a copy moved n tokens forward, clamped to the end
func (s Stream[T]) Advance(n int) Stream[T] {
	s.pos += n
	if s.pos > len(s.tokens) {
		s.pos = len(s.tokens)
	}
	return s
}

// Remaining returns the unconsumed tokens. The slice aliases the stream's
// storage and must not be modified.
func (s Stream[T]) Remaining() []T {
	return s.tokens[s.pos:]
}
