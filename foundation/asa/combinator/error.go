// File: error.go
// Title: Parse Rejections
// Description: Defines the error taxonomy of the combinator library.
//              Recoverable rejections drive backtracking; fatal ones pass
//              through every alternative, repetition and option unchanged.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package combinator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a rejection
type ErrorKind int

const (
	// TokenMismatch means a token predicate rejected the next token or
	// the input ended
	TokenMismatch ErrorKind = iota

	// RuleExhausted means every branch of an alternative failed
	RuleExhausted

	// InvariantViolation signals a defect in the grammar, not bad input
	InvariantViolation

	// Unimplemented means the input uses a construct the grammar declares
	// but does not support
	Unimplemented

	// DepthExceeded means rule nesting passed the stream's limit
	DepthExceeded
)

// String returns the string representation of the kind
func (k ErrorKind) String() string {
	switch k {
	case TokenMismatch:
		return "token mismatch"
	case RuleExhausted:
		return "rule exhausted"
	case InvariantViolation:
		return "invariant violation"
	case Unimplemented:
		return "unimplemented"
	case DepthExceeded:
		return "depth exceeded"
	default:
		return "unknown"
	}
}

// Fatal reports whether the kind stops backtracking
func (k ErrorKind) Fatal() bool {
	return k >= InvariantViolation
}

// EndOfInput is the Found value of a rejection at the end of the stream
const EndOfInput = "end of input"

// Rejection is the error returned by every parser in this package
type Rejection struct {
	Kind     ErrorKind
	Pos      int      // Token index where the failure was detected
	Rule     string   // Innermost named rule that rejected
	Expected []string // What would have been accepted at Pos
	Found    string   // Description of the token at Pos
	Cause    error

	// open marks a rejection of a rule that failed at its first token;
	// the enclosing rule claims it
	open bool
}

// Error implements the error interface
func (r *Rejection) Error() string {
	var b strings.Builder
	b.WriteString(r.Kind.String())
	if r.Rule != "" {
		fmt.Fprintf(&b, " in %s", r.Rule)
	}
	fmt.Fprintf(&b, " at token %d", r.Pos)
	if r.Found != "" {
		fmt.Fprintf(&b, ": found %s", r.Found)
	}
	if len(r.Expected) > 0 {
		fmt.Fprintf(&b, ", expected %s", r.ExpectedString())
	}
	if r.Cause != nil && r.Kind.Fatal() {
		fmt.Fprintf(&b, " (%v)", r.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying cause
func (r *Rejection) Unwrap() error {
	return r.Cause
}

// Fatal reports whether the rejection stops backtracking
func (r *Rejection) Fatal() bool {
	return r.Kind.Fatal()
}

// ExpectedString joins the expectations as "a, b or c"
func (r *Rejection) ExpectedString() string {
	switch len(r.Expected) {
	case 0:
		return ""
	case 1:
		return r.Expected[0]
	default:
		return strings.Join(r.Expected[:len(r.Expected)-1], ", ") + " or " + r.Expected[len(r.Expected)-1]
	}
}

// AsRejection extracts a rejection from err
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// IsRecoverable reports whether err may be absorbed by an enclosing
// alternative, repetition or option
func IsRecoverable(err error) bool {
	r, ok := AsRejection(err)
	return ok && !r.Fatal()
}

// Fail builds a recoverable mismatch at the stream's position
func Fail[T any](in Stream[T], expected ...string) *Rejection {
	return &Rejection{
		Kind:     TokenMismatch,
		Pos:      in.Pos(),
		Expected: expected,
		Found:    Describe(in),
	}
}

// Describe names the next token of in for error messages, using its
// String method when it has one
func Describe[T any](in Stream[T]) string {
	tok, ok := in.Peek()
	if !ok {
		return EndOfInput
	}
	return fmt.Sprint(tok)
}

// mergeExpected appends the entries of more that are not already present
func mergeExpected(into []string, more []string) []string {
	for _, m := range more {
		dup := false
		for _, have := range into {
			if have == m {
				dup = true
				break
			}
		}
		if !dup {
			into = append(into, m)
		}
	}
	return into
}
