// File: doc.go
// Title: Combinator Package Documentation
// Description: Package documentation for the parser combinator library.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial documentation

/*
Package combinator is a small backtracking parser combinator library over
materialized token slices.

A Parser is a function from a Stream to an output and the advanced Stream.
Streams are values: a parser that fails returns its input unchanged, so
every alternative starts from exactly the position its predecessor started
from, and snapshots cost nothing.

	digit := combinator.Is[lexer.Token](lexer.Digit)
	number := combinator.Rule("number", combinator.Many1(digit))

Failures are *Rejection values. TokenMismatch and RuleExhausted are
recoverable and drive backtracking in Alt, Many0, Many1 and Opt.
InvariantViolation, Unimplemented and DepthExceeded are fatal and pass
through every combinator unchanged.
*/
package combinator
