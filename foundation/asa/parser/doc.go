// File: doc.go
// Title: Parser Package Documentation
// Description: Package documentation for the Asa parser.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial documentation

/*
Package parser turns Asa source text into an abstract syntax tree.

The grammar is built once from the combinator package and shared by all
parsers. Parse reads a whole program; ParseRule runs a single named rule
and returns whatever input it left:

	p, err := parser.New(parser.Options{Logger: logger})
	if err != nil {
		return err
	}
	program, err := p.Parse("fn main() { return 1; }")

Failures are *error.Error values from the foundation error package with
one of the codes ASA_SYNTAX, ASA_UNIMPLEMENTED, ASA_LIMIT or ASA_INTERNAL.
Their details carry the line, column and byte offset of the offending
token together with the rule that failed and what it expected; Location
reads the position back.

Whitespace between tokens is insignificant. Comments are recognized by
the lexer but rejected by the parser as unsupported.
*/
package parser
