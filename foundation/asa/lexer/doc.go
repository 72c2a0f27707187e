// File: doc.go
// Title: Asa Lexer Package Documentation
// Description: Package documentation for the Asa lexer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial documentation

/*
Package lexer turns Asa source text into tokens.

Tokens are deliberately fine grained. Letters, digits and whitespace are
one token per byte; the parser assembles identifiers, numbers and strings
from them. Only keywords and comments span several bytes:

	fn add(a b) { return a+b; }

lexes to FN, WHITESPACE, ALPHA("a"), ALPHA("d"), ALPHA("d"), LEFT_PAREN,
and so on. A keyword is recognized only when a whole run of letters and
digits spells it, so "fnord" is five letters.

The lexer never fails. Bytes outside the alphabet become ILLEGAL tokens
and Source(Lex(src)) == src for every input.
*/
package lexer
