// File: token.go
// Title: Asa Token Definitions
// Description: Defines token kinds and the Token value produced by the
//              lexer, including source positions and display helpers used
//              in parser error messages.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial token definitions

package lexer

import (
	"fmt"
	"strconv"
)

// Kind classifies a token
type Kind int

const (
	// Illegal marks a byte no other kind accepts
	Illegal Kind = iota

	// Character classes; one token per byte
	Alpha      // a-z A-Z
	Digit      // 0-9
	WhiteSpace // space, tab, CR, LF
	Quote      // "

	// Operators and delimiters
	Plus       // +
	Dash       // -
	Equal      // =
	Semicolon  // ;
	LeftParen  // (
	RightParen // )
	LeftCurly  // {
	RightCurly // }
	Comma      // ,

	// Keywords
	Fn     // fn
	Let    // let
	Return // return
	True   // true
	False  // false

	// Comment runs from // to the end of the line
	Comment
)

var kindNames = map[Kind]string{
	Illegal:    "ILLEGAL",
	Alpha:      "ALPHA",
	Digit:      "DIGIT",
	WhiteSpace: "WHITESPACE",
	Quote:      "QUOTE",
	Plus:       "PLUS",
	Dash:       "DASH",
	Equal:      "EQUAL",
	Semicolon:  "SEMICOLON",
	LeftParen:  "LEFT_PAREN",
	RightParen: "RIGHT_PAREN",
	LeftCurly:  "LEFT_CURLY",
	RightCurly: "RIGHT_CURLY",
	Comma:      "COMMA",
	Fn:         "FN",
	Let:        "LET",
	Return:     "RETURN",
	True:       "TRUE",
	False:      "FALSE",
	Comment:    "COMMENT",
}

// symbols holds the fixed spelling of single-byte kinds and keywords
var symbols = map[Kind]string{
	Quote:      `"`,
	Plus:       "+",
	Dash:       "-",
	Equal:      "=",
	Semicolon:  ";",
	LeftParen:  "(",
	RightParen: ")",
	LeftCurly:  "{",
	RightCurly: "}",
	Comma:      ",",
	Fn:         "fn",
	Let:        "let",
	Return:     "return",
	True:       "true",
	False:      "false",
}

// Name returns the upper-case name of the kind, e.g. LEFT_PAREN
func (k Kind) Name() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// String describes the kind the way error messages refer to it:
// quoted spelling for symbols and keywords, a class name otherwise.
func (k Kind) String() string {
	if sym, ok := symbols[k]; ok {
		return "'" + sym + "'"
	}
	switch k {
	case Alpha:
		return "letter"
	case Digit:
		return "digit"
	case WhiteSpace:
		return "whitespace"
	case Comment:
		return "comment"
	case Illegal:
		return "illegal character"
	default:
		return "unknown"
	}
}

// IsKeyword reports whether the kind is a reserved word
func (k Kind) IsKeyword() bool {
	return k >= Fn && k <= False
}

// Token is one classified lexeme with its source position
type Token struct {
	Kind   Kind   // Classification
	Lexeme string // Raw source bytes
	Offset int    // Byte offset (0-based)
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based, in bytes)
}

// TokenKind returns the token's kind; it lets combinators match by kind
func (t Token) TokenKind() Kind {
	return t.Kind
}

// String describes the token for error messages, e.g. 'foo' or whitespace
func (t Token) String() string {
	switch t.Kind {
	case WhiteSpace:
		switch t.Lexeme {
		case "\n":
			return "newline"
		case "\t":
			return "tab"
		}
		return "whitespace"
	case Comment:
		return "comment"
	case Illegal:
		return "illegal character " + strconv.Quote(t.Lexeme)
	default:
		return "'" + t.Lexeme + "'"
	}
}

// Debug returns the token with kind and position, e.g. ALPHA("a")@1:5
func (t Token) Debug() string {
	return fmt.Sprintf("%s(%s)@%d:%d", t.Kind.Name(), strconv.Quote(t.Lexeme), t.Line, t.Column)
}
