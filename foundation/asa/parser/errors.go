// File: errors.go
// Title: Parse Error Conversion
// Description: Maps combinator rejections onto structured errors with
//              codes, source positions and human-readable messages.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package parser

import (
	"errors"
	"fmt"

	mdwerror "github.com/msto63/asa/foundation/core/error"

	"github.com/msto63/asa/foundation/asa/combinator"
	"github.com/msto63/asa/foundation/asa/lexer"
)

// Position is a location in the source text
type Position struct {
	Offset int // Byte offset (0-based)
	Line   int // Line number (1-based)
	Column int // Column number (1-based)
}

// positionOf returns the position of token index i, or the end of the
// source when i is past the last token
func positionOf(src string, tokens []lexer.Token, i int) Position {
	if i >= 0 && i < len(tokens) {
		t := tokens[i]
		return Position{Offset: t.Offset, Line: t.Line, Column: t.Column}
	}

	pos := Position{Offset: len(src), Line: 1, Column: 1}
	for j := 0; j < len(src); j++ {
		if src[j] == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}

// convert turns a parse failure into a structured error. The message reads
// "unexpected X at line L, column C, expected Y" for syntax errors; the
// rejection's fields are kept as details.
func (p *Parser) convert(err error, src string, tokens []lexer.Token, operation string) error {
	r, ok := combinator.AsRejection(err)
	if !ok {
		return mdwerror.Wrap(err, "parser failed").
			WithCode(mdwerror.CodeAsaInternal).
			WithOperation(operation)
	}

	pos := positionOf(src, tokens, r.Pos)
	at := fmt.Sprintf("at line %d, column %d", pos.Line, pos.Column)

	var code mdwerror.Code
	var message string
	switch r.Kind {
	case combinator.Unimplemented:
		code = mdwerror.CodeAsaUnimplemented
		message = fmt.Sprintf("%v %s", r.Cause, at)
	case combinator.DepthExceeded:
		code = mdwerror.CodeAsaLimit
		message = fmt.Sprintf("%v %s", r.Cause, at)
	case combinator.InvariantViolation:
		code = mdwerror.CodeAsaInternal
		message = fmt.Sprintf("internal parser error %s: %v", at, r.Cause)
	default:
		code = mdwerror.CodeAsaSyntax
		message = fmt.Sprintf("unexpected %s %s", r.Found, at)
		if expected := r.ExpectedString(); expected != "" {
			message += ", expected " + expected
		}
	}

	return mdwerror.New(message).
		WithCode(code).
		WithOperation(operation).
		WithDetails(map[string]interface{}{
			"line":        pos.Line,
			"column":      pos.Column,
			"offset":      pos.Offset,
			"token_index": r.Pos,
			"rule":        r.Rule,
			"expected":    r.ExpectedString(),
			"found":       r.Found,
			"kind":        r.Kind.String(),
		})
}

// Location extracts the source position from an error returned by Parse
// or ParseRule
func Location(err error) (Position, bool) {
	var pos Position
	line, ok1 := detailInt(err, "line")
	column, ok2 := detailInt(err, "column")
	offset, ok3 := detailInt(err, "offset")
	if !ok1 || !ok2 || !ok3 {
		return pos, false
	}
	return Position{Offset: offset, Line: line, Column: column}, true
}

func detailInt(err error, key string) (int, bool) {
	var e *mdwerror.Error
	if !errors.As(err, &e) {
		return 0, false
	}
	v, ok := e.Detail(key)
	if !ok {
		return 0, false
	}
	n, ok := v.(int)
	return n, ok
}
