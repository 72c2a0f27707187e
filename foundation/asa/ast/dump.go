// File: dump.go
// Title: AST S-Expression Rendering
// Description: Renders nodes as S-expressions, on one line for String and
//              indented one child per line for Dump.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package ast

import (
	"strconv"
	"strings"
)

// Dump renders n as an indented S-expression, one child per line:
//
//	(program
//	  (function_define "a"
//	    (function_arguments)
//	    (function_statements
//	      (function_return
//	        (number 1)))))
func Dump(n Node) string {
	var b strings.Builder
	write(&b, n, 0, true)
	return b.String()
}

func (n *Program) String() string            { return sexpr(n) }
func (n *Statement) String() string          { return sexpr(n) }
func (n *FunctionDefine) String() string     { return sexpr(n) }
func (n *FunctionArguments) String() string  { return sexpr(n) }
func (n *FunctionStatements) String() string { return sexpr(n) }
func (n *Expression) String() string         { return sexpr(n) }
func (n *MathExpression) String() string     { return sexpr(n) }
func (n *FunctionCall) String() string       { return sexpr(n) }
func (n *VariableDefine) String() string     { return sexpr(n) }
func (n *FunctionReturn) String() string     { return sexpr(n) }
func (n *Number) String() string             { return sexpr(n) }
func (n *Bool) String() string               { return sexpr(n) }
func (n *Identifier) String() string         { return sexpr(n) }
func (n *String) String() string             { return sexpr(n) }
func (n *Null) String() string               { return sexpr(n) }

func sexpr(n Node) string {
	var b strings.Builder
	write(&b, n, 0, false)
	return b.String()
}

func write(b *strings.Builder, n Node, depth int, pretty bool) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}

	b.WriteByte('(')
	b.WriteString(n.Kind().String())

	switch v := n.(type) {
	case *Number:
		b.WriteByte(' ')
		b.Write(v.Value)
	case *Identifier:
		b.WriteByte(' ')
		b.Write(v.Value)
	case *String:
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(string(v.Value)))
	case *Bool:
		b.WriteByte(' ')
		b.WriteString(strconv.FormatBool(v.Value))
	case *FunctionDefine, *FunctionCall:
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(string(Name(n))))
	case *MathExpression:
		b.WriteByte(' ')
		b.Write(v.Name)
	}

	math, _ := n.(*MathExpression)
	for i, child := range Children(n) {
		if math != nil && i > 0 && i-1 < len(math.Operators) {
			separate(b, depth+1, pretty)
			b.WriteByte(math.Operators[i-1])
		}
		separate(b, depth+1, pretty)
		write(b, child, depth+1, pretty)
	}
	b.WriteByte(')')
}

func separate(b *strings.Builder, depth int, pretty bool) {
	if !pretty {
		b.WriteByte(' ')
		return
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("  ", depth))
}
