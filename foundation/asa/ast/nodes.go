// File: nodes.go
// Title: Asa AST Node Definitions
// Description: Defines the closed set of AST node types produced by the
//              Asa parser, with kinds, child access and deep equality.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial AST node definitions

package ast

import (
	"bytes"
)

// Kind identifies the concrete type of a node
type Kind int

const (
	KindProgram Kind = iota
	KindStatement
	KindFunctionDefine
	KindFunctionArguments
	KindFunctionStatements
	KindExpression
	KindMathExpression
	KindFunctionCall
	KindVariableDefine
	KindFunctionReturn
	KindNumber
	KindBool
	KindIdentifier
	KindString
	KindNull
)

var kindNames = [...]string{
	KindProgram:            "program",
	KindStatement:          "statement",
	KindFunctionDefine:     "function_define",
	KindFunctionArguments:  "function_arguments",
	KindFunctionStatements: "function_statements",
	KindExpression:         "expression",
	KindMathExpression:     "math_expression",
	KindFunctionCall:       "function_call",
	KindVariableDefine:     "variable_define",
	KindFunctionReturn:     "function_return",
	KindNumber:             "number",
	KindBool:               "bool",
	KindIdentifier:         "identifier",
	KindString:             "string",
	KindNull:               "null",
}

// String returns the snake_case name of the kind
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Node is implemented by the node types of this package only
type Node interface {
	// Kind returns the node's kind
	Kind() Kind

	// String returns the node as a one-line S-expression
	String() string

	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}

	node()
}

// AddName is the name every MathExpression carries. Both '+' and '-'
// chains use it; the operators themselves are kept in Operators.
const AddName = "add"

// Program is the root: a sequence of function definitions
type Program struct {
	Children []Node
}

// Statement groups statements; the parser does not produce it
type Statement struct {
	Children []Node
}

// FunctionDefine is fn name(args) { statements }. Children are the
// FunctionArguments followed by one FunctionStatements per statement group.
type FunctionDefine struct {
	Name     []byte
	Children []Node
}

// FunctionArguments holds the argument expressions of a call or definition
type FunctionArguments struct {
	Children []Node
}

// FunctionStatements is a run of statements terminated by one ';'
type FunctionStatements struct {
	Children []Node
}

// Expression wraps an expression; the parser does not produce it
type Expression struct {
	Children []Node
}

// MathExpression is a flat chain v0 op1 v1 op2 v2 ... where Operators[i]
// ('+' or '-') stands between Children[i] and Children[i+1]
type MathExpression struct {
	Name      []byte
	Operators []byte
	Children  []Node
}

// FunctionCall is name(args); its only child is a FunctionArguments
type FunctionCall struct {
	Name     []byte
	Children []Node
}

// VariableDefine is let name = value; Children is [Identifier, value]
type VariableDefine struct {
	Children []Node
}

// FunctionReturn is return value; Children holds the value
type FunctionReturn struct {
	Children []Node
}

// Number is a run of decimal digits
type Number struct {
	Value []byte
}

// Bool is true or false
type Bool struct {
	Value bool
}

// Identifier is a letter followed by letters and digits
type Identifier struct {
	Value []byte
}

// String is the content of a quoted string, quotes excluded
type String struct {
	Value []byte
}

// Null is the empty value
type Null struct{}

func (*Program) Kind() Kind            { return KindProgram }
func (*Statement) Kind() Kind          { return KindStatement }
func (*FunctionDefine) Kind() Kind     { return KindFunctionDefine }
func (*FunctionArguments) Kind() Kind  { return KindFunctionArguments }
func (*FunctionStatements) Kind() Kind { return KindFunctionStatements }
func (*Expression) Kind() Kind         { return KindExpression }
func (*MathExpression) Kind() Kind     { return KindMathExpression }
func (*FunctionCall) Kind() Kind       { return KindFunctionCall }
func (*VariableDefine) Kind() Kind     { return KindVariableDefine }
func (*FunctionReturn) Kind() Kind     { return KindFunctionReturn }
func (*Number) Kind() Kind             { return KindNumber }
func (*Bool) Kind() Kind               { return KindBool }
func (*Identifier) Kind() Kind         { return KindIdentifier }
func (*String) Kind() Kind             { return KindString }
func (*Null) Kind() Kind               { return KindNull }

func (*Program) node()            {}
func (*Statement) node()          {}
func (*FunctionDefine) node()     {}
func (*FunctionArguments) node()  {}
func (*FunctionStatements) node() {}
func (*Expression) node()         {}
func (*MathExpression) node()     {}
func (*FunctionCall) node()       {}
func (*VariableDefine) node()     {}
func (*FunctionReturn) node()     {}
func (*Number) node()             {}
func (*Bool) node()               {}
func (*Identifier) node()         {}
func (*String) node()             {}
func (*Null) node()               {}

// Children returns the child nodes of n, or nil for leaves
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Program:
		return v.Children
	case *Statement:
		return v.Children
	case *FunctionDefine:
		return v.Children
	case *FunctionArguments:
		return v.Children
	case *FunctionStatements:
		return v.Children
	case *Expression:
		return v.Children
	case *MathExpression:
		return v.Children
	case *FunctionCall:
		return v.Children
	case *VariableDefine:
		return v.Children
	case *FunctionReturn:
		return v.Children
	default:
		return nil
	}
}

// Name returns the name of a FunctionDefine, FunctionCall or
// MathExpression, or nil for other nodes
func Name(n Node) []byte {
	switch v := n.(type) {
	case *FunctionDefine:
		return v.Name
	case *FunctionCall:
		return v.Name
	case *MathExpression:
		return v.Name
	default:
		return nil
	}
}

// Equal reports whether a and b are structurally identical trees. A nil
// slice equals an empty one; nil nodes equal only each other.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch x := a.(type) {
	case *Number:
		return bytes.Equal(x.Value, b.(*Number).Value)
	case *Identifier:
		return bytes.Equal(x.Value, b.(*Identifier).Value)
	case *String:
		return bytes.Equal(x.Value, b.(*String).Value)
	case *Bool:
		return x.Value == b.(*Bool).Value
	case *Null:
		return true
	case *MathExpression:
		if !bytes.Equal(x.Operators, b.(*MathExpression).Operators) {
			return false
		}
	}

	if !bytes.Equal(Name(a), Name(b)) {
		return false
	}
	return equalChildren(Children(a), Children(b))
}

func equalChildren(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
