// File: visitor.go
// Title: AST Visitor Pattern Implementation
// Description: Implements the visitor pattern and a depth-first Inspect
//              helper for consumers of the Asa AST, such as evaluators and
//              the CLI renderers.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial visitor implementation

package ast

// Visitor has one method per node type
type Visitor interface {
	VisitProgram(n *Program) interface{}
	VisitStatement(n *Statement) interface{}
	VisitFunctionDefine(n *FunctionDefine) interface{}
	VisitFunctionArguments(n *FunctionArguments) interface{}
	VisitFunctionStatements(n *FunctionStatements) interface{}
	VisitExpression(n *Expression) interface{}
	VisitMathExpression(n *MathExpression) interface{}
	VisitFunctionCall(n *FunctionCall) interface{}
	VisitVariableDefine(n *VariableDefine) interface{}
	VisitFunctionReturn(n *FunctionReturn) interface{}
	VisitNumber(n *Number) interface{}
	VisitBool(n *Bool) interface{}
	VisitIdentifier(n *Identifier) interface{}
	VisitString(n *String) interface{}
	VisitNull(n *Null) interface{}
}

func (n *Program) Accept(v Visitor) interface{}            { return v.VisitProgram(n) }
func (n *Statement) Accept(v Visitor) interface{}          { return v.VisitStatement(n) }
func (n *FunctionDefine) Accept(v Visitor) interface{}     { return v.VisitFunctionDefine(n) }
func (n *FunctionArguments) Accept(v Visitor) interface{}  { return v.VisitFunctionArguments(n) }
func (n *FunctionStatements) Accept(v Visitor) interface{} { return v.VisitFunctionStatements(n) }
func (n *Expression) Accept(v Visitor) interface{}         { return v.VisitExpression(n) }
func (n *MathExpression) Accept(v Visitor) interface{}     { return v.VisitMathExpression(n) }
func (n *FunctionCall) Accept(v Visitor) interface{}       { return v.VisitFunctionCall(n) }
func (n *VariableDefine) Accept(v Visitor) interface{}     { return v.VisitVariableDefine(n) }
func (n *FunctionReturn) Accept(v Visitor) interface{}     { return v.VisitFunctionReturn(n) }
func (n *Number) Accept(v Visitor) interface{}             { return v.VisitNumber(n) }
func (n *Bool) Accept(v Visitor) interface{}               { return v.VisitBool(n) }
func (n *Identifier) Accept(v Visitor) interface{}         { return v.VisitIdentifier(n) }
func (n *String) Accept(v Visitor) interface{}             { return v.VisitString(n) }
func (n *Null) Accept(v Visitor) interface{}               { return v.VisitNull(n) }

// BaseVisitor returns nil for every node. Embed it in concrete visitors to
// only override needed methods; traversal is up to the visitor.
type BaseVisitor struct{}

func (BaseVisitor) VisitProgram(*Program) interface{}                       { return nil }
func (BaseVisitor) VisitStatement(*Statement) interface{}                   { return nil }
func (BaseVisitor) VisitFunctionDefine(*FunctionDefine) interface{}         { return nil }
func (BaseVisitor) VisitFunctionArguments(*FunctionArguments) interface{}   { return nil }
func (BaseVisitor) VisitFunctionStatements(*FunctionStatements) interface{} { return nil }
func (BaseVisitor) VisitExpression(*Expression) interface{}                 { return nil }
func (BaseVisitor) VisitMathExpression(*MathExpression) interface{}         { return nil }
func (BaseVisitor) VisitFunctionCall(*FunctionCall) interface{}             { return nil }
func (BaseVisitor) VisitVariableDefine(*VariableDefine) interface{}         { return nil }
func (BaseVisitor) VisitFunctionReturn(*FunctionReturn) interface{}         { return nil }
func (BaseVisitor) VisitNumber(*Number) interface{}                         { return nil }
func (BaseVisitor) VisitBool(*Bool) interface{}                             { return nil }
func (BaseVisitor) VisitIdentifier(*Identifier) interface{}                 { return nil }
func (BaseVisitor) VisitString(*String) interface{}                         { return nil }
func (BaseVisitor) VisitNull(*Null) interface{}                             { return nil }

// Inspect traverses the tree depth-first in child order, calling f for
// each node. If f returns false, the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, child := range Children(n) {
		Inspect(child, f)
	}
}

// Stats counts nodes by kind
type Stats map[Kind]int

// Count returns the number of nodes of each kind in the tree
func Count(n Node) Stats {
	stats := make(Stats)
	Inspect(n, func(c Node) bool {
		stats[c.Kind()]++
		return true
	})
	return stats
}
