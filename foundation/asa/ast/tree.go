// File: tree.go
// Title: AST Serialization Tree
// Description: Converts nodes to and from a uniform Tree structure with
//              JSON and YAML tags, used for machine-readable output.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package ast

import (
	"fmt"
	"strconv"
)

// Tree is a serializable form of a node
type Tree struct {
	Kind      string  `json:"kind" yaml:"kind"`
	Name      string  `json:"name,omitempty" yaml:"name,omitempty"`
	Operators string  `json:"operators,omitempty" yaml:"operators,omitempty"`
	Value     string  `json:"value,omitempty" yaml:"value,omitempty"`
	Children  []*Tree `json:"children,omitempty" yaml:"children,omitempty"`
}

// ToTree converts n and its descendants. A nil node yields nil.
func ToTree(n Node) *Tree {
	if n == nil {
		return nil
	}

	t := &Tree{
		Kind: n.Kind().String(),
		Name: string(Name(n)),
	}

	switch v := n.(type) {
	case *Number:
		t.Value = string(v.Value)
	case *Identifier:
		t.Value = string(v.Value)
	case *String:
		t.Value = string(v.Value)
	case *Bool:
		t.Value = strconv.FormatBool(v.Value)
	case *MathExpression:
		t.Operators = string(v.Operators)
	}

	for _, child := range Children(n) {
		t.Children = append(t.Children, ToTree(child))
	}
	return t
}

// FromTree rebuilds a node from its tree form
func FromTree(t *Tree) (Node, error) {
	if t == nil {
		return nil, fmt.Errorf("nil tree")
	}

	children := make([]Node, 0, len(t.Children))
	for i, ct := range t.Children {
		child, err := FromTree(ct)
		if err != nil {
			return nil, fmt.Errorf("%s child %d: %w", t.Kind, i, err)
		}
		children = append(children, child)
	}

	switch t.Kind {
	case "program":
		return &Program{Children: children}, nil
	case "statement":
		return &Statement{Children: children}, nil
	case "function_define":
		return &FunctionDefine{Name: []byte(t.Name), Children: children}, nil
	case "function_arguments":
		return &FunctionArguments{Children: children}, nil
	case "function_statements":
		return &FunctionStatements{Children: children}, nil
	case "expression":
		return &Expression{Children: children}, nil
	case "math_expression":
		return &MathExpression{Name: []byte(t.Name), Operators: []byte(t.Operators), Children: children}, nil
	case "function_call":
		return &FunctionCall{Name: []byte(t.Name), Children: children}, nil
	case "variable_define":
		return &VariableDefine{Children: children}, nil
	case "function_return":
		return &FunctionReturn{Children: children}, nil
	case "number":
		return &Number{Value: []byte(t.Value)}, nil
	case "identifier":
		return &Identifier{Value: []byte(t.Value)}, nil
	case "string":
		return &String{Value: []byte(t.Value)}, nil
	case "bool":
		b, err := strconv.ParseBool(t.Value)
		if err != nil {
			return nil, fmt.Errorf("bool value %q: %w", t.Value, err)
		}
		return &Bool{Value: b}, nil
	case "null":
		return &Null{}, nil
	default:
		return nil, fmt.Errorf("unknown node kind %q", t.Kind)
	}
}
