// File: doc.go
// Title: Asa AST Package Documentation
// Description: Package documentation for the Asa syntax tree.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial documentation

/*
Package ast defines the syntax tree produced by the Asa parser.

Node is a closed sum type: only the pointer types of this package implement
it, so a type switch over the fifteen node types is exhaustive. Nodes are
built bottom-up by the parser and never modified afterwards; every child
belongs to exactly one parent.

Equal compares trees structurally and is what golden tests use. String and
Dump render S-expressions, ToTree produces a JSON/YAML friendly form, and
Inspect walks a tree depth-first.
*/
package ast
