// File: parser_test.go
// Title: Asa Parser Tests
// Description: Golden tests for every grammar rule, rule priorities,
//              whole-program parsing and error reporting.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial tests

package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/msto63/asa/foundation/asa/ast"
	"github.com/msto63/asa/foundation/asa/lexer"
	mdwerror "github.com/msto63/asa/foundation/core/error"
	mdwlog "github.com/msto63/asa/foundation/core/log"
)

func id(name string) ast.Node   { return &ast.Identifier{Value: []byte(name)} }
func num(digits string) ast.Node { return &ast.Number{Value: []byte(digits)} }
func boolean(v bool) ast.Node    { return &ast.Bool{Value: v} }
func str(s string) ast.Node      { return &ast.String{Value: []byte(s)} }

func args(children ...ast.Node) ast.Node {
	return &ast.FunctionArguments{Children: children}
}

func call(name string, children ...ast.Node) ast.Node {
	return &ast.FunctionCall{Name: []byte(name), Children: []ast.Node{args(children...)}}
}

func math(ops string, children ...ast.Node) ast.Node {
	return &ast.MathExpression{Name: []byte(ast.AddName), Operators: []byte(ops), Children: children}
}

func define(name string, value ast.Node) ast.Node {
	return &ast.VariableDefine{Children: []ast.Node{id(name), value}}
}

func ret(value ast.Node) ast.Node {
	return &ast.FunctionReturn{Children: []ast.Node{value}}
}

func stmts(children ...ast.Node) ast.Node {
	return &ast.FunctionStatements{Children: children}
}

func fn(name string, children ...ast.Node) ast.Node {
	return &ast.FunctionDefine{Name: []byte(name), Children: children}
}

func newTestParser(t *testing.T, opts Options) *Parser {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = mdwlog.Discard()
	}
	p, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func TestRuleGoldens(t *testing.T) {
	p := newTestParser(t, Options{})

	tests := []struct {
		name string
		rule string
		src  string
		want ast.Node
		rest string
	}{
		{"identifier", RuleIdentifier, "hello", id("hello"), ""},
		{"identifier with digits", RuleIdentifier, "x1y2", id("x1y2"), ""},
		{"identifier stops at operator", RuleIdentifier, "hello+1", id("hello"), "+1"},
		{"identifier stops at space", RuleIdentifier, "hello world", id("hello"), " world"},
		{"number", RuleNumber, "123", num("123"), ""},
		{"number ignores sign", RuleMathExpression, "1-23", math("-", num("1"), num("23")), ""},
		{"true", RuleBoolean, "true", boolean(true), ""},
		{"false", RuleBoolean, "false", boolean(false), ""},
		{"string", RuleString, `"hello world"`, str("hello world"), ""},
		{"empty string", RuleString, `""`, str(""), ""},
		{"string with keywords", RuleString, `"let it be true"`, str("let it be true"), ""},
		{"call without arguments", RuleFunctionCall, "foo()", call("foo"), ""},
		{"call with one argument", RuleFunctionCall, "foo(a)", call("foo", id("a")), ""},
		{"call with comma arguments", RuleFunctionCall, "foo(a, b, c)", call("foo", id("a"), id("b"), id("c")), ""},
		{"call with space arguments", RuleFunctionCall, "foo(1 true \"s\")", call("foo", num("1"), boolean(true), str("s")), ""},
		{"call with math argument", RuleFunctionCall, "foo(a+1)", call("foo", math("+", id("a"), num("1"))), ""},
		{"value prefers identifier", RuleValue, "abc", id("abc"), ""},
		{"value number", RuleValue, "42", num("42"), ""},
		{"value boolean", RuleValue, "false", boolean(false), ""},
		{"flat math", RuleMathExpression, "1+1+1", math("++", num("1"), num("1"), num("1")), ""},
		{"math keeps operators", RuleMathExpression, "a - 2 + b", math("-+", id("a"), num("2"), id("b")), ""},
		{"lone value is bare", RuleMathExpression, "7", num("7"), ""},
		{"math stops at semicolon", RuleMathExpression, "1+1;", math("+", num("1"), num("1")), ";"},
		{"expression boolean", RuleExpression, "true", boolean(true), ""},
		{"expression string", RuleExpression, `"hi"`, str("hi"), ""},
		{"let number", RuleVariableDefine, "let a = 123;", define("a", num("123")), ";"},
		{"let bool", RuleVariableDefine, "let a = true;", define("a", boolean(true)), ";"},
		{"let math", RuleVariableDefine, "let a = 1 + 1;", define("a", math("+", num("1"), num("1"))), ";"},
		{"let compact", RuleVariableDefine, "let x=a+b", define("x", math("+", id("a"), id("b"))), ""},
		{"return number", RuleFunctionReturn, "return 1", ret(num("1")), ""},
		{"return call", RuleFunctionReturn, "return foo(x)", ret(call("foo", id("x"))), ""},
		{"statement run", RuleStatement, "let x = 1 return x;", stmts(define("x", num("1")), ret(id("x"))), ""},
		{"arguments", RuleArguments, "a,b", args(id("a"), id("b")), ""},
		{"function define", RuleFunctionDefine, "fn a(){return 1;}",
			fn("a", args(), stmts(ret(num("1")))), ""},
		{"function define with arguments", RuleFunctionDefine, "fn add(a, b) { let x = a + b; return x; }",
			fn("add", args(id("a"), id("b")),
				stmts(define("x", math("+", id("a"), id("b")))),
				stmts(ret(id("x")))), ""},
		{"empty program", RuleProgram, "", &ast.Program{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := p.ParseRule(tt.rule, tt.src)
			if err != nil {
				t.Fatalf("ParseRule(%s, %q) error = %v", tt.rule, tt.src, err)
			}
			if diff := cmp.Diff(tt.want, result.Node, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("ParseRule(%s, %q) mismatch (-want +got):\n%s", tt.rule, tt.src, diff)
			}
			if !ast.Equal(tt.want, result.Node) {
				t.Errorf("ast.Equal disagrees with cmp for %q", tt.src)
			}
			if result.Rest != tt.rest {
				t.Errorf("rest = %q, want %q", result.Rest, tt.rest)
			}
		})
	}
}

func TestRuleRejections(t *testing.T) {
	p := newTestParser(t, Options{})

	tests := []struct {
		rule string
		src  string
	}{
		{RuleIdentifier, "1abc"},
		{RuleNumber, "-123"},
		{RuleNumber, "abc"},
		{RuleBoolean, "maybe"},
		{RuleBoolean, "TRUE"},
		{RuleString, `"unterminated`},
		{RuleString, `"a+b"`},
		{RuleFunctionCall, "foo"},
		{RuleFunctionCall, "foo(a"},
		{RuleVariableDefine, "let = 1"},
		{RuleFunctionReturn, "returnx"},
		{RuleStatement, "let a = 1"},
		{RuleFunctionDefine, "fn a(){}"},
		{RuleFunctionDefine, "fn(){return 1;}"},
	}

	for _, tt := range tests {
		t.Run(tt.rule+"/"+tt.src, func(t *testing.T) {
			_, err := p.ParseRule(tt.rule, tt.src)
			if !mdwerror.HasCode(err, mdwerror.CodeAsaSyntax) {
				t.Errorf("ParseRule(%s, %q) error = %v, want ASA_SYNTAX", tt.rule, tt.src, err)
			}
		})
	}
}

func TestExpressionPriority(t *testing.T) {
	p := newTestParser(t, Options{})

	// math_expression precedes function_call, so a call in expression
	// position is read as its bare name
	for i := 0; i < 3; i++ {
		result, err := p.ParseRule(RuleExpression, "foo(a)")
		if err != nil {
			t.Fatalf("ParseRule() error = %v", err)
		}
		if !ast.Equal(result.Node, id("foo")) || result.Rest != "(a)" {
			t.Fatalf("run %d: got %s, rest %q", i, result.Node, result.Rest)
		}
	}

	result, err := p.ParseRule(RuleVariableDefine, "let a = foo();")
	if err != nil {
		t.Fatalf("ParseRule() error = %v", err)
	}
	if !ast.Equal(result.Node, define("a", id("foo"))) || result.Rest != "();" {
		t.Errorf("let with call = %s, rest %q", result.Node, result.Rest)
	}

	// keyword shapes win over identifiers only on a word boundary
	result, err = p.ParseRule(RuleExpression, "truex")
	if err != nil {
		t.Fatalf("ParseRule() error = %v", err)
	}
	if !ast.Equal(result.Node, id("truex")) {
		t.Errorf("truex = %s, want identifier", result.Node)
	}

	result, err = p.ParseRule(RuleFunctionCall, "fnord()")
	if err != nil {
		t.Fatalf("ParseRule() error = %v", err)
	}
	if !ast.Equal(result.Node, call("fnord")) {
		t.Errorf("fnord() = %s", result.Node)
	}
}

func TestParseProgram(t *testing.T) {
	p := newTestParser(t, Options{})

	src := `
fn main() {
	let greeting = "hello world";
	return greeting;
}

fn add(a, b) {
	return a + b;
}
`
	program, err := p.Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := &ast.Program{Children: []ast.Node{
		fn("main", args(),
			stmts(define("greeting", str("hello world"))),
			stmts(ret(id("greeting")))),
		fn("add", args(id("a"), id("b")),
			stmts(ret(math("+", id("a"), id("b"))))),
	}}

	if diff := cmp.Diff(want, program, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmpty(t *testing.T) {
	p := newTestParser(t, Options{})

	for _, src := range []string{"", "  \n\t"} {
		program, err := p.Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", src, err)
		}
		if len(program.Children) != 0 {
			t.Errorf("Parse(%q) = %s", src, program)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		code    mdwerror.Code
		line    int
		column  int
		message string
		rule    string
	}{
		{
			name:    "missing closing brace",
			src:     "fn a(){return 1;",
			code:    mdwerror.CodeAsaSyntax,
			line:    1,
			column:  17,
			message: "unexpected end of input at line 1, column 17, expected '}'",
			rule:    RuleFunctionDefine,
		},
		{
			name:    "call in let",
			src:     "fn a(){let a = foo();}",
			code:    mdwerror.CodeAsaSyntax,
			line:    1,
			column:  19,
			message: "unexpected '(' at line 1, column 19, expected ';'",
			rule:    RuleStatement,
		},
		{
			name:    "number as function name",
			src:     "fn 1(){return 1;}",
			code:    mdwerror.CodeAsaSyntax,
			line:    1,
			column:  4,
			message: "unexpected '1' at line 1, column 4, expected identifier",
			rule:    RuleFunctionDefine,
		},
		{
			name:    "trailing garbage",
			src:     "fn a(){return 1;}\njunk",
			code:    mdwerror.CodeAsaSyntax,
			line:    2,
			column:  1,
			message: "unexpected 'j' at line 2, column 1, expected function_define",
			rule:    RuleFunctionDefine,
		},
		{
			name:    "comment",
			src:     "fn a(){return 1;} // trailing",
			code:    mdwerror.CodeAsaUnimplemented,
			line:    1,
			column:  19,
			message: "comments not supported at line 1, column 19",
			rule:    RuleComment,
		},
	}

	p := newTestParser(t, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.src)
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("code = %s, want %s", mdwerror.GetCode(err), tt.code)
			}
			if err.Error() != tt.message {
				t.Errorf("message = %q, want %q", err.Error(), tt.message)
			}
			pos, ok := Location(err)
			if !ok || pos.Line != tt.line || pos.Column != tt.column {
				t.Errorf("Location() = %+v, %v", pos, ok)
			}
			var asaErr *mdwerror.Error
			if e, ok := err.(*mdwerror.Error); ok {
				asaErr = e
			}
			if asaErr == nil {
				t.Fatal("error is not an *mdwerror.Error")
			}
			if rule, _ := asaErr.Detail("rule"); rule != tt.rule {
				t.Errorf("rule = %v, want %s", rule, tt.rule)
			}
		})
	}
}

func TestLimits(t *testing.T) {
	shallow := newTestParser(t, Options{MaxDepth: 3})
	_, err := shallow.Parse("fn a(){return 1;}")
	if !mdwerror.HasCode(err, mdwerror.CodeAsaLimit) {
		t.Errorf("depth limit error = %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "rule nesting exceeds 3 levels") {
		t.Errorf("depth limit message = %q", err.Error())
	}

	small := newTestParser(t, Options{MaxInputLength: 4})
	if _, err := small.Parse("fn a(){return 1;}"); !mdwerror.HasCode(err, mdwerror.CodeAsaLimit) {
		t.Errorf("length limit error = %v", err)
	}

	if _, err := New(Options{MaxDepth: -1}); !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("negative limit error = %v", err)
	}
}

func TestParseTokens(t *testing.T) {
	p := newTestParser(t, Options{})

	sources := []string{
		"",
		"fn add(a, b) { return a + b; }",
		"fn main() {\n\tlet x = 1;\n\treturn x;\n}\n",
		"fn a( { return 1; }",
		"fn a() { return 1; } trailing",
	}
	for _, src := range sources {
		want, wantErr := p.Parse(src)
		got, gotErr := p.ParseTokens(lexer.Lex(src))

		if (wantErr == nil) != (gotErr == nil) {
			t.Fatalf("%q: Parse() error = %v, ParseTokens() error = %v", src, wantErr, gotErr)
		}
		if wantErr != nil {
			if wantErr.Error() != gotErr.Error() {
				t.Errorf("%q: ParseTokens() error = %q, want %q", src, gotErr, wantErr)
			}
			wantPos, _ := Location(wantErr)
			gotPos, _ := Location(gotErr)
			if wantPos != gotPos {
				t.Errorf("%q: ParseTokens() location = %+v, want %+v", src, gotPos, wantPos)
			}
			continue
		}
		if !ast.Equal(want, got) {
			t.Errorf("%q: ParseTokens() = %s, want %s", src, got, want)
		}
	}
}

func TestParseRuleTokens(t *testing.T) {
	p := newTestParser(t, Options{})

	res, err := p.ParseRuleTokens(RuleMathExpression, lexer.Lex("1 + 2;"))
	if err != nil {
		t.Fatalf("ParseRuleTokens() error = %v", err)
	}
	if res.Consumed != 5 || res.Rest != ";" {
		t.Errorf("ParseRuleTokens() consumed %d, rest %q", res.Consumed, res.Rest)
	}
	if !ast.Equal(res.Node, math("+", num("1"), num("2"))) {
		t.Errorf("ParseRuleTokens() = %s", res.Node)
	}

	if _, err := p.ParseRuleTokens("loop", lexer.Lex("x")); !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("unknown rule error = %v", err)
	}
}

func TestParseRuleUnknown(t *testing.T) {
	p := newTestParser(t, Options{})
	if _, err := p.ParseRule("loop", "x"); !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("unknown rule error = %v", err)
	}
}

func TestCommentRule(t *testing.T) {
	p := newTestParser(t, Options{})
	_, err := p.ParseRule(RuleComment, "// note")
	if !mdwerror.HasCode(err, mdwerror.CodeAsaUnimplemented) {
		t.Errorf("comment rule error = %v", err)
	}
}

func TestRules(t *testing.T) {
	rules := Rules()
	want := []string{
		RuleArguments, RuleBoolean, RuleComment, RuleExpression, RuleFunctionCall,
		RuleFunctionDefine, RuleFunctionReturn, RuleIdentifier, RuleMathExpression,
		RuleNumber, RuleProgram, RuleStatement, RuleString, RuleValue, RuleVariableDefine,
	}
	if diff := cmp.Diff(want, rules); diff != "" {
		t.Errorf("Rules() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := mdwlog.NewWithConfig(mdwlog.Config{
		Level:  mdwlog.LevelDebug,
		Format: mdwlog.FormatJSON,
		Output: &buf,
	})
	p := newTestParser(t, Options{Logger: logger})

	if _, err := p.Parse("fn a(){return 1;}"); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"component":"asa-parser"`, `"functions":1`, `"message":"parse completed"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output lacks %s:\n%s", want, out)
		}
	}

	buf.Reset()
	if _, err := p.Parse("fn"); err == nil {
		t.Fatal("Parse(fn) should fail")
	}
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("failure not logged at warn:\n%s", buf.String())
	}
}
