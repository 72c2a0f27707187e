// File: lexer_test.go
// Title: Asa Lexer Tests
// Description: Tests for token classification, keyword boundaries,
//              positions, determinism and lossless round trips.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial tests

package lexer

import (
	"reflect"
	"testing"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestLexKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Kind
	}{
		{"empty", "", []Kind{}},
		{"identifier", "ab1", []Kind{Alpha, Alpha, Digit}},
		{"number", "123", []Kind{Digit, Digit, Digit}},
		{"keywords", "fn let return true false", []Kind{Fn, WhiteSpace, Let, WhiteSpace, Return, WhiteSpace, True, WhiteSpace, False}},
		{"punctuation", `+-=;(){}",`, []Kind{Plus, Dash, Equal, Semicolon, LeftParen, RightParen, LeftCurly, RightCurly, Quote, Comma}},
		{"whitespace", " \t\r\n", []Kind{WhiteSpace, WhiteSpace, WhiteSpace, WhiteSpace}},
		{"keyword prefix", "fnord", []Kind{Alpha, Alpha, Alpha, Alpha, Alpha}},
		{"keyword with digit", "true1", []Kind{Alpha, Alpha, Alpha, Alpha, Digit}},
		{"keyword before paren", "fn(", []Kind{Fn, LeftParen}},
		{"keyword case", "TRUE", []Kind{Alpha, Alpha, Alpha, Alpha}},
		{"illegal", "a*b", []Kind{Alpha, Illegal, Alpha}},
		{"single slash", "1/2", []Kind{Digit, Illegal, Digit}},
		{"comment", "a // note\nb", []Kind{Alpha, WhiteSpace, Comment, WhiteSpace, Alpha}},
		{"comment at end", "// done", []Kind{Comment}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(Lex(tt.input))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lex(%q) kinds = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLexemes(t *testing.T) {
	tokens := Lex("let x1 = \"hi\"; // c")
	want := []string{"let", " ", "x", "1", " ", "=", " ", `"`, "h", "i", `"`, ";", " ", "// c"}

	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, tok := range tokens {
		if tok.Lexeme != want[i] {
			t.Errorf("token %d lexeme = %q, want %q", i, tok.Lexeme, want[i])
		}
	}
}

func TestPositions(t *testing.T) {
	tokens := Lex("fn a\n  b")

	tests := []struct {
		index                int
		offset, line, column int
	}{
		{0, 0, 1, 1}, // fn
		{2, 3, 1, 4}, // a
		{3, 4, 1, 5}, // \n
		{4, 5, 2, 1}, // first indent space
		{6, 7, 2, 3}, // b
	}

	for _, tt := range tests {
		tok := tokens[tt.index]
		if tok.Offset != tt.offset || tok.Line != tt.line || tok.Column != tt.column {
			t.Errorf("token %d (%s) at %d/%d:%d, want %d/%d:%d",
				tt.index, tok.Debug(), tok.Offset, tok.Line, tok.Column, tt.offset, tt.line, tt.column)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"fn a(){return 1;}",
		"fn foo(a, b) {\n\tlet x = a + b;\n\treturn x;\n}\n",
		"// only a comment\r\n",
		"weird ~ bytes \x00 and \xff",
		`"unterminated`,
	}

	for _, input := range inputs {
		if got := Source(Lex(input)); got != input {
			t.Errorf("Source(Lex(%q)) = %q", input, got)
		}
	}
}

func TestDeterministic(t *testing.T) {
	input := "fn main() { let greeting = \"hello world\"; return greeting; }"
	first := Lex(input)
	for i := 0; i < 5; i++ {
		if again := Lex(input); !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d produced a different token sequence", i)
		}
	}
}

func TestKindDescriptions(t *testing.T) {
	tests := []struct {
		kind       Kind
		name, desc string
	}{
		{LeftParen, "LEFT_PAREN", "'('"},
		{Return, "RETURN", "'return'"},
		{Alpha, "ALPHA", "letter"},
		{Comment, "COMMENT", "comment"},
	}

	for _, tt := range tests {
		if tt.kind.Name() != tt.name {
			t.Errorf("%v.Name() = %q, want %q", tt.kind, tt.kind.Name(), tt.name)
		}
		if tt.kind.String() != tt.desc {
			t.Errorf("String() = %q, want %q", tt.kind.String(), tt.desc)
		}
	}

	if !Let.IsKeyword() || Alpha.IsKeyword() {
		t.Error("IsKeyword() misclassifies")
	}
}

func TestTokenString(t *testing.T) {
	tokens := Lex("a\n?")
	want := []string{"'a'", "newline", `illegal character "?"`}
	for i, tok := range tokens {
		if tok.String() != want[i] {
			t.Errorf("token %d String() = %q, want %q", i, tok.String(), want[i])
		}
	}
}
