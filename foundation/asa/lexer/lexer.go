// File: lexer.go
// Title: Asa Lexical Analyzer
// Description: Converts Asa source text into a sequence of tokens. The
//              lexer never fails and never discards input: the lexemes of
//              the produced tokens concatenate back to the source.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial lexer implementation

package lexer

// keywords maps reserved words to their kinds. A keyword is only
// recognized when an entire alphanumeric run spells it, so "fnord" and
// "return1" are ordinary letters and digits.
var keywords = map[string]Kind{
	"fn":     Fn,
	"let":    Let,
	"return": Return,
	"true":   True,
	"false":  False,
}

// single maps one-byte lexemes to their kinds
var single = map[byte]Kind{
	'"':  Quote,
	'+':  Plus,
	'-':  Dash,
	'=':  Equal,
	';':  Semicolon,
	'(':  LeftParen,
	')':  RightParen,
	'{':  LeftCurly,
	'}':  RightCurly,
	',':  Comma,
	' ':  WhiteSpace,
	'\t': WhiteSpace,
	'\r': WhiteSpace,
	'\n': WhiteSpace,
}

// Lexer performs lexical analysis of Asa input
type Lexer struct {
	input    string // Input text
	position int    // Offset of the next unread byte
	line     int    // Line of the next unread byte (1-based)
	column   int    // Column of the next unread byte (1-based)
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		line:   1,
		column: 1,
	}
}

// Lex tokenizes input in one call
func Lex(input string) []Token {
	return NewLexer(input).Tokenize()
}

// Tokenize returns all remaining tokens of the input
func (l *Lexer) Tokenize() []Token {
	tokens := make([]Token, 0, len(l.input))
	for {
		batch, ok := l.next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, batch...)
	}
}

// next scans one lexical unit. An alphanumeric run that is not a keyword
// yields one token per byte, everything else yields a single token.
func (l *Lexer) next() ([]Token, bool) {
	if l.position >= len(l.input) {
		return nil, false
	}
	ch := l.input[l.position]

	switch {
	case isAlpha(ch) || isDigit(ch):
		return l.readWord(), true
	case ch == '/' && l.peek(1) == '/':
		return []Token{l.readComment()}, true
	}

	kind, ok := single[ch]
	if !ok {
		kind = Illegal
	}
	return []Token{l.emit(kind, 1)}, true
}

// readWord consumes a maximal run of letters and digits
func (l *Lexer) readWord() []Token {
	end := l.position
	for end < len(l.input) && (isAlpha(l.input[end]) || isDigit(l.input[end])) {
		end++
	}

	if kind, ok := keywords[l.input[l.position:end]]; ok {
		return []Token{l.emit(kind, end-l.position)}
	}

	tokens := make([]Token, 0, end-l.position)
	for l.position < end {
		kind := Alpha
		if isDigit(l.input[l.position]) {
			kind = Digit
		}
		tokens = append(tokens, l.emit(kind, 1))
	}
	return tokens
}

// readComment consumes // and everything up to the line break
func (l *Lexer) readComment() Token {
	end := l.position
	for end < len(l.input) && l.input[end] != '\n' && l.input[end] != '\r' {
		end++
	}
	return l.emit(Comment, end-l.position)
}

// emit builds a token of n bytes at the current position and advances
func (l *Lexer) emit(kind Kind, n int) Token {
	tok := Token{
		Kind:   kind,
		Lexeme: l.input[l.position : l.position+n],
		Offset: l.position,
		Line:   l.line,
		Column: l.column,
	}
	for i := 0; i < n; i++ {
		if l.input[l.position] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.position++
	}
	return tok
}

// peek returns the byte n positions ahead, or 0 past the end
func (l *Lexer) peek(n int) byte {
	if l.position+n >= len(l.input) {
		return 0
	}
	return l.input[l.position+n]
}

func isAlpha(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// Source concatenates the lexemes of tokens. For the output of Lex it
// returns the original input.
func Source(tokens []Token) string {
	size := 0
	for _, tok := range tokens {
		size += len(tok.Lexeme)
	}
	buf := make([]byte, 0, size)
	for _, tok := range tokens {
		buf = append(buf, tok.Lexeme...)
	}
	return string(buf)
}
