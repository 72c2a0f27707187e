// File: parser.go
// Title: Asa Parser Front End
// Description: Lexes and parses Asa source text into an AST. Converts
//              combinator rejections into structured errors with source
//              positions and logs parse activity.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial parser implementation
// - 2026-10-18 v0.2.0: Parsing from already lexed tokens

package parser

import (
	"fmt"
	"strings"

	mdwerror "github.com/msto63/asa/foundation/core/error"
	mdwlog "github.com/msto63/asa/foundation/core/log"

	"github.com/msto63/asa/foundation/asa/ast"
	"github.com/msto63/asa/foundation/asa/combinator"
	"github.com/msto63/asa/foundation/asa/lexer"
)

// DefaultMaxInputLength is the input limit when Options leaves it unset
const DefaultMaxInputLength = 1 << 20

// Parser parses Asa source text
type Parser struct {
	logger  *mdwlog.Logger
	options Options
	grammar *grammar
}

// Options configures parser behavior
type Options struct {
	Logger         *mdwlog.Logger
	MaxInputLength int // Bytes; 0 selects DefaultMaxInputLength
	MaxDepth       int // Rule nesting; 0 selects combinator.DefaultMaxDepth
}

// RuleResult is the outcome of parsing a single rule
type RuleResult struct {
	Node     ast.Node
	Consumed int    // Tokens consumed by the rule
	Rest     string // Source text after the consumed tokens
}

// New creates a new Asa parser with the given options
func New(opts Options) (*Parser, error) {
	if opts.MaxInputLength < 0 || opts.MaxDepth < 0 {
		return nil, mdwerror.New("parser limits must not be negative").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("parser.New").
			WithDetail("maxInputLength", opts.MaxInputLength).
			WithDetail("maxDepth", opts.MaxDepth)
	}
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = combinator.DefaultMaxDepth
	}

	return &Parser{
		logger:  opts.Logger.WithField("component", "asa-parser"),
		options: opts,
		grammar: compiled(),
	}, nil
}

// Tokenize lexes src after checking the input limit
func (p *Parser) Tokenize(src string) ([]lexer.Token, error) {
	if len(src) > p.options.MaxInputLength {
		return nil, mdwerror.New(fmt.Sprintf("input exceeds maximum length: %d > %d", len(src), p.options.MaxInputLength)).
			WithCode(mdwerror.CodeAsaLimit).
			WithOperation("parser.Tokenize").
			WithDetail("length", len(src)).
			WithDetail("limit", p.options.MaxInputLength)
	}
	return lexer.Lex(src), nil
}

// Parse parses a complete program. Everything but trailing whitespace must
// belong to a function definition.
func (p *Parser) Parse(src string) (*ast.Program, error) {
	tokens, err := p.Tokenize(src)
	if err != nil {
		p.logger.WarnWithErr("Asa input rejected", err)
		return nil, err
	}
	return p.ParseTokens(tokens)
}

// ParseTokens parses a program from tokens produced by Tokenize. Callers
// that already hold the tokens use it to avoid lexing twice.
func (p *Parser) ParseTokens(tokens []lexer.Token) (*ast.Program, error) {
	src := lexer.Source(tokens)
	timer := p.logger.StartTimer("parse").WithField("tokens", len(tokens))
	p.logger.Debug("Starting Asa parsing", mdwlog.Fields{
		"bytes":  len(src),
		"tokens": len(tokens),
	})

	node, rest, err := p.grammar.rules[RuleProgram](p.stream(tokens))
	if err == nil {
		_, rest, err = p.grammar.skip(rest)
	}
	if err == nil {
		if _, _, endErr := p.grammar.end(rest); endErr != nil {
			// program stops at the first definition it cannot read; parsing
			// that definition again yields the rejection worth reporting
			err = endErr
			if _, _, ferr := p.grammar.rules[RuleFunctionDefine](rest); ferr != nil {
				err = ferr
			}
		}
	}
	if err != nil {
		perr := p.convert(err, src, tokens, "parser.Parse")
		timer.StopWithError(perr)
		return nil, perr
	}

	program := node.(*ast.Program)
	timer.WithField("functions", len(program.Children)).Stop()
	return program, nil
}

// ParseRule runs one named grammar rule on src. Unlike Parse it does not
// require the rule to consume the whole input; the remainder is returned
// in the result.
func (p *Parser) ParseRule(rule, src string) (*RuleResult, error) {
	if _, err := p.lookup(rule); err != nil {
		return nil, err
	}
	tokens, err := p.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return p.ParseRuleTokens(rule, tokens)
}

// ParseRuleTokens runs one named grammar rule on tokens produced by Tokenize
func (p *Parser) ParseRuleTokens(rule string, tokens []lexer.Token) (*RuleResult, error) {
	parse, err := p.lookup(rule)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("Parsing single rule", mdwlog.Fields{
		"rule":   rule,
		"tokens": len(tokens),
	})

	node, rest, err := parse(p.stream(tokens))
	if err != nil {
		perr := p.convert(err, lexer.Source(tokens), tokens, "parser.ParseRule")
		p.logger.WarnWithErr("Asa rule rejected input", perr, mdwlog.Fields{"rule": rule})
		return nil, perr
	}

	return &RuleResult{
		Node:     node,
		Consumed: rest.Pos(),
		Rest:     lexer.Source(rest.Remaining()),
	}, nil
}

func (p *Parser) lookup(rule string) (nodeParser, error) {
	parse, ok := p.grammar.rules[rule]
	if !ok {
		return nil, mdwerror.New(fmt.Sprintf("unknown rule %q", rule)).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("parser.ParseRule").
			WithDetail("rule", rule).
			WithDetail("known", strings.Join(Rules(), ", "))
	}
	return parse, nil
}

func (p *Parser) stream(tokens []lexer.Token) combinator.Stream[lexer.Token] {
	return combinator.NewStream(tokens).WithMaxDepth(p.options.MaxDepth)
}
