// File: grammar.go
// Title: Asa Grammar Rules
// Description: Builds the Asa grammar from combinators. Every rule is a
//              parser from tokens to one AST node; rules are looked up by
//              name for single-rule parsing.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial grammar

package parser

import (
	"sort"
	"sync"

	"github.com/msto63/asa/foundation/asa/ast"
	c "github.com/msto63/asa/foundation/asa/combinator"
	"github.com/msto63/asa/foundation/asa/lexer"
)

type (
	tokenParser = c.Parser[lexer.Token, lexer.Token]
	nodeParser  = c.Parser[lexer.Token, ast.Node]
)

// Rule names accepted by ParseRule
const (
	RuleIdentifier     = "identifier"
	RuleNumber         = "number"
	RuleBoolean        = "boolean"
	RuleString         = "string"
	RuleFunctionCall   = "function_call"
	RuleValue          = "value"
	RuleMathExpression = "math_expression"
	RuleExpression     = "expression"
	RuleStatement      = "statement"
	RuleFunctionReturn = "function_return"
	RuleVariableDefine = "variable_define"
	RuleArguments      = "arguments"
	RuleFunctionDefine = "function_define"
	RuleProgram        = "program"
	RuleComment        = "comment"
)

// grammar holds the compiled rules
type grammar struct {
	rules map[string]nodeParser

	// skip consumes insignificant whitespace; a comment in its way is
	// reported as unsupported
	skip c.Parser[lexer.Token, []lexer.Token]

	// end succeeds once every token is consumed
	end c.Parser[lexer.Token, struct{}]
}

var compiled = sync.OnceValue(newGrammar)

// tok matches one token of kind
func tok(kind lexer.Kind) tokenParser {
	return c.Is[lexer.Token](kind)
}

// lexemes concatenates the raw bytes of tokens
func lexemes(tokens []lexer.Token) []byte {
	value := make([]byte, 0, len(tokens))
	for _, t := range tokens {
		value = append(value, t.Lexeme...)
	}
	return value
}

func newGrammar() *grammar {
	g := &grammar{
		rules: make(map[string]nodeParser),
		end:   c.End[lexer.Token](),
	}

	ref := func(name string) nodeParser {
		return c.Lazy(func() nodeParser { return g.rules[name] })
	}

	comment := c.Rule(RuleComment, c.Unsupported[lexer.Token, lexer.Token, lexer.Token]("comments", tok(lexer.Comment)))
	g.skip = c.Many0(c.Alt(tok(lexer.WhiteSpace), comment))

	// sym matches a keyword or punctuation token after optional whitespace
	sym := func(kind lexer.Kind) tokenParser {
		return c.Preceded(g.skip, tok(kind))
	}
	// named registers a rule; whitespace before it is skipped outside the
	// rule so failures point at its first significant token
	named := func(name string, p nodeParser) nodeParser {
		rule := c.Preceded(g.skip, c.Rule(name, p))
		g.rules[name] = rule
		return rule
	}

	// identifier = Alpha (Alpha | Digit)*
	// identName yields the bytes; function_call and function_define take
	// their names from it, so a name is an identifier by construction.
	identName := c.Preceded(g.skip, c.Rule(RuleIdentifier, c.Map(
		c.Pair(tok(lexer.Alpha), c.Many0(c.Alt(tok(lexer.Alpha), tok(lexer.Digit)))),
		func(t c.Tuple[lexer.Token, []lexer.Token]) []byte {
			return lexemes(append([]lexer.Token{t.First}, t.Second...))
		},
	)))
	identifier := c.Map(identName, func(name []byte) ast.Node {
		return &ast.Identifier{Value: name}
	})
	g.rules[RuleIdentifier] = identifier

	// number = Digit+
	number := named(RuleNumber, c.Map(c.Many1(tok(lexer.Digit)), func(digits []lexer.Token) ast.Node {
		return &ast.Number{Value: lexemes(digits)}
	}))

	// boolean = "true" | "false"
	boolean := named(RuleBoolean, c.Alt(
		c.Map(tok(lexer.True), func(lexer.Token) ast.Node { return &ast.Bool{Value: true} }),
		c.Map(tok(lexer.False), func(lexer.Token) ast.Node { return &ast.Bool{Value: false} }),
	))

	// string = '"' (Alpha | Digit | WhiteSpace | keyword)* '"'
	stringBody := c.Many0(c.Alt(
		tok(lexer.Alpha), tok(lexer.Digit), tok(lexer.WhiteSpace),
		tok(lexer.Fn), tok(lexer.Let), tok(lexer.Return), tok(lexer.True), tok(lexer.False),
	))
	str := named(RuleString, c.Map(
		c.Delimited(tok(lexer.Quote), stringBody, tok(lexer.Quote)),
		func(body []lexer.Token) ast.Node { return &ast.String{Value: lexemes(body)} },
	))

	// arguments = (separator* expression separator*)*
	separator := c.Alt(tok(lexer.WhiteSpace), tok(lexer.Comma), comment)
	arguments := named(RuleArguments, c.Map(
		c.Many0(c.Delimited(c.Many0(separator), ref(RuleExpression), c.Many0(separator))),
		func(args []ast.Node) ast.Node { return &ast.FunctionArguments{Children: args} },
	))

	// parenthesized optional arguments; absent arguments are an empty list
	argumentList := c.Map(
		c.Delimited(sym(lexer.LeftParen), c.Opt(arguments), sym(lexer.RightParen)),
		func(args ast.Node) ast.Node {
			if args == nil {
				return &ast.FunctionArguments{Children: []ast.Node{}}
			}
			return args
		},
	)

	// function_call = identifier '(' arguments? ')'
	functionCall := named(RuleFunctionCall, c.Map(
		c.Pair(identName, argumentList),
		func(t c.Tuple[[]byte, ast.Node]) ast.Node {
			return &ast.FunctionCall{Name: t.First, Children: []ast.Node{t.Second}}
		},
	))

	// value = identifier | number | boolean
	value := named(RuleValue, c.Alt(identifier, number, boolean))

	// math_expression = value (('+' | '-') value)*
	operator := c.Alt(sym(lexer.Plus), sym(lexer.Dash))
	mathExpression := named(RuleMathExpression, c.Map(
		c.Pair(value, c.Many0(c.Pair(operator, value))),
		func(t c.Tuple[ast.Node, []c.Tuple[lexer.Token, ast.Node]]) ast.Node {
			if len(t.Second) == 0 {
				return t.First
			}
			expr := &ast.MathExpression{
				Name:      []byte(ast.AddName),
				Operators: make([]byte, 0, len(t.Second)),
				Children:  []ast.Node{t.First},
			}
			for _, term := range t.Second {
				expr.Operators = append(expr.Operators, term.First.Lexeme[0])
				expr.Children = append(expr.Children, term.Second)
			}
			return expr
		},
	))

	// expression = boolean | math_expression | function_call | number | string | identifier
	// math_expression precedes function_call, so in this position a call
	// is read as a bare identifier followed by unparsed arguments.
	expression := named(RuleExpression, c.Alt(
		boolean, mathExpression, functionCall, number, str, identifier,
	))

	// function_return = "return" (function_call | expression | identifier)
	functionReturn := named(RuleFunctionReturn, c.Map(
		c.Preceded(sym(lexer.Return), c.Alt(functionCall, expression, identifier)),
		func(v ast.Node) ast.Node { return &ast.FunctionReturn{Children: []ast.Node{v}} },
	))

	// variable_define = "let" identifier '=' expression
	variableDefine := named(RuleVariableDefine, c.Map(
		c.Pair(c.Preceded(sym(lexer.Let), identifier), c.Preceded(sym(lexer.Equal), expression)),
		func(t c.Tuple[ast.Node, ast.Node]) ast.Node {
			return &ast.VariableDefine{Children: []ast.Node{t.First, t.Second}}
		},
	))

	// statement = (variable_define | function_return)+ ';'
	statement := named(RuleStatement, c.Map(
		c.Terminated(c.Many1(c.Alt(variableDefine, functionReturn)), sym(lexer.Semicolon)),
		func(stmts []ast.Node) ast.Node { return &ast.FunctionStatements{Children: stmts} },
	))

	// function_define = "fn" identifier '(' arguments? ')' '{' statement+ '}'
	functionDefine := named(RuleFunctionDefine, c.Map(
		c.Pair(
			c.Preceded(sym(lexer.Fn), identName),
			c.Pair(argumentList, c.Delimited(sym(lexer.LeftCurly), c.Many1(statement), sym(lexer.RightCurly))),
		),
		func(t c.Tuple[[]byte, c.Tuple[ast.Node, []ast.Node]]) ast.Node {
			children := make([]ast.Node, 0, 1+len(t.Second.Second))
			children = append(children, t.Second.First)
			children = append(children, t.Second.Second...)
			return &ast.FunctionDefine{Name: t.First, Children: children}
		},
	))

	// program = function_define*
	named(RuleProgram, c.Map(c.Many0(functionDefine), func(fns []ast.Node) ast.Node {
		return &ast.Program{Children: fns}
	}))

	g.rules[RuleComment] = c.Preceded(g.skip, c.Map(comment, func(lexer.Token) ast.Node { return nil }))

	return g
}

// Rules returns the names accepted by ParseRule, sorted
func Rules() []string {
	g := compiled()
	names := make([]string, 0, len(g.rules))
	for name := range g.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
