// File: combinator.go
// Title: Parser Combinators
// Description: Generic parsers over a token stream and the structural
//              combinators that compose them: sequence, alternative,
//              repetition, option, delimited and mapping.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package combinator

import (
	"errors"
	"fmt"
	"sync"
)

// Parser consumes tokens from in and returns its output with the advanced
// stream. On error it returns in unchanged, so a failed parser never
// consumes anything.
type Parser[T, O any] func(in Stream[T]) (O, Stream[T], error)

// Token is implemented by token types that can be matched by kind
type Token[K comparable] interface {
	TokenKind() K
}

// Tuple carries the outputs of Pair
type Tuple[A, B any] struct {
	First  A
	Second B
}

// Is matches exactly one token of the given kind
func Is[T Token[K], K comparable](kind K) Parser[T, T] {
	expected := fmt.Sprint(kind)
	return func(in Stream[T]) (T, Stream[T], error) {
		tok, ok := in.Peek()
		if !ok || tok.TokenKind() != kind {
			var zero T
			return zero, in, Fail(in, expected)
		}
		return tok, in.Advance(1), nil
	}
}

// End succeeds only when the stream is exhausted
func End[T any]() Parser[T, struct{}] {
	return func(in Stream[T]) (struct{}, Stream[T], error) {
		if !in.AtEnd() {
			return struct{}{}, in, Fail(in, EndOfInput)
		}
		return struct{}{}, in, nil
	}
}

// Pair runs a then b and returns both outputs
func Pair[T, A, B any](a Parser[T, A], b Parser[T, B]) Parser[T, Tuple[A, B]] {
	return func(in Stream[T]) (Tuple[A, B], Stream[T], error) {
		first, rest, err := a(in)
		if err != nil {
			return Tuple[A, B]{}, in, err
		}
		second, rest, err := b(rest)
		if err != nil {
			return Tuple[A, B]{}, in, err
		}
		return Tuple[A, B]{First: first, Second: second}, rest, nil
	}
}

// Preceded runs prefix then p and keeps the output of p
func Preceded[T, A, O any](prefix Parser[T, A], p Parser[T, O]) Parser[T, O] {
	return Map(Pair(prefix, p), func(t Tuple[A, O]) O { return t.Second })
}

// Terminated runs p then suffix and keeps the output of p
func Terminated[T, O, B any](p Parser[T, O], suffix Parser[T, B]) Parser[T, O] {
	return Map(Pair(p, suffix), func(t Tuple[O, B]) O { return t.First })
}

// Delimited runs open, p and close and keeps the output of p
func Delimited[T, A, O, B any](open Parser[T, A], p Parser[T, O], close Parser[T, B]) Parser[T, O] {
	return Preceded(open, Terminated(p, close))
}

// Alt tries parsers in order against the same position and returns the
// first success. When all fail with recoverable errors the result is a
// RuleExhausted rejection at the furthest failure, listing what each
// branch expected there. Fatal errors are returned at once.
func Alt[T, O any](parsers ...Parser[T, O]) Parser[T, O] {
	return func(in Stream[T]) (O, Stream[T], error) {
		var zero O
		var furthest *Rejection
		var expected []string

		for _, p := range parsers {
			out, rest, err := p(in)
			if err == nil {
				return out, rest, nil
			}
			r, ok := AsRejection(err)
			if !ok || r.Fatal() {
				return zero, in, err
			}
			switch {
			case furthest == nil || r.Pos > furthest.Pos:
				furthest = r
				expected = mergeExpected(nil, r.Expected)
			case r.Pos == furthest.Pos:
				expected = mergeExpected(expected, r.Expected)
			}
		}

		if furthest == nil {
			return zero, in, Fail(in)
		}
		return zero, in, &Rejection{
			Kind:     RuleExhausted,
			Pos:      furthest.Pos,
			Rule:     furthest.Rule,
			Expected: expected,
			open:     furthest.open,
			Found:    furthest.Found,
			Cause:    furthest,
		}
	}
}

// errNoProgress is the cause of the invariant violation raised by Many0
var errNoProgress = errors.New("repeated parser succeeded without consuming input")

// Many0 applies p greedily until it fails recoverably. It never fails on
// its own, but a p that succeeds without consuming input would loop
// forever and is reported as an InvariantViolation.
func Many0[T, O any](p Parser[T, O]) Parser[T, []O] {
	return func(in Stream[T]) ([]O, Stream[T], error) {
		outs := make([]O, 0)
		cur := in
		for {
			out, rest, err := p(cur)
			if err != nil {
				if IsRecoverable(err) {
					return outs, cur, nil
				}
				return nil, in, err
			}
			if rest.Pos() == cur.Pos() {
				return nil, in, &Rejection{
					Kind:  InvariantViolation,
					Pos:   cur.Pos(),
					Found: Describe(cur),
					Cause: errNoProgress,
				}
			}
			outs = append(outs, out)
			cur = rest
		}
	}
}

// Many1 is Many0 that requires at least one match
func Many1[T, O any](p Parser[T, O]) Parser[T, []O] {
	return func(in Stream[T]) ([]O, Stream[T], error) {
		first, rest, err := p(in)
		if err != nil {
			return nil, in, err
		}
		more, rest, err := Many0(p)(rest)
		if err != nil {
			return nil, in, err
		}
		return append([]O{first}, more...), rest, nil
	}
}

// Opt applies p once if it matches. A recoverable failure yields the zero
// value of O without consuming anything.
func Opt[T, O any](p Parser[T, O]) Parser[T, O] {
	return func(in Stream[T]) (O, Stream[T], error) {
		out, rest, err := p(in)
		if err != nil {
			var zero O
			if IsRecoverable(err) {
				return zero, in, nil
			}
			return zero, in, err
		}
		return out, rest, nil
	}
}

// Map transforms the output of p
func Map[T, A, B any](p Parser[T, A], f func(A) B) Parser[T, B] {
	return func(in Stream[T]) (B, Stream[T], error) {
		out, rest, err := p(in)
		if err != nil {
			var zero B
			return zero, in, err
		}
		return f(out), rest, nil
	}
}

// Lazy defers building a parser until it first runs. It allows recursive
// grammars, where a rule refers to itself before it is assigned.
func Lazy[T, O any](build func() Parser[T, O]) Parser[T, O] {
	var (
		once sync.Once
		p    Parser[T, O]
	)
	return func(in Stream[T]) (O, Stream[T], error) {
		once.Do(func() { p = build() })
		return p(in)
	}
}

// Rule names a grammar rule and enforces the stream's depth limit. A rule
// that fails where it started reports itself as the expectation; the
// failure is then attributed to the enclosing rule that was in progress.
// A rule that fails after consuming input keeps the inner rejection.
func Rule[T, O any](name string, p Parser[T, O]) Parser[T, O] {
	return func(in Stream[T]) (O, Stream[T], error) {
		var zero O

		inner := in
		inner.depth++
		if in.maxDepth > 0 && inner.depth > in.maxDepth {
			return zero, in, &Rejection{
				Kind:  DepthExceeded,
				Pos:   in.Pos(),
				Rule:  name,
				Found: Describe(in),
				Cause: fmt.Errorf("rule nesting exceeds %d levels", in.maxDepth),
			}
		}

		out, rest, err := p(inner)
		if err != nil {
			return zero, in, tag(name, in.Pos(), err)
		}
		rest.depth = in.depth
		return out, rest, nil
	}
}

// tag attributes a rejection to the rule name that started at start
func tag(name string, start int, err error) error {
	r, ok := AsRejection(err)
	if !ok {
		return err
	}

	tagged := *r
	switch {
	case r.Fatal():
		if r.Rule != "" {
			return r
		}
		tagged.Rule = name
	case r.Pos == start:
		tagged.Rule = name
		tagged.Expected = []string{name}
		tagged.open = true
	case r.open || r.Rule == "":
		tagged.Rule = name
		tagged.open = false
	default:
		return r
	}
	return &tagged
}

// Unsupported turns a match of p into a fatal Unimplemented rejection and
// passes failures of p through. It marks syntax that is recognized but
// deliberately not handled, such as comments.
func Unsupported[T, A, O any](feature string, p Parser[T, A]) Parser[T, O] {
	return func(in Stream[T]) (O, Stream[T], error) {
		var zero O
		if _, _, err := p(in); err != nil {
			return zero, in, err
		}
		return zero, in, &Rejection{
			Kind:  Unimplemented,
			Pos:   in.Pos(),
			Found: Describe(in),
			Cause: fmt.Errorf("%s not supported", feature),
		}
	}
}
