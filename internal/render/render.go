// ============================================================================
// asa - Asa Language Toolkit
// ============================================================================
//
// Package:     render
// Description: Output of syntax trees, token streams and diagnostics
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

// Package render formats parser output for terminals and machines.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/asa/foundation/core/error"

	"github.com/msto63/asa/foundation/asa/ast"
	"github.com/msto63/asa/foundation/asa/lexer"
	"github.com/msto63/asa/foundation/asa/parser"
)

// Format selects how a syntax tree is written
type Format string

const (
	FormatTree  Format = "tree"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatSExpr Format = "sexpr"
)

// Formats returns the names of all supported formats
func Formats() []string {
	return []string{string(FormatTree), string(FormatJSON), string(FormatYAML), string(FormatSExpr)}
}

// ParseFormat converts a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTree, FormatJSON, FormatYAML, FormatSExpr:
		return f, nil
	case "":
		return FormatTree, nil
	}
	return "", mdwerror.Newf("unknown output format %q", s).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation("render.ParseFormat").
		WithDetail("format", s).
		WithDetail("known", strings.Join(Formats(), ", "))
}

// Renderer writes parser output
type Renderer struct {
	color  bool
	styles Styles
}

// New creates a renderer; color enables terminal styling
func New(color bool) *Renderer {
	return &Renderer{color: color, styles: ColorStyles()}
}

func (r *Renderer) paint(style lipgloss.Style, s string) string {
	if !r.color || s == "" {
		return s
	}
	return style.Render(s)
}

// Node writes n in the given format
func (r *Renderer) Node(w io.Writer, n ast.Node, format Format) error {
	switch format {
	case FormatTree, "":
		var b strings.Builder
		r.tree(&b, n, "", "", "")
		_, err := io.WriteString(w, b.String())
		return err

	case FormatJSON:
		data, err := json.MarshalIndent(ast.ToTree(n), "", "  ")
		if err != nil {
			return mdwerror.Wrap(err, "failed to encode syntax tree").WithCode(mdwerror.CodeInternal)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ast.ToTree(n)); err != nil {
			return mdwerror.Wrap(err, "failed to encode syntax tree").WithCode(mdwerror.CodeInternal)
		}
		return enc.Close()

	case FormatSExpr:
		_, err := fmt.Fprintln(w, ast.Dump(n))
		return err
	}

	_, err := ParseFormat(string(format))
	return err
}

// tree writes one node per line with box-drawing branches
func (r *Renderer) tree(b *strings.Builder, n ast.Node, prefix, branch, childPrefix string) {
	b.WriteString(prefix)
	b.WriteString(r.paint(r.styles.Branch, branch))
	b.WriteString(r.label(n))
	b.WriteByte('\n')

	children := ast.Children(n)
	for i, child := range children {
		if i == len(children)-1 {
			r.tree(b, child, prefix+childPrefix, "└── ", "    ")
		} else {
			r.tree(b, child, prefix+childPrefix, "├── ", r.paint(r.styles.Branch, "│   "))
		}
	}
}

// label describes a single node, e.g. function_call "foo" or number 12
func (r *Renderer) label(n ast.Node) string {
	if n == nil {
		return r.paint(r.styles.Kind, "<nil>")
	}

	parts := []string{r.paint(r.styles.Kind, n.Kind().String())}
	if name := ast.Name(n); len(name) > 0 {
		parts = append(parts, r.paint(r.styles.Name, strconv.Quote(string(name))))
	}

	switch v := n.(type) {
	case *ast.MathExpression:
		ops := make([]string, len(v.Operators))
		for i, op := range v.Operators {
			ops[i] = string(op)
		}
		parts = append(parts, "["+r.paint(r.styles.Operator, strings.Join(ops, " "))+"]")
	case *ast.Number:
		parts = append(parts, r.paint(r.styles.Value, string(v.Value)))
	case *ast.Identifier:
		parts = append(parts, r.paint(r.styles.Name, string(v.Value)))
	case *ast.Bool:
		parts = append(parts, r.paint(r.styles.Value, strconv.FormatBool(v.Value)))
	case *ast.String:
		parts = append(parts, r.paint(r.styles.Text, strconv.Quote(string(v.Value))))
	}
	return strings.Join(parts, " ")
}

// Tokens writes one token per line as position, kind name and lexeme
func (r *Renderer) Tokens(w io.Writer, tokens []lexer.Token) error {
	var b strings.Builder
	for _, t := range tokens {
		pos := fmt.Sprintf("%-7s", fmt.Sprintf("%d:%d", t.Line, t.Column))
		name := fmt.Sprintf("%-12s", t.Kind.Name())
		b.WriteString(r.paint(r.styles.Position, pos))
		b.WriteString(" ")
		b.WriteString(r.paint(r.styles.TokenStyle(t.Kind), name))
		b.WriteString(" ")
		b.WriteString(strconv.Quote(t.Lexeme))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Error writes a diagnostic for err. When err carries a source position
// the offending line of src is shown with a caret under the column.
func (r *Renderer) Error(w io.Writer, err error, src, filename string) error {
	if err == nil {
		return nil
	}

	var b strings.Builder
	b.WriteString(r.paint(r.styles.ErrorLabel, fmt.Sprintf("error[%s]", mdwerror.GetCode(err))))
	b.WriteString(": ")
	b.WriteString(err.Error())
	b.WriteByte('\n')

	if pos, ok := parser.Location(err); ok {
		if filename == "" {
			filename = "<input>"
		}
		lineNo := strconv.Itoa(pos.Line)
		pad := strings.Repeat(" ", len(lineNo))

		fmt.Fprintf(&b, "%s%s %s:%d:%d\n", pad, r.paint(r.styles.Gutter, "-->"), filename, pos.Line, pos.Column)
		fmt.Fprintf(&b, "%s %s\n", pad, r.paint(r.styles.Gutter, "|"))
		line := sourceLine(src, pos.Line)
		fmt.Fprintf(&b, "%s %s %s\n", r.paint(r.styles.Gutter, lineNo), r.paint(r.styles.Gutter, "|"), line)
		fmt.Fprintf(&b, "%s %s %s%s\n", pad, r.paint(r.styles.Gutter, "|"), caretIndent(line, pos.Column), r.paint(r.styles.Caret, "^"))
	}

	_, werr := io.WriteString(w, b.String())
	return werr
}

// sourceLine returns line n (1-based) of src without its terminator
func sourceLine(src string, n int) string {
	lines := strings.Split(src, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[n-1], "\r")
}

// caretIndent returns the whitespace that places a caret under column,
// keeping tabs so the caret lines up with the echoed line
func caretIndent(line string, column int) string {
	var b strings.Builder
	for i := 0; i < column-1; i++ {
		if i < len(line) && line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// Stats writes node counts in kind order followed by the total
func (r *Renderer) Stats(w io.Writer, stats ast.Stats) error {
	var b strings.Builder
	total := 0
	for k := ast.KindProgram; k <= ast.KindNull; k++ {
		n := stats[k]
		if n == 0 {
			continue
		}
		total += n
		fmt.Fprintf(&b, "%s %d\n", r.paint(r.styles.Kind, fmt.Sprintf("%-20s", k.String())), n)
	}
	fmt.Fprintf(&b, "%s %d\n", r.paint(r.styles.Success, fmt.Sprintf("%-20s", "total")), total)
	_, err := io.WriteString(w, b.String())
	return err
}
