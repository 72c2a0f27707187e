// ============================================================================
// asa - Asa Language Toolkit
// ============================================================================
//
// Package:     render
// Description: Styles for syntax tree, token and diagnostic output
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/asa/foundation/asa/lexer"
)

// Color Palette - Same as the TUI components for consistency
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorAccent    = lipgloss.Color("#F59E0B") // Amber
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextDim   = lipgloss.Color("#64748B") // Slate 500
)

// Styles groups the styles used by a Renderer
type Styles struct {
	Kind     lipgloss.Style
	Name     lipgloss.Style
	Value    lipgloss.Style
	Text     lipgloss.Style
	Operator lipgloss.Style
	Branch   lipgloss.Style
	Position lipgloss.Style

	Keyword    lipgloss.Style
	Symbol     lipgloss.Style
	Word       lipgloss.Style
	Whitespace lipgloss.Style
	Illegal    lipgloss.Style

	ErrorLabel lipgloss.Style
	Gutter     lipgloss.Style
	Caret      lipgloss.Style
	Success    lipgloss.Style
}

// ColorStyles returns the styles for terminals
func ColorStyles() Styles {
	return Styles{
		Kind:     lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true),
		Name:     lipgloss.NewStyle().Foreground(ColorSecondary),
		Value:    lipgloss.NewStyle().Foreground(ColorAccent),
		Text:     lipgloss.NewStyle().Foreground(ColorSuccess),
		Operator: lipgloss.NewStyle().Foreground(ColorAccent).Bold(true),
		Branch:   lipgloss.NewStyle().Foreground(ColorTextDim),
		Position: lipgloss.NewStyle().Foreground(ColorTextDim),

		Keyword:    lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true),
		Symbol:     lipgloss.NewStyle().Foreground(ColorAccent),
		Word:       lipgloss.NewStyle().Foreground(ColorText),
		Whitespace: lipgloss.NewStyle().Foreground(ColorMuted),
		Illegal:    lipgloss.NewStyle().Foreground(ColorError).Bold(true),

		ErrorLabel: lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Gutter:     lipgloss.NewStyle().Foreground(ColorSecondary),
		Caret:      lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Success:    lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
	}
}

// TokenStyle picks the style for a token kind
func (s Styles) TokenStyle(kind lexer.Kind) lipgloss.Style {
	switch {
	case kind.IsKeyword():
		return s.Keyword
	case kind == lexer.Alpha || kind == lexer.Digit:
		return s.Word
	case kind == lexer.WhiteSpace || kind == lexer.Comment:
		return s.Whitespace
	case kind == lexer.Illegal:
		return s.Illegal
	default:
		return s.Symbol
	}
}
