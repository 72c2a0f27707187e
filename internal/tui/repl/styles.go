// ============================================================================
// asa - Asa Language Toolkit
// ============================================================================
//
// Package:     repl
// Description: Styles for the interactive Asa REPL
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package repl

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/asa/internal/render"
)

// Color Palette - shared with the render package
var (
	ColorPrimary   = render.ColorPrimary
	ColorSecondary = render.ColorSecondary
	ColorSuccess   = render.ColorSuccess
	ColorError     = render.ColorError
	ColorMuted     = render.ColorMuted
	ColorText      = render.ColorText
	ColorTextDim   = render.ColorTextDim

	ColorDimmed    = lipgloss.Color("#374151") // Dark Gray
	ColorBgPanel   = lipgloss.Color("#1E293B") // Slate 800
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
)

// Header styles
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	TitlePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2)

	ModeStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)
)

// Transcript styles
var (
	TranscriptPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorDimmed).
				Padding(0, 1)

	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	EchoStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	SystemStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	SystemErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	RestStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Input styles
var (
	InputPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)
)

// Status and help styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Logo
const Logo = "Asa REPL"

// Prompt precedes every echoed input line
const Prompt = "asa» "

// RenderKeyHint renders a keyboard shortcut hint
func RenderKeyHint(key, description string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(description)
}
