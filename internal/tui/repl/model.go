// ============================================================================
// asa - Asa Language Toolkit
// ============================================================================
//
// Package:     repl
// Description: Bubbletea model for the interactive Asa REPL
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package repl

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/asa/foundation/asa/parser"
	"github.com/msto63/asa/internal/history"
	"github.com/msto63/asa/internal/render"
	"github.com/msto63/asa/internal/service"
)

// maxTranscript bounds the number of blocks kept in the transcript
const maxTranscript = 200

// Model is the Bubbletea model for the REPL
type Model struct {
	// State
	width  int
	height int
	ready  bool
	busy   bool
	quit   bool

	// Components
	input    textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	// Evaluation
	service    *service.Service
	renderer   *render.Renderer
	format     render.Format
	rule       string
	showTokens bool

	// Transcript and input recall
	transcript []string
	inputs     []string
	recall     int
	lastOK     bool
	lastRun    time.Duration
	evaluated  int
}

// Config holds REPL configuration
type Config struct {
	Service  *service.Service
	Renderer *render.Renderer
	Format   render.Format
	Rule     string // Grammar rule; empty means program
}

// New creates a new REPL model
func New(cfg Config) Model {
	ta := textarea.New()
	ta.Placeholder = "Asa-Code eingeben, :help für Befehle..."
	ta.Focus()
	ta.CharLimit = parser.DefaultMaxInputLength
	ta.SetWidth(80)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	renderer := cfg.Renderer
	if renderer == nil {
		renderer = render.New(true)
	}
	format := cfg.Format
	if format == "" {
		format = render.FormatTree
	}
	rule := cfg.Rule
	if rule == "" {
		rule = parser.RuleProgram
	}

	return Model{
		input:    ta,
		spinner:  sp,
		service:  cfg.Service,
		renderer: renderer,
		format:   format,
		rule:     rule,
		lastOK:   true,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quit = true
			return m, tea.Quit

		case "enter":
			if m.busy {
				return m, nil
			}
			line := strings.TrimSpace(m.input.Value())
			if line == "" {
				return m, nil
			}
			m.input.Reset()
			m.remember(line)
			if strings.HasPrefix(line, ":") {
				return m.runCommand(line)
			}
			m.busy = true
			return m, tea.Batch(m.spinner.Tick, m.evaluate(line))

		case "ctrl+l":
			m.transcript = nil
			m.updateContent()
			return m, nil

		case "up":
			if len(m.inputs) > 0 && m.recall > 0 {
				m.recall--
				m.input.SetValue(m.inputs[m.recall])
			}
			return m, nil

		case "down":
			if m.recall < len(m.inputs)-1 {
				m.recall++
				m.input.SetValue(m.inputs[m.recall])
			} else {
				m.recall = len(m.inputs)
				m.input.Reset()
			}
			return m, nil

		case "pgup":
			m.viewport.ViewUp()
			return m, nil

		case "pgdown":
			m.viewport.ViewDown()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Title panel
		footerHeight := 6 // Input panel + status + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 3 {
			viewportHeight = 3
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.input.SetWidth(msg.Width - 4)
		m.updateContent()

	case spinner.TickMsg:
		if m.busy {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case evaluatedMsg:
		m.busy = false
		m.evaluated++
		m.lastOK = msg.err == nil
		m.lastRun = msg.duration
		m.append(PromptStyle.Render(Prompt) + EchoStyle.Render(msg.input) + "\n" + strings.TrimRight(msg.output, "\n"))
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// evaluate parses line in the background and renders the outcome
func (m Model) evaluate(line string) tea.Cmd {
	svc, renderer, format, rule, showTokens := m.service, m.renderer, m.format, m.rule, m.showTokens

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		start := time.Now()
		var out bytes.Buffer

		if svc == nil {
			return evaluatedMsg{input: line, output: "Kein Parser konfiguriert", err: fmt.Errorf("no service")}
		}

		req := service.Request{
			Command: service.CommandREPL,
			Source:  "<repl>",
			Input:   line,
			Rule:    rule,
		}

		if showTokens {
			if tokens, err := svc.Tokenize(ctx, req); err == nil {
				renderer.Tokens(&out, tokens.Tokens)
			}
		}

		result, err := svc.Parse(ctx, req)
		if err != nil {
			renderer.Error(&out, err, line, "<repl>")
			return evaluatedMsg{input: line, output: out.String(), err: err, duration: time.Since(start)}
		}

		if err := renderer.Node(&out, result.Node, format); err != nil {
			return evaluatedMsg{input: line, output: err.Error(), err: err, duration: time.Since(start)}
		}
		if result.Rest != "" {
			out.WriteString(RestStyle.Render(fmt.Sprintf("Rest: %q", result.Rest)))
			out.WriteByte('\n')
		}
		return evaluatedMsg{input: line, output: out.String(), duration: time.Since(start)}
	}
}

// runCommand handles REPL commands starting with ':'
func (m Model) runCommand(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	switch name {
	case ":q", ":quit", ":exit":
		m.quit = true
		return m, tea.Quit

	case ":help", ":h":
		m.system(helpText)

	case ":clear":
		m.transcript = nil
		m.updateContent()

	case ":tokens":
		m.showTokens = !m.showTokens
		if m.showTokens {
			m.system("Token-Ausgabe eingeschaltet")
		} else {
			m.system("Token-Ausgabe ausgeschaltet")
		}

	case ":rule":
		if len(args) == 0 {
			m.system(fmt.Sprintf("Regel: %s\nVerfügbar: %s", m.rule, strings.Join(parser.Rules(), ", ")))
			break
		}
		if !knownRule(args[0]) {
			m.systemError(fmt.Sprintf("Unbekannte Regel %q", args[0]))
			break
		}
		m.rule = args[0]
		m.system("Regel: " + m.rule)

	case ":format":
		if len(args) == 0 {
			m.system(fmt.Sprintf("Format: %s", m.format))
			break
		}
		format, err := render.ParseFormat(args[0])
		if err != nil {
			m.systemError(err.Error())
			break
		}
		m.format = format
		m.system(fmt.Sprintf("Format: %s", m.format))

	case ":history":
		m.showHistory()

	default:
		m.systemError(fmt.Sprintf("Unbekannter Befehl %s, :help zeigt alle Befehle", name))
	}

	return m, nil
}

const helpText = `Befehle:
  :rule [name]     Grammatikregel anzeigen oder wählen
  :format [name]   Ausgabeformat (tree, json, yaml, sexpr)
  :tokens          Token-Ausgabe ein/aus
  :history         Letzte Läufe anzeigen
  :clear           Verlauf leeren
  :quit            Beenden`

// historyLimit is the number of runs listed by :history
const historyLimit = 10

// showHistory lists the most recent recorded runs
func (m *Model) showHistory() {
	var store history.Store
	if m.service != nil {
		store = m.service.History()
	}
	if store == nil {
		m.systemError("Kein Verlauf konfiguriert")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	entries, err := store.Query(ctx, history.Filter{Limit: historyLimit})
	if err != nil {
		m.systemError(err.Error())
		return
	}
	if len(entries) == 0 {
		m.system("Verlauf ist leer")
		return
	}

	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		status := string(e.Status)
		if e.ErrorCode != "" {
			status += " " + e.ErrorCode
		}
		fmt.Fprintf(&b, "%s  %-8s %-10s %s", e.Timestamp.Local().Format("15:04:05"), e.Command, status, firstLine(e.Input))
	}
	m.system(b.String())
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

func knownRule(rule string) bool {
	for _, r := range parser.Rules() {
		if r == rule {
			return true
		}
	}
	return false
}

// remember stores line for recall with the arrow keys
func (m *Model) remember(line string) {
	if n := len(m.inputs); n == 0 || m.inputs[n-1] != line {
		m.inputs = append(m.inputs, line)
	}
	m.recall = len(m.inputs)
}

func (m *Model) system(text string) {
	m.append(SystemStyle.Render(text))
}

func (m *Model) systemError(text string) {
	m.append(SystemErrorStyle.Render(text))
}

func (m *Model) append(block string) {
	m.transcript = append(m.transcript, block)
	if len(m.transcript) > maxTranscript {
		m.transcript = m.transcript[len(m.transcript)-maxTranscript:]
	}
	m.updateContent()
}

// updateContent refreshes the viewport with the transcript
func (m *Model) updateContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.transcript, "\n\n"))
	m.viewport.GotoBottom()
}

// View renders the UI
func (m Model) View() string {
	if m.quit {
		return ""
	}
	if !m.ready {
		return "Lade Asa REPL..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(TranscriptPanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")

	b.WriteString(InputPanelStyle.Width(m.width - 2).Render(m.input.View()))
	b.WriteString("\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	b.WriteString(m.renderHelpBar())

	return b.String()
}

// renderHeader renders the title panel with the active rule and format
func (m Model) renderHeader() string {
	mode := ModeStyle.Render(fmt.Sprintf("Regel: %s  Format: %s", m.rule, m.format))
	if m.showTokens {
		mode += "  " + ModeStyle.Render("Tokens")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		LogoStyle.Render(Logo),
		strings.Repeat(" ", 3),
		mode,
	)
	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

// renderStatusBar renders the outcome of the last evaluation
func (m Model) renderStatusBar() string {
	var status string
	switch {
	case m.busy:
		status = m.spinner.View() + " Parse läuft..."
	case m.evaluated == 0:
		status = HelpDescStyle.Render("Bereit")
	case m.lastOK:
		status = StatusOKStyle.Render(fmt.Sprintf("OK (%s)", m.lastRun.Round(time.Microsecond)))
	default:
		status = StatusErrorStyle.Render("Fehler")
	}

	count := HelpDescStyle.Render(fmt.Sprintf("%d Eingaben", m.evaluated))
	padding := m.width - lipgloss.Width(status) - lipgloss.Width(count) - 4
	if padding < 2 {
		padding = 2
	}
	return StatusBarStyle.Width(m.width - 2).Render(status + strings.Repeat(" ", padding) + count)
}

// renderHelpBar renders the help shortcuts bar
func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("Enter", "Parsen"),
		RenderKeyHint("↑/↓", "Verlauf"),
		RenderKeyHint("PgUp/PgDn", "Blättern"),
		RenderKeyHint("Ctrl+L", "Leeren"),
		RenderKeyHint("Esc", "Beenden"),
	}
	return HelpDescStyle.Render(strings.Join(items, "  "))
}

// Run starts the REPL
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
