// Package repl is an interactive editor that tokenizes and parses its buffer
// on every change and shows the token table, the tree or the diagnostic.
package repl

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/you-not-fish/kinoko/internal/diag"
	"github.com/you-not-fish/kinoko/internal/syntax"
)

// Mode selects what the output panel shows for a valid buffer.
type Mode int

const (
	ShowAST Mode = iota
	ShowTokens
)

func (m Mode) String() string {
	if m == ShowTokens {
		return "tokens"
	}
	return "ast"
}

// Config holds the editor settings.
type Config struct {
	Filename string // name used in positions
	Source   string // initial buffer
	Color    bool   // style diagnostics
	Context  int    // diagnostic context lines
}

// Result is the outcome of evaluating one buffer.
type Result struct {
	Text   string // panel content
	OK     bool   // the buffer parsed
	Tokens int
	Decls  int
	Err    error
}

// Evaluate tokenizes and parses src. The text shows the tokens or the tree
// depending on mode, or the rendered diagnostic of the first failure.
func Evaluate(filename, src string, mode Mode, rep diag.Reporter) Result {
	var buf bytes.Buffer
	rep.Out = &buf

	toks, err := syntax.Tokenize(filename, src)
	if err != nil {
		rep.Report(src, err)
		return Result{Text: buf.String(), Err: err}
	}

	root, err := syntax.Parse(toks)
	res := Result{Tokens: len(toks), Err: err}
	if err == nil {
		res.OK = true
		res.Decls = len(root.Children)
	}

	switch {
	case mode == ShowTokens:
		syntax.FprintTokens(&buf, toks)
	case err != nil:
		rep.Report(src, err)
	default:
		syntax.Fprint(&buf, root)
	}
	res.Text = buf.String()
	return res
}

// Model is the bubbletea model of the editor.
type Model struct {
	width  int
	height int
	ready  bool

	input  textarea.Model
	output viewport.Model

	cfg    Config
	mode   Mode
	src    string // buffer behind result
	result Result
}

// New returns an editor holding cfg.Source.
func New(cfg Config) Model {
	if cfg.Filename == "" {
		cfg.Filename = "<repl>"
	}

	ta := textarea.New()
	ta.Placeholder = "fn[0] main() { ... }"
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(80)
	ta.SetHeight(8)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.SetValue(cfg.Source)
	ta.Focus()

	m := Model{
		input:  ta,
		output: viewport.New(80, 12),
		cfg:    cfg,
	}
	m.evaluate()
	return m
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlT:
			if m.mode == ShowAST {
				m.mode = ShowTokens
			} else {
				m.mode = ShowAST
			}
			m.evaluate()
			return m, nil
		case tea.KeyPgUp:
			m.output.ViewUp()
			return m, nil
		case tea.KeyPgDown:
			m.output.ViewDown()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.src {
		m.evaluate()
	}
	return m, cmd
}

// layout splits the window between the input and output panels.
func (m *Model) layout() {
	const chrome = 2 + 2 + 2 + 2 // header, help, two panel borders
	inner := m.width - 4
	if inner < 10 {
		inner = 10
	}

	avail := m.height - chrome
	inputHeight := avail / 3
	if inputHeight < 3 {
		inputHeight = 3
	}
	outputHeight := avail - inputHeight
	if outputHeight < 1 {
		outputHeight = 1
	}

	m.input.SetWidth(inner)
	m.input.SetHeight(inputHeight)
	m.output.Width = inner
	m.output.Height = outputHeight
}

func (m *Model) evaluate() {
	m.src = m.input.Value()
	m.result = Evaluate(m.cfg.Filename, m.src, m.mode, diag.Reporter{Color: m.cfg.Color, Context: m.cfg.Context})
	m.output.SetContent(m.result.Text)
}

// Mode returns what the output panel shows.
func (m Model) Mode() Mode { return m.mode }

// Result returns the evaluation of the current buffer.
func (m Model) Result() Result { return m.result }

// Source returns the current buffer.
func (m Model) Source() string { return m.input.Value() }

// View renders the editor.
func (m Model) View() string {
	if !m.ready {
		return "starting kinoko repl..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("kinoko") + " " + modeStyle.Render(m.cfg.Filename+" · "+m.mode.String()))
	b.WriteString("\n")
	b.WriteString(inputPanelStyle.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(outputPanelStyle.Render(m.output.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(strings.Join([]string{
		renderKeyHint("ctrl+t", "tokens/ast"),
		renderKeyHint("pgup/pgdn", "scroll"),
		renderKeyHint("esc", "quit"),
	}, "  "))
	return b.String()
}

func (m Model) renderStatus() string {
	var s string
	if m.result.OK {
		s = statusOKStyle.Render("ok") + fmt.Sprintf(" %d tokens, %d declarations", m.result.Tokens, m.result.Decls)
	} else {
		s = statusErrorStyle.Render("error") + " " + firstLine(m.result.Err)
	}
	return statusBarStyle.Render(s)
}

func firstLine(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return msg
}

// Run starts the editor and blocks until it quits.
func Run(cfg Config, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(New(cfg), opts...).Run()
	return err
}
