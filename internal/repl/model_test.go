package repl

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/you-not-fish/kinoko/internal/diag"
	"github.com/you-not-fish/kinoko/internal/syntax"
)

const validSrc = "fn[0] main() { x = 1; }"

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		mode   Mode
		ok     bool
		tokens int
		decls  int
		want   string
	}{
		{"ast", validSrc, ShowAST, true, 13, 1, "FunctionDeclare main() [0]"},
		{"tokens", validSrc, ShowTokens, true, 13, 1, "POSITION"},
		{"parse error shows diagnostic", "fn[0] main() { x = 1 }", ShowAST, false, 12, 0, `unexpected "}", expected ";"`},
		{"parse error still lists tokens", "fn[0] main() { x = 1 }", ShowTokens, false, 12, 0, "POSITION"},
		{"lexical error", "fn[0] main() { x = #; }", ShowTokens, false, 0, 0, "lexical error"},
		{"empty buffer", "", ShowAST, true, 0, 0, "Declare"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Evaluate("repl.kn", tt.src, tt.mode, diag.Reporter{})
			if res.OK != tt.ok || res.Tokens != tt.tokens || res.Decls != tt.decls {
				t.Errorf("Evaluate() = ok %v, %d tokens, %d decls; want ok %v, %d tokens, %d decls",
					res.OK, res.Tokens, res.Decls, tt.ok, tt.tokens, tt.decls)
			}
			if !strings.Contains(res.Text, tt.want) {
				t.Errorf("text does not contain %q:\n%s", tt.want, res.Text)
			}
			if tt.ok != (res.Err == nil) {
				t.Errorf("Err = %v with ok %v", res.Err, tt.ok)
			}
		})
	}
}

func TestEvaluateErrorKinds(t *testing.T) {
	res := Evaluate("repl.kn", "fn[0] f( {", ShowAST, diag.Reporter{})
	if !errors.Is(res.Err, syntax.ErrUnexpectedToken) {
		t.Errorf("Err = %v, want unexpected token", res.Err)
	}

	res = Evaluate("repl.kn", "fn[0] f(", ShowAST, diag.Reporter{})
	if !errors.Is(res.Err, syntax.ErrUnexpectedEOF) {
		t.Errorf("Err = %v, want unexpected end of input", res.Err)
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func TestNewEvaluatesSource(t *testing.T) {
	m := New(Config{Source: validSrc})
	if !m.Result().OK || m.Result().Decls != 1 {
		t.Errorf("initial result = %+v", m.Result())
	}
	if m.Mode() != ShowAST {
		t.Errorf("initial mode = %v, want ast", m.Mode())
	}
	if m.Source() != validSrc {
		t.Errorf("Source() = %q", m.Source())
	}
}

func TestToggleMode(t *testing.T) {
	m := New(Config{Source: validSrc})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if cmd != nil {
		t.Error("ctrl+t returned a command")
	}
	if m.Mode() != ShowTokens || !strings.Contains(m.Result().Text, "POSITION") {
		t.Errorf("after ctrl+t: mode %v, text:\n%s", m.Mode(), m.Result().Text)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.Mode() != ShowAST || !strings.Contains(m.Result().Text, "Declare") {
		t.Errorf("after second ctrl+t: mode %v, text:\n%s", m.Mode(), m.Result().Text)
	}
}

func TestQuit(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := update(t, New(Config{}), tea.KeyMsg{Type: k})
		if cmd == nil {
			t.Fatalf("%v: no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v: command did not quit", k)
		}
	}
}

func TestTypingReevaluates(t *testing.T) {
	m := New(Config{Source: "fn[0] main() { x = 1 }"})
	if m.Result().OK {
		t.Fatal("initial buffer should not parse")
	}

	// The cursor sits at the end of the buffer; remove "}" and finish the
	// statement.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(";}")})

	if m.Source() != "fn[0] main() { x = 1 ;}" {
		t.Fatalf("Source() = %q", m.Source())
	}
	if !m.Result().OK {
		t.Errorf("result after edit = %+v", m.Result())
	}
}

func TestView(t *testing.T) {
	m := New(Config{Source: validSrc, Filename: "demo.kn"})
	if got := m.View(); !strings.Contains(got, "starting") {
		t.Errorf("View before size = %q", got)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	view := m.View()
	for _, part := range []string{"kinoko", "demo.kn", "ast", "FunctionDeclare main() [0]", "1 declarations", "ctrl+t"} {
		if !strings.Contains(view, part) {
			t.Errorf("View missing %q:\n%s", part, view)
		}
	}
}

func TestViewShowsError(t *testing.T) {
	m := New(Config{Source: "fn[0] main() { x = 1 }", Filename: "demo.kn"})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if view := m.View(); !strings.Contains(view, "error") {
		t.Errorf("View missing error status:\n%s", view)
	}
}
