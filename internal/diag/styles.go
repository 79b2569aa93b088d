package diag

import "github.com/charmbracelet/lipgloss"

var (
	colorError  = lipgloss.Color("#EF4444") // red
	colorWarn   = lipgloss.Color("#F59E0B") // amber
	colorMuted  = lipgloss.Color("#6B7280") // gray
	colorText   = lipgloss.Color("#F8FAFC")
	colorAccent = lipgloss.Color("#06B6D4") // cyan
)

// styles holds the lipgloss styles of one diagnostic. The zero value renders
// plain text.
type styles struct {
	enabled bool

	location lipgloss.Style
	kind     lipgloss.Style
	message  lipgloss.Style
	gutter   lipgloss.Style
	caret    lipgloss.Style
	span     lipgloss.Style
	note     lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		return styles{}
	}
	return styles{
		enabled:  true,
		location: lipgloss.NewStyle().Foreground(colorText).Bold(true),
		kind:     lipgloss.NewStyle().Foreground(colorError).Bold(true),
		message:  lipgloss.NewStyle().Foreground(colorText),
		gutter:   lipgloss.NewStyle().Foreground(colorMuted),
		caret:    lipgloss.NewStyle().Foreground(colorError).Bold(true),
		span:     lipgloss.NewStyle().Foreground(colorWarn),
		note:     lipgloss.NewStyle().Foreground(colorAccent).Italic(true),
	}
}

func (s styles) render(st lipgloss.Style, text string) string {
	if !s.enabled || text == "" {
		return text
	}
	return st.Render(text)
}
