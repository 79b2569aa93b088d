// Package diag renders syntax errors for people: a located headline, the
// offending source line and a caret under the failing column.
package diag

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/you-not-fish/kinoko/internal/syntax"
)

// Reporter writes diagnostics to Out.
type Reporter struct {
	Out     io.Writer
	Color   bool // style output with lipgloss
	Context int  // source lines shown above the failing one
}

// Report writes a diagnostic for err, which was produced while reading src.
// Errors that are not *syntax.Error are written as a single line.
func (r *Reporter) Report(src string, err error) {
	if err == nil {
		return
	}
	io.WriteString(r.Out, r.Format(src, err))
}

// Format returns the diagnostic Report would write.
func (r *Reporter) Format(src string, err error) string {
	st := newStyles(r.Color)

	var se *syntax.Error
	if !errors.As(err, &se) {
		return st.render(st.kind, "error") + ": " + st.render(st.message, err.Error()) + "\n"
	}

	var b strings.Builder
	if se.Pos.IsValid() {
		b.WriteString(st.render(st.location, se.Pos.String()))
		b.WriteString(": ")
	}
	b.WriteString(st.render(st.kind, se.Kind.String()))
	b.WriteString(": ")
	b.WriteString(st.render(st.message, se.Message()))
	b.WriteByte('\n')

	if se.Pos.IsValid() {
		r.excerpt(&b, st, src, se)
	}
	if se.Kind != syntax.LexicalError && se.Decls > 0 {
		b.WriteString(st.render(st.note, fmt.Sprintf("note: %d declaration(s) parsed before the error", se.Decls)))
		b.WriteByte('\n')
	}
	return b.String()
}

// excerpt writes the failing line, up to Context lines before it, and the
// marker line beneath.
func (r *Reporter) excerpt(b *strings.Builder, st styles, src string, se *syntax.Error) {
	lines := strings.Split(src, "\n")
	line := int(se.Pos.Line())
	if line > len(lines) {
		return
	}

	first := line - r.Context
	if first < 1 {
		first = 1
	}
	width := len(fmt.Sprint(line))

	for n := first; n <= line; n++ {
		text := strings.TrimSuffix(lines[n-1], "\r")
		b.WriteString(st.render(st.gutter, fmt.Sprintf("%*d | ", width, n)))
		b.WriteString(text)
		b.WriteByte('\n')
	}

	text := strings.TrimSuffix(lines[line-1], "\r")
	col := int(se.Pos.Col())
	start, end := col, col+1
	if se.Kind == syntax.LexicalError {
		start, end = blockSpan(text, col, se.Text)
	}

	b.WriteString(st.render(st.gutter, strings.Repeat(" ", width)+" | "))
	b.WriteString(indent(text, start))
	for c := start; c < end; c++ {
		if c == col {
			b.WriteString(st.render(st.caret, "^"))
			continue
		}
		b.WriteString(st.render(st.span, strings.Repeat("~", cellWidth(text, c))))
	}
	b.WriteByte('\n')
}

// blockSpan returns the columns [start, end) of the whitespace-delimited
// block holding col. The span is cut at the end of the line.
func blockSpan(line string, col int, block string) (start, end int) {
	runes := []rune(line)
	if col > len(runes) {
		return col, col + 1
	}
	start = col
	for start > 1 && !unicode.IsSpace(runes[start-2]) {
		start--
	}
	end = start + utf8.RuneCountInString(block)
	if limit := len(runes) + 1; end > limit {
		end = limit
	}
	if end <= col {
		end = col + 1
	}
	return start, end
}

// indent returns the padding that puts the next character under column col
// of line. Tabs are kept so the marker lines up however they are expanded.
func indent(line string, col int) string {
	var b strings.Builder
	c := 1
	for _, r := range line {
		if c >= col {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
		c++
	}
	for ; c < col; c++ {
		b.WriteByte(' ')
	}
	return b.String()
}

// cellWidth is the display width of the character at column col, at least 1.
func cellWidth(line string, col int) int {
	c := 1
	for _, r := range line {
		if c == col {
			if w := runewidth.RuneWidth(r); w > 1 {
				return w
			}
			return 1
		}
		c++
	}
	return 1
}
