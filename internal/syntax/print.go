package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, n AST) {
	p := &printer{w: w}
	p.print(n)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) print(n AST) {
	if n == nil {
		return
	}

	switch n := n.(type) {
	case *Node:
		p.printf("%s %s\n", n.Op, n.pos)
		p.indent++
		for _, c := range n.Children {
			p.print(c)
		}
		p.indent--

	case *Name:
		p.printf("Name %s %q\n", n.pos, n.Value)

	case *Const:
		p.printf("Const %s %d\n", n.pos, n.Value)

	default:
		p.printf("<%T>\n", n)
	}
}

// FprintTokens writes tokens to w as a table with one row per token.
func FprintTokens(w io.Writer, toks []Token) {
	fmt.Fprintf(w, "%-20s %-6s %-12s %s\n", "POSITION", "BLOCK", "TOKEN", "VALUE")
	fmt.Fprintf(w, "%-20s %-6s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 6), strings.Repeat("-", 12), strings.Repeat("-", 12))
	for _, t := range toks {
		fmt.Fprintf(w, "%-20s %-6d %-12s %s\n", t.Pos, t.Block, t.Tok, tokenValue(t))
	}
}

// tokenValue is the VALUE column of FprintTokens. Constants show their
// decimal value, followed by the source text when that differs.
func tokenValue(t Token) string {
	if t.Tok != _Const {
		return strconv.Quote(t.Lit)
	}
	v := strconv.FormatInt(int64(t.Value), 10)
	if t.Lit != v {
		v += " (" + t.Lit + ")"
	}
	return v
}
