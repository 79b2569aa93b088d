package syntax

import (
	"fmt"
	"unicode/utf8"
)

// Tokenize performs lexical analysis on src.
//
// The text is split on whitespace into blocks, and each block is consumed
// front to back, one longest-match token at a time. A block that cannot be
// consumed completely fails the whole run with a LexicalError naming the
// block; no tokens are returned in that case.
func Tokenize(filename, src string) ([]Token, error) {
	s := newSource(filename, src)

	var toks []Token
	for index := 0; ; index++ {
		text, pos, ok := s.block()
		if !ok {
			return toks, nil
		}
		bs := &blockScanner{text: text, at: pos, index: index}
		var err error
		if toks, err = bs.scanAll(toks); err != nil {
			return nil, err
		}
	}
}

// blockScanner scans a single whitespace-free block.
type blockScanner struct {
	text  string // block contents
	at    Pos    // position of the first character of the block
	index int    // 0-based block index

	offs int // current byte offset in text
	col  int // current character offset in text
}

// scanAll appends the tokens of the block to toks.
func (b *blockScanner) scanAll(toks []Token) ([]Token, error) {
	for b.offs < len(b.text) {
		tok, err := b.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

// pos returns the position of the current character.
func (b *blockScanner) pos() Pos {
	return b.at.shift(b.col, b.offs)
}

// peek decodes the character n characters past the current one.
// It returns -1 if the block ends first.
func (b *blockScanner) peek(n int) (rune, int) {
	offs := b.offs
	for {
		if offs >= len(b.text) {
			return -1, 0
		}
		r, w := utf8.DecodeRuneInString(b.text[offs:])
		if n == 0 {
			return r, w
		}
		offs += w
		n--
	}
}

// error returns a LexicalError at the current character.
func (b *blockScanner) error(format string, args ...interface{}) error {
	return &Error{
		Kind:  LexicalError,
		Pos:   b.pos(),
		Block: b.index,
		Text:  b.text,
		Msg:   fmt.Sprintf(format, args...),
	}
}

// emit builds a token from the next n characters (size bytes) and
// advances past them.
func (b *blockScanner) emit(tok Tok, n, size int, value int32) Token {
	t := Token{
		Tok:   tok,
		Lit:   b.text[b.offs : b.offs+size],
		Value: value,
		Pos:   b.pos(),
		Block: b.index,
	}
	b.offs += size
	b.col += n
	return t
}

// next scans one token from the front of the remaining block.
func (b *blockScanner) next() (Token, error) {
	r, w := b.peek(0)

	switch {
	case r == utf8.RuneError && w == 1:
		return Token{}, b.error("invalid UTF-8 encoding")

	case isIdentStart(r):
		return b.scanIdent(), nil

	case isDigit(r):
		return b.scanNumber(), nil

	case r == '\'':
		return b.scanChar()

	default:
		if tok, ok := puncts[r]; ok {
			return b.emit(tok, 1, w, 0), nil
		}
		return Token{}, b.error("unrecognized character %q", r)
	}
}

// scanIdent scans an identifier or keyword.
func (b *blockScanner) scanIdent() Token {
	n, end := 0, b.offs
	for end < len(b.text) {
		r, w := utf8.DecodeRuneInString(b.text[end:])
		if !isIdentChar(r) {
			break
		}
		n++
		end += w
	}

	return b.emit(LookupKeyword(b.text[b.offs:end]), n, end-b.offs, 0)
}

// scanNumber scans a decimal constant. The value accumulates in 32-bit
// two's complement arithmetic, so literals beyond the int32 range wrap.
func (b *blockScanner) scanNumber() Token {
	var v int32
	end := b.offs
	for end < len(b.text) && isDigit(rune(b.text[end])) {
		v = v*10 + int32(b.text[end]-'0')
		end++
	}
	return b.emit(_Const, end-b.offs, end-b.offs, v)
}

// scanChar scans a character constant: 'x', '\\' or '\''.
func (b *blockScanner) scanChar() (Token, error) {
	c, cw := b.peek(1)
	if c < 0 {
		return Token{}, b.error("unterminated character literal")
	}
	if c == utf8.RuneError && cw == 1 {
		return Token{}, b.error("invalid UTF-8 encoding")
	}

	if c == '\\' {
		e, _ := b.peek(2)
		switch e {
		case -1:
			return Token{}, b.error("unterminated character literal")
		case '\\', '\'':
		default:
			return Token{}, b.error("unknown escape sequence \\%c", e)
		}
		if err := b.wantQuote(3); err != nil {
			return Token{}, err
		}
		return b.emit(_Const, 4, 4, int32(e)), nil
	}

	if err := b.wantQuote(2); err != nil {
		return Token{}, err
	}
	return b.emit(_Const, 3, 2+cw, int32(c)), nil
}

// wantQuote checks that the closing quote of a character literal is the
// n-th character from the current one.
func (b *blockScanner) wantQuote(n int) error {
	switch r, _ := b.peek(n); r {
	case '\'':
		return nil
	case -1:
		return b.error("unterminated character literal")
	default:
		return b.error("malformed character literal")
	}
}
