package syntax

import (
	"unicode"
	"unicode/utf8"
)

// source is a character reader with position tracking.
// It walks a UTF-8 encoded program text and hands out whitespace-free blocks.
type source struct {
	// Input
	buf string // entire program text

	// Position tracking
	filename string // source file name
	line     uint32 // current line number (1-based)
	col      uint32 // current column number (1-based, in characters)

	// Current state
	ch   rune // current character, -1 for EOF
	chw  int  // byte width of ch
	offs int  // byte offset of ch in buf
}

// newSource creates a new source over buf, positioned at its first character.
func newSource(filename, buf string) *source {
	s := &source{
		buf:      buf,
		filename: filename,
		line:     1,
		col:      0,  // Will be incremented to 1 by first nextch()
		ch:       -1, // Sentinel: -1 means "before first char"
	}
	s.nextch()
	return s
}

// nextch reads the next character from the source and updates position.
// Sets s.ch to -1 at EOF.
//
// Position tracking: (line, col, offs) always refers to the position of s.ch
// after nextch() returns.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.offs += s.chw

	if s.offs >= len(s.buf) {
		s.ch = -1
		s.chw = 0
		return
	}

	// Invalid encodings decode to utf8.RuneError with width 1 and are left
	// for the block scanner to reject.
	s.ch, s.chw = utf8.DecodeRuneInString(s.buf[s.offs:])
}

// pos returns the current position (position of current character).
func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col, s.offs)
}

// block skips whitespace and returns the next maximal run of non-whitespace
// characters together with the position of its first character.
// ok is false once the source is exhausted.
func (s *source) block() (text string, pos Pos, ok bool) {
	for s.ch >= 0 && unicode.IsSpace(s.ch) {
		s.nextch()
	}
	if s.ch < 0 {
		return "", Pos{}, false
	}

	pos = s.pos()
	start := s.offs
	for s.ch >= 0 && !unicode.IsSpace(s.ch) {
		s.nextch()
	}
	return s.buf[start:s.offs], pos, true
}

// Character classification helpers

// isIdentStart reports whether r may begin an identifier (a letter or _).
func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

// isIdentChar reports whether r may continue an identifier.
func isIdentChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

// isDigit reports whether r is a decimal digit (0-9).
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
