package syntax

import (
	"fmt"
	"strconv"
)

// Tok represents the type of a lexical token.
type Tok uint

const (
	// Value tokens
	_Name  Tok = iota // identifier: foo, bar_1
	_Const            // constant: 123, 'a', '\''

	// Punctuators
	_Lbrace // {
	_Rbrace // }
	_Lparen // (
	_Rparen // )
	_Lbrack // [
	_Rbrack // ]
	_Comma  // ,
	_Add    // +
	_Sub    // -
	_Mul    // *
	_Div    // /
	_Rem    // %
	_Assign // =
	_Semi   // ;
	_Lss    // <
	_Gtr    // >

	// Keywords
	_Fn
	_Return
	_Val
	_If
	_Elsif
	_Else

	tokCount
)

// tokNames maps tokens to their string representation.
var tokNames = [...]string{
	_Name:  "identifier",
	_Const: "constant",

	_Lbrace: "{",
	_Rbrace: "}",
	_Lparen: "(",
	_Rparen: ")",
	_Lbrack: "[",
	_Rbrack: "]",
	_Comma:  ",",
	_Add:    "+",
	_Sub:    "-",
	_Mul:    "*",
	_Div:    "/",
	_Rem:    "%",
	_Assign: "=",
	_Semi:   ";",
	_Lss:    "<",
	_Gtr:    ">",

	_Fn:     "fn",
	_Return: "return",
	_Val:    "val",
	_If:     "if",
	_Elsif:  "elsif",
	_Else:   "else",
}

// String returns the string representation of the token type.
func (t Tok) String() string {
	if t < tokCount {
		return tokNames[t]
	}
	return fmt.Sprintf("tok(%d)", t)
}

// IsKeyword reports whether t is one of the reserved words.
func (t Tok) IsKeyword() bool {
	return _Fn <= t && t <= _Else
}

// IsPunct reports whether t is a punctuator.
func (t Tok) IsPunct() bool {
	return _Lbrace <= t && t <= _Gtr
}

// IsName reports whether t is an identifier.
func (t Tok) IsName() bool {
	return t == _Name
}

// IsConst reports whether t is a constant.
func (t Tok) IsConst() bool {
	return t == _Const
}

// Class returns the token class: "keyword", "identifier", "constant" or
// "punctuator".
func (t Tok) Class() string {
	switch {
	case t.IsKeyword():
		return "keyword"
	case t.IsPunct():
		return "punctuator"
	}
	return t.String()
}

// quoted returns how t is named in diagnostics: value tokens by class,
// fixed spellings in quotes.
func (t Tok) quoted() string {
	if t == _Name || t == _Const {
		return t.String()
	}
	return strconv.Quote(t.String())
}

// keywords maps reserved words to their token type.
var keywords = map[string]Tok{
	"fn":     _Fn,
	"return": _Return,
	"val":    _Val,
	"if":     _If,
	"elsif":  _Elsif,
	"else":   _Else,
}

// LookupKeyword returns the token for the given identifier string.
// If the identifier is a keyword, returns the keyword token.
// Otherwise, returns the identifier token.
func LookupKeyword(ident string) Tok {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Name
}

// puncts is the fixed table of single-character punctuators.
var puncts = map[rune]Tok{
	'{': _Lbrace,
	'}': _Rbrace,
	'(': _Lparen,
	')': _Rparen,
	'[': _Lbrack,
	']': _Rbrack,
	',': _Comma,
	'+': _Add,
	'-': _Sub,
	'*': _Mul,
	'/': _Div,
	'%': _Rem,
	'=': _Assign,
	';': _Semi,
	'<': _Lss,
	'>': _Gtr,
}

// Token is a single lexical unit together with where it came from.
type Token struct {
	Tok   Tok    // token type
	Lit   string // source text of the token
	Value int32  // constant value (only valid when Tok is a constant)
	Pos   Pos    // position of the first character
	Block int    // 0-based index of the whitespace-delimited block
}

// Name returns the identifier text, or "" if the token is not an identifier.
func (t Token) Name() string {
	if t.Tok != _Name {
		return ""
	}
	return t.Lit
}

// End returns the position immediately after the token.
func (t Token) End() Pos {
	return t.Pos.shift(len([]rune(t.Lit)), len(t.Lit))
}

// String describes the token the way diagnostics refer to it.
func (t Token) String() string {
	switch {
	case t.Tok == _Name:
		return fmt.Sprintf("identifier %q", t.Lit)
	case t.Tok == _Const:
		return fmt.Sprintf("constant %d", t.Value)
	case t.Tok.IsKeyword():
		return fmt.Sprintf("keyword %q", t.Lit)
	}
	return strconv.Quote(t.Lit)
}
