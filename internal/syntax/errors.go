package syntax

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind distinguishes the ways tokenizing or parsing can fail.
type ErrorKind uint8

const (
	LexicalError    ErrorKind = iota + 1 // unrecognized character or malformed literal
	UnexpectedToken                      // a rule found a token outside its expected set
	UnexpectedEOF                        // a rule needed another token but input ended
)

var errorKindNames = [...]string{
	LexicalError:    "lexical error",
	UnexpectedToken: "unexpected token",
	UnexpectedEOF:   "unexpected end of input",
}

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	if k >= LexicalError && k <= UnexpectedEOF {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// Sentinel errors, one per kind. An *Error unwraps to the sentinel of its
// kind so callers can test with errors.Is.
var (
	ErrLexical         = errors.New(LexicalError.String())
	ErrUnexpectedToken = errors.New(UnexpectedToken.String())
	ErrUnexpectedEOF   = errors.New(UnexpectedEOF.String())
)

// Error is the structured failure returned by Tokenize and Parse.
// The first error aborts the whole run; there is never a partial result.
type Error struct {
	Kind ErrorKind
	Pos  Pos

	// Lexical errors: the failing whitespace-delimited block and what was
	// wrong inside it.
	Block int
	Text  string
	Msg   string

	// Syntax errors: the grammar rule that failed, what it would have
	// accepted, what it got instead, and how many declarations were
	// complete before the failure.
	Rule     string
	Expected []string
	Found    string
	Decls    int
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Pos.IsValid() {
		b.WriteString(e.Pos.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Message())
	return b.String()
}

// Message returns the error text without the position prefix.
func (e *Error) Message() string {
	switch e.Kind {
	case LexicalError:
		return fmt.Sprintf("%s in block %d %q", e.Msg, e.Block, e.Text)
	case UnexpectedToken:
		return fmt.Sprintf("in %s: unexpected %s, expected %s", e.Rule, e.Found, strings.Join(e.Expected, " or "))
	case UnexpectedEOF:
		return fmt.Sprintf("in %s: unexpected end of input, expected %s", e.Rule, strings.Join(e.Expected, " or "))
	}
	return e.Kind.String()
}

// Unwrap returns the sentinel error for e.Kind.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case LexicalError:
		return ErrLexical
	case UnexpectedToken:
		return ErrUnexpectedToken
	case UnexpectedEOF:
		return ErrUnexpectedEOF
	}
	return nil
}
