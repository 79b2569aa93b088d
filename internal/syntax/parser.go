package syntax

import (
	"io"
	"strings"
)

// parser performs syntax analysis over a token sequence.
// Every rule either consumes a prefix of the remaining tokens or returns an
// *Error; the first error aborts the whole parse.
type parser struct {
	toks []Token
	i    int // index of the current token

	// Current token info (cached from toks)
	tok Token
	eof bool
}

func newParser(toks []Token) *parser {
	p := &parser{toks: toks, i: -1}
	p.next()
	return p
}

// Parse builds the AST for a token sequence. The result is always a Declare
// node with one FunctionDeclare child per declaration in source order.
func Parse(tokens []Token) (*Node, error) {
	return newParser(tokens).declarations()
}

// ParseSource tokenizes and parses src.
func ParseSource(filename, src string) (*Node, error) {
	toks, err := Tokenize(filename, src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// ParseFile reads all of r and parses it.
func ParseFile(filename string, r io.Reader) (*Node, error) {
	var b strings.Builder
	if _, err := io.Copy(&b, r); err != nil {
		return nil, err
	}
	return ParseSource(filename, b.String())
}

// ----------------------------------------------------------------------------
// Token navigation

// next advances to the next token.
func (p *parser) next() {
	if p.i < len(p.toks) {
		p.i++
	}
	p.eof = p.i >= len(p.toks)
	if p.eof {
		p.tok = Token{}
		return
	}
	p.tok = p.toks[p.i]
}

// is reports whether the current token is tok.
func (p *parser) is(tok Tok) bool {
	return !p.eof && p.tok.Tok == tok
}

// peekIs reports whether the token after the current one is tok.
func (p *parser) peekIs(tok Tok) bool {
	return p.i+1 < len(p.toks) && p.toks[p.i+1].Tok == tok
}

// got reports whether the current token is tok.
// If so, it consumes the token and returns true.
func (p *parser) got(tok Tok) bool {
	if p.is(tok) {
		p.next()
		return true
	}
	return false
}

// want consumes the current token if it matches tok.
// Otherwise, it returns the error for rule.
func (p *parser) want(rule string, tok Tok) (Token, *Error) {
	t := p.tok
	if !p.got(tok) {
		return Token{}, p.unexpected(rule, tok)
	}
	return t, nil
}

// ----------------------------------------------------------------------------
// Error handling

// unexpected returns the error for rule failing at the current token.
func (p *parser) unexpected(rule string, expected ...Tok) *Error {
	want := make([]string, len(expected))
	for i, t := range expected {
		want[i] = t.quoted()
	}

	if p.eof {
		e := &Error{Kind: UnexpectedEOF, Rule: rule, Expected: want, Block: -1}
		if n := len(p.toks); n > 0 {
			e.Pos = p.toks[n-1].End()
			e.Block = p.toks[n-1].Block
		}
		return e
	}
	return &Error{
		Kind:     UnexpectedToken,
		Pos:      p.tok.Pos,
		Block:    p.tok.Block,
		Rule:     rule,
		Expected: want,
		Found:    p.tok.String(),
	}
}

// ----------------------------------------------------------------------------
// Declarations

// declarations parses declarations until the tokens are exhausted.
func (p *parser) declarations() (*Node, error) {
	root := &Node{Op: Declare, Children: []AST{}}
	if !p.eof {
		root.pos = p.tok.Pos
	}

	for !p.eof {
		d, err := p.declaration()
		if err != nil {
			err.Decls = len(root.Children)
			return nil, err
		}
		root.Children = append(root.Children, d)
	}
	return root, nil
}

// declaration parses: fn [ Const ] Name ( Params ) { Stmts }
func (p *parser) declaration() (*Node, *Error) {
	const rule = "declaration"

	fn, err := p.want(rule, _Fn)
	if err != nil {
		return nil, err
	}
	if _, err := p.want(rule, _Lbrack); err != nil {
		return nil, err
	}
	retnum, err := p.want(rule, _Const)
	if err != nil {
		return nil, err
	}
	if _, err := p.want(rule, _Rbrack); err != nil {
		return nil, err
	}
	name, err := p.want(rule, _Name)
	if err != nil {
		return nil, err
	}
	params, err := p.argumentList()
	if err != nil {
		return nil, err
	}
	if _, err := p.want(rule, _Lbrace); err != nil {
		return nil, err
	}
	body, err := p.statementList()
	if err != nil {
		return nil, err
	}
	if _, err := p.want(rule, _Rbrace); err != nil {
		return nil, err
	}

	op := FuncDeclOp{Name: name.Lit, Params: params, RetNum: int(retnum.Value)}
	return NewNode(fn.Pos, op, body), nil
}

// argumentList parses ( name, name, ... ) and returns the names in order.
func (p *parser) argumentList() ([]string, *Error) {
	const rule = "argument list"

	if _, err := p.want(rule, _Lparen); err != nil {
		return nil, err
	}

	params := []string{}
	if p.got(_Rparen) {
		return params, nil
	}

	for {
		name, err := p.want(rule, _Name)
		if err != nil {
			return nil, err
		}
		params = append(params, name.Lit)

		switch {
		case p.got(_Comma):
			// another name must follow
		case p.got(_Rparen):
			return params, nil
		default:
			return nil, p.unexpected(rule, _Comma, _Rparen)
		}
	}
}

// ----------------------------------------------------------------------------
// Statements

// statementList parses statements up to, but not including, the closing }.
func (p *parser) statementList() (*Node, *Error) {
	block := &Node{Op: Statement, Children: []AST{}}
	block.pos = p.tok.Pos

	for !p.is(_Rbrace) {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		block.Children = append(block.Children, s)
	}
	return block, nil
}

// statement parses an assignment "Name = Expr ;" or a call "Name ( Args ) ;".
func (p *parser) statement() (*Node, *Error) {
	const rule = "statement"

	name, err := p.want(rule, _Name)
	if err != nil {
		return nil, err
	}

	var s *Node
	switch {
	case p.got(_Assign):
		x, err := p.expression()
		if err != nil {
			return nil, err
		}
		s = NewNode(name.Pos, Substitute, NewName(name.Pos, name.Lit), x)

	case p.is(_Lparen):
		if s, err = p.call(name); err != nil {
			return nil, err
		}

	default:
		return nil, p.unexpected(rule, _Assign, _Lparen)
	}

	if _, err := p.want(rule, _Semi); err != nil {
		return nil, err
	}
	return s, nil
}

// ----------------------------------------------------------------------------
// Expressions

// expression parses a constant, an identifier, or a call.
func (p *parser) expression() (AST, *Error) {
	const rule = "expression"

	switch {
	case p.is(_Const):
		c := NewConst(p.tok.Pos, p.tok.Value)
		p.next()
		return c, nil

	case p.is(_Name):
		name := p.tok
		p.next()
		if p.is(_Lparen) {
			c, err := p.call(name)
			if err != nil {
				return nil, err
			}
			return c, nil
		}
		return NewName(name.Pos, name.Lit), nil

	default:
		return nil, p.unexpected(rule, _Const, _Name)
	}
}

// call parses ( Args ) following the callee name, which has already been
// consumed.
func (p *parser) call(callee Token) (*Node, *Error) {
	const rule = "call"

	if _, err := p.want(rule, _Lparen); err != nil {
		return nil, err
	}
	args, err := p.expressionList()
	if err != nil {
		return nil, err
	}
	if _, err := p.want(rule, _Rparen); err != nil {
		return nil, err
	}

	return NewNode(callee.Pos, CallOp{Name: callee.Lit}, args...), nil
}

// expressionList parses comma-separated expressions up to, but not
// including, the closing ).
func (p *parser) expressionList() ([]AST, *Error) {
	const rule = "expression list"

	list := []AST{}
	if p.is(_Rparen) {
		return list, nil
	}

	for {
		x, err := p.expression()
		if err != nil {
			return nil, err
		}
		list = append(list, x)

		switch {
		case p.got(_Comma):
			// another expression must follow
		case p.is(_Rparen):
			return list, nil
		default:
			return nil, p.unexpected(rule, _Comma, _Rparen)
		}
	}
}
