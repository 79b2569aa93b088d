// Package syntax implements lexical and syntactic analysis for the kinoko
// language.
//
// Tokenize turns program text into a flat token sequence; Parse turns a
// token sequence into an AST rooted at a Declare node. Both are pure and
// stop at the first error, which is returned as an *Error.
//
// The operator vocabulary is wider than the grammar: Add, Sub, Multiply,
// Division, Modulo, If, Do and Expression nodes are understood by Walk and
// the printers, but Parse never builds them. An expression is a single
// constant, identifier or call.
package syntax

import (
	"fmt"
	"strings"
)

// ----------------------------------------------------------------------------
// Interfaces

// AST is the interface implemented by all tree values: *Node, *Name and
// *Const.
type AST interface {
	Pos() Pos // position of the first token belonging to the value
	aNode()   // marker method to restrict implementations to this package
}

// Operator tags a Node with the construct it represents. It is implemented
// by BasicOp, CallOp and FuncDeclOp.
type Operator interface {
	String() string
	anOp()
}

// ----------------------------------------------------------------------------
// Base node type

// node is the base struct embedded in all AST values.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

// ----------------------------------------------------------------------------
// Tree values

// Node is an interior tree value. Children are owned by the node and kept in
// source order.
type Node struct {
	node
	Op       Operator
	Children []AST
}

// Name is an identifier leaf.
type Name struct {
	node
	Value string
}

// Const is a constant leaf.
type Const struct {
	node
	Value int32
}

// NewNode returns a Node with the given operator and children.
func NewNode(pos Pos, op Operator, children ...AST) *Node {
	n := &Node{Op: op, Children: children}
	n.pos = pos
	return n
}

// NewName returns an identifier leaf.
func NewName(pos Pos, value string) *Name {
	n := &Name{Value: value}
	n.pos = pos
	return n
}

// NewConst returns a constant leaf.
func NewConst(pos Pos, value int32) *Const {
	c := &Const{Value: value}
	c.pos = pos
	return c
}

// ----------------------------------------------------------------------------
// Operators

// BasicOp is an operator that carries no payload.
type BasicOp uint8

const (
	Add        BasicOp = iota // a + b (never produced by Parse)
	Sub                       // a - b (never produced by Parse)
	Multiply                  // a * b (never produced by Parse)
	Division                  // a / b (never produced by Parse)
	Modulo                    // a % b (never produced by Parse)
	Substitute                // assignment: [target, value]
	If                        // never produced by Parse
	Do                        // never produced by Parse
	Expression                // never produced by Parse
	Statement                 // statement block
	Declare                   // root: one child per function
)

var basicOpNames = [...]string{
	Add:        "Add",
	Sub:        "Sub",
	Multiply:   "Multiply",
	Division:   "Division",
	Modulo:     "Modulo",
	Substitute: "Substitute",
	If:         "If",
	Do:         "Do",
	Expression: "Expression",
	Statement:  "Statement",
	Declare:    "Declare",
}

func (op BasicOp) String() string {
	if int(op) < len(basicOpNames) {
		return basicOpNames[op]
	}
	return fmt.Sprintf("BasicOp(%d)", op)
}

func (BasicOp) anOp() {}

// CallOp is a call of the named function; the node's children are the
// argument expressions.
type CallOp struct {
	Name string
}

func (op CallOp) String() string { return "Call " + op.Name }
func (CallOp) anOp()             {}

// FuncDeclOp is a function declaration; the node has exactly one child, the
// Statement block of the body.
type FuncDeclOp struct {
	Name   string   // function name
	Params []string // parameter names in order; duplicates are not rejected
	RetNum int      // declared number of return values (not checked)
}

func (op FuncDeclOp) String() string {
	return fmt.Sprintf("FunctionDeclare %s(%s) [%d]", op.Name, strings.Join(op.Params, ", "), op.RetNum)
}

func (FuncDeclOp) anOp() {}

// ----------------------------------------------------------------------------
// Helpers

// Is reports whether n is a Node tagged with the basic operator op.
func Is(n AST, op BasicOp) bool {
	x, ok := n.(*Node)
	if !ok {
		return false
	}
	b, ok := x.Op.(BasicOp)
	return ok && b == op
}

// Funcs returns the function declarations of a Declare root.
func Funcs(root *Node) []*Node {
	var fns []*Node
	for _, c := range root.Children {
		if n, ok := c.(*Node); ok {
			if _, ok := n.Op.(FuncDeclOp); ok {
				fns = append(fns, n)
			}
		}
	}
	return fns
}
