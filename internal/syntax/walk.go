package syntax

// Visitor is called for each tree value during Walk.
// If it returns false, the children of the value are not visited.
type Visitor func(n AST) bool

// Walk traverses an AST in depth-first order, children in source order.
// If visitor returns false, children are not visited.
func Walk(n AST, v Visitor) {
	if n == nil || !v(n) {
		return
	}

	// Leaf values (Name, Const) have no children to visit.
	if x, ok := n.(*Node); ok {
		for _, c := range x.Children {
			Walk(c, v)
		}
	}
}

// Inspect traverses an AST and calls f for each value.
// Convenience wrapper around Walk.
func Inspect(n AST, f func(AST) bool) {
	Walk(n, Visitor(f))
}
