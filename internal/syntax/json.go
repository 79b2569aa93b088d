package syntax

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, n AST) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(encode(n))
}

// FprintYAML writes a YAML representation of the AST to w, using the same
// shape as FprintJSON.
func FprintYAML(w io.Writer, n AST) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(encode(n)); err != nil {
		return err
	}
	return enc.Close()
}

// encode converts an AST into maps and slices for the generic encoders.
func encode(n AST) interface{} {
	if n == nil {
		return nil
	}

	switch n := n.(type) {
	case *Node:
		m := map[string]interface{}{
			"type":     "Node",
			"pos":      n.pos.String(),
			"children": mapSlice(n.Children, encode),
		}
		switch op := n.Op.(type) {
		case BasicOp:
			m["op"] = op.String()
		case CallOp:
			m["op"] = "Call"
			m["name"] = op.Name
		case FuncDeclOp:
			m["op"] = "FunctionDeclare"
			m["name"] = op.Name
			m["params"] = mapSlice(op.Params, func(s string) interface{} { return s })
			m["retnum"] = op.RetNum
		}
		return m

	case *Name:
		return map[string]interface{}{
			"type":  "Name",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	case *Const:
		return map[string]interface{}{
			"type":  "Const",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	default:
		return nil
	}
}

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
