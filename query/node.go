package query

import "strings"

// Node is one entry of a parsed query: a *Term or an Operator.
type Node interface {
	// String returns the node in canonical wire syntax.
	String() string
}

// Join renders a node list back to a query string, serializing each node
// and joining with single spaces. Nodes that serialize to "" are skipped.
func Join(nodes []Node) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		s := n.String()
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

// Optimize runs the post-parse cleanup over a node list: terms whose
// serialized form is empty are dropped, and runs of consecutive equal
// operators collapse into one. Surviving nodes keep their order and are
// not otherwise altered.
func Optimize(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	var prevOp Operator
	havePrevOp := false

	for _, n := range nodes {
		switch v := n.(type) {
		case Operator:
			if havePrevOp && v == prevOp {
				continue
			}
			prevOp = v
			havePrevOp = true
		case *Term:
			if v.String() == "" {
				continue
			}
			havePrevOp = false
		default:
			havePrevOp = false
		}
		out = append(out, n)
	}
	return out
}
