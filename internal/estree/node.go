package estree

// Node is one element of an ESTree-shaped syntax tree.
//
// Children holds every child node in source order. The named slots below
// point into Children for the kinds that carry them; a slot node is never
// stored twice, so walking Children reaches each node exactly once.
type Node struct {
	Type Type

	// Operator is set on assignment, binary, logical, unary and update
	// expressions.
	Operator string

	// Kind is "var", "let" or "const" on VariableDeclaration,
	// "constructor", "method", "get" or "set" on MethodDefinition, and
	// "init", "get" or "set" on an object literal Property.
	Kind string

	// Name is set on Identifier nodes.
	Name string

	Children []*Node

	Init        *Node   // VariableDeclarator
	Alternate   *Node   // IfStatement, ConditionalExpression
	Handler     *Node   // TryStatement
	Finalizer   *Node   // TryStatement
	Cases       []*Node // SwitchStatement
	Properties  []*Node // ObjectPattern
	Expressions []*Node // TemplateLiteral
	Quasi       *Node   // TaggedTemplateExpression
}

// Append adds child to n.Children and returns it. Nil children are ignored.
func (n *Node) Append(child *Node) *Node {
	if child != nil {
		n.Children = append(n.Children, child)
	}
	return child
}

// LastProperty returns the final entry of an ObjectPattern, or nil when the
// pattern has no entries.
func (n *Node) LastProperty() *Node {
	if len(n.Properties) == 0 {
		return nil
	}
	return n.Properties[len(n.Properties)-1]
}

// Walk visits root and its descendants in pre-order. fn receives each node
// and its parent (nil for root); returning false skips the node's children.
func Walk(root *Node, fn func(n, parent *Node) bool) {
	walk(root, nil, fn)
}

func walk(n, parent *Node, fn func(n, parent *Node) bool) {
	if n == nil {
		return
	}
	if !fn(n, parent) {
		return
	}
	for _, child := range n.Children {
		walk(child, n, fn)
	}
}

// Count returns the number of nodes in the tree rooted at root.
func Count(root *Node) int {
	total := 0
	Walk(root, func(*Node, *Node) bool {
		total++
		return true
	})
	return total
}

// Find returns every node of type t under root, in pre-order.
func Find(root *Node, t Type) []*Node {
	var result []*Node
	Walk(root, func(n, _ *Node) bool {
		if n.Type == t {
			result = append(result, n)
		}
		return true
	})
	return result
}
