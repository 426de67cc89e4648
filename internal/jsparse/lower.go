//go:build cgo

package jsparse

import (
	sitter "github.com/smacker/go-tree-sitter"

	"jscore/internal/estree"
)

// Tree-sitter node types with special handling during lowering.
const (
	jsNodeComment                  = "comment"
	jsNodeParenthesizedExpression  = "parenthesized_expression"
	jsNodeElseClause               = "else_clause"
	jsNodeFinallyClause            = "finally_clause"
	jsNodeSwitchBody               = "switch_body"
	jsNodeFormalParameters         = "formal_parameters"
	jsNodeArguments                = "arguments"
	jsNodeClassHeritage            = "class_heritage"
	jsNodeTemplateString           = "template_string"
	jsNodeTemplateSubstitution     = "template_substitution"
	jsNodeBinaryExpression         = "binary_expression"
	jsNodeCallExpression           = "call_expression"
	jsNodeForInStatement           = "for_in_statement"
	jsNodeLexicalDeclaration       = "lexical_declaration"
	jsNodeVariableDeclaration      = "variable_declaration"
	jsNodeMethodDefinition         = "method_definition"
	jsNodeAugmentedAssignment      = "augmented_assignment_expression"
	jsNodeAssignmentExpression     = "assignment_expression"
	jsNodeUnaryExpression          = "unary_expression"
	jsNodeUpdateExpression         = "update_expression"
	jsNodeIfStatement              = "if_statement"
	jsNodeTernaryExpression        = "ternary_expression"
	jsNodeVariableDeclarator       = "variable_declarator"
	jsNodeTryStatement             = "try_statement"
	jsNodeSwitchStatement          = "switch_statement"
	jsNodeObjectPattern            = "object_pattern"
	jsNodeUndefined                = "undefined"
	jsNodeStringFragment           = "string_fragment"
	jsNodeEscapeSequence           = "escape_sequence"
	jsNodeAbstractClassDeclaration = "abstract_class_declaration"
	jsNodeObject                   = "object"
	jsNodeImport                   = "import"
)

// transparent node types are spliced into their parent: ESTree has no node
// for them, their children belong to the enclosing construct.
var transparent = map[string]bool{
	jsNodeParenthesizedExpression: true,
	jsNodeElseClause:              true,
	jsNodeFinallyClause:           true,
	jsNodeSwitchBody:              true,
	jsNodeFormalParameters:        true,
	jsNodeArguments:               true,
	jsNodeClassHeritage:           true,
}

// nodeTypes maps tree-sitter node types to their ESTree counterparts.
// Types missing here keep the grammar's tag.
var nodeTypes = map[string]estree.Type{
	"program":                       estree.Program,
	"expression_statement":          estree.ExpressionStatement,
	"statement_block":               estree.BlockStatement,
	"empty_statement":               estree.EmptyStatement,
	"debugger_statement":            estree.DebuggerStatement,
	"with_statement":                estree.WithStatement,
	"return_statement":              estree.ReturnStatement,
	"labeled_statement":             estree.LabeledStatement,
	"break_statement":               estree.BreakStatement,
	"continue_statement":            estree.ContinueStatement,
	jsNodeIfStatement:               estree.IfStatement,
	jsNodeSwitchStatement:           estree.SwitchStatement,
	"switch_case":                   estree.SwitchCase,
	"switch_default":                estree.SwitchCase,
	"throw_statement":               estree.ThrowStatement,
	jsNodeTryStatement:              estree.TryStatement,
	"catch_clause":                  estree.CatchClause,
	"while_statement":               estree.WhileStatement,
	"do_statement":                  estree.DoWhileStatement,
	"for_statement":                 estree.ForStatement,
	jsNodeForInStatement:            estree.ForInStatement,
	"function_declaration":          estree.FunctionDeclaration,
	"generator_function_declaration": estree.FunctionDeclaration,
	jsNodeVariableDeclaration:       estree.VariableDeclaration,
	jsNodeLexicalDeclaration:        estree.VariableDeclaration,
	jsNodeVariableDeclarator:        estree.VariableDeclarator,
	"class_declaration":             estree.ClassDeclaration,
	jsNodeAbstractClassDeclaration:  estree.ClassDeclaration,
	"class_body":                    estree.ClassBody,
	jsNodeMethodDefinition:          estree.MethodDefinition,
	"field_definition":              estree.PropertyDefinition,
	"public_field_definition":       estree.PropertyDefinition,
	"class_static_block":            estree.StaticBlock,
	"import_statement":              estree.ImportDeclaration,
	"export_statement":              estree.ExportDeclaration,

	"identifier":                           estree.Identifier,
	"property_identifier":                  estree.Identifier,
	"private_property_identifier":          estree.Identifier,
	"shorthand_property_identifier":        estree.Identifier,
	"shorthand_property_identifier_pattern": estree.Identifier,
	"statement_identifier":                 estree.Identifier,
	jsNodeUndefined:                        estree.Identifier,
	"number":                               estree.Literal,
	"string":                               estree.Literal,
	"regex":                                estree.Literal,
	"true":                                 estree.Literal,
	"false":                                estree.Literal,
	"null":                                 estree.Literal,
	"this":                                 estree.ThisExpression,
	"super":                                estree.Super,
	"array":                                estree.ArrayExpression,
	"object":                               estree.ObjectExpression,
	"pair":                                 estree.Property,
	"function":                             estree.FunctionExpression,
	"function_expression":                  estree.FunctionExpression,
	"generator_function":                   estree.FunctionExpression,
	"arrow_function":                       estree.ArrowFunctionExpression,
	"class":                                estree.ClassExpression,
	jsNodeUnaryExpression:                  estree.UnaryExpression,
	jsNodeUpdateExpression:                 estree.UpdateExpression,
	jsNodeBinaryExpression:                 estree.BinaryExpression,
	jsNodeAssignmentExpression:             estree.AssignmentExpression,
	jsNodeAugmentedAssignment:              estree.AssignmentExpression,
	jsNodeTernaryExpression:                estree.ConditionalExpression,
	jsNodeCallExpression:                   estree.CallExpression,
	"new_expression":                       estree.NewExpression,
	"member_expression":                    estree.MemberExpression,
	"subscript_expression":                 estree.MemberExpression,
	"sequence_expression":                  estree.SequenceExpression,
	"spread_element":                       estree.SpreadElement,
	"yield_expression":                     estree.YieldExpression,
	"await_expression":                     estree.AwaitExpression,
	jsNodeTemplateString:                   estree.TemplateLiteral,
	"meta_property":                        estree.MetaProperty,

	jsNodeObjectPattern:        estree.ObjectPattern,
	"array_pattern":            estree.ArrayPattern,
	"rest_pattern":             estree.RestElement,
	"pair_pattern":             estree.Property,
	"assignment_pattern":       estree.AssignmentPattern,
	"object_assignment_pattern": estree.AssignmentPattern,
}

// logicalOperators turn a binary_expression into a LogicalExpression.
var logicalOperators = map[string]bool{
	"&&": true,
	"||": true,
	"??": true,
}

// lowerer converts a tree-sitter concrete syntax tree into estree nodes.
type lowerer struct {
	source []byte
}

// lower converts node and returns the resulting estree nodes: none for
// comments, the spliced children for transparent nodes, otherwise exactly one.
func (l *lowerer) lower(node *sitter.Node) []*estree.Node {
	tsType := node.Type()

	if tsType == jsNodeComment {
		return nil
	}
	if transparent[tsType] {
		return l.lowerChildren(node)
	}

	out := &estree.Node{Type: estreeType(tsType)}

	switch out.Type {
	case estree.Identifier:
		out.Name = node.Content(l.source)
		return []*estree.Node{out}
	case estree.Literal:
		return []*estree.Node{out}
	case estree.TemplateLiteral:
		l.lowerTemplate(node, out)
		return []*estree.Node{out}
	}

	switch tsType {
	case jsNodeBinaryExpression:
		out.Operator = operatorOf(node)
		if logicalOperators[out.Operator] {
			out.Type = estree.LogicalExpression
		}
	case jsNodeAssignmentExpression:
		out.Operator = "="
	case jsNodeAugmentedAssignment, jsNodeUnaryExpression, jsNodeUpdateExpression:
		out.Operator = operatorOf(node)
	case jsNodeLexicalDeclaration:
		if kind := node.ChildByFieldName("kind"); kind != nil {
			out.Kind = kind.Type()
		}
	case jsNodeVariableDeclaration:
		out.Kind = "var"
	case jsNodeMethodDefinition:
		if parent := node.Parent(); parent != nil && parent.Type() == jsNodeObject {
			return l.lowerObjectMethod(node, out)
		}
		out.Kind = l.methodKind(node)
	case jsNodeForInStatement:
		if op := node.ChildByFieldName("operator"); op != nil && op.Type() == "of" {
			out.Type = estree.ForOfStatement
		}
		l.lowerForHeader(node, out)
		return []*estree.Node{out}
	}

	l.lowerInto(node, out)
	return []*estree.Node{out}
}

// lowerInto appends the lowered children of node to out and fills the named
// slots that belong to out's kind.
func (l *lowerer) lowerInto(node *sitter.Node, out *estree.Node) {
	tsType := node.Type()

	var alternative, value, handler, finalizer, arguments, skip *sitter.Node
	switch tsType {
	case jsNodeIfStatement, jsNodeTernaryExpression:
		alternative = node.ChildByFieldName("alternative")
	case jsNodeVariableDeclarator:
		value = node.ChildByFieldName("value")
	case jsNodeTryStatement:
		handler = node.ChildByFieldName("handler")
		finalizer = node.ChildByFieldName("finalizer")
	case jsNodeCallExpression:
		arguments = node.ChildByFieldName("arguments")
		if arguments != nil && arguments.Type() == jsNodeTemplateString {
			out.Type = estree.TaggedTemplateExpression
		}
		// import("x") is an ImportExpression with the specifier as its only child
		if fn := node.ChildByFieldName("function"); fn != nil && fn.Type() == jsNodeImport {
			out.Type = estree.ImportExpression
			skip = fn
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || !child.IsNamed() || sameNode(child, skip) {
			continue
		}

		lowered := l.lower(child)
		for _, n := range lowered {
			out.Append(n)
		}
		if len(lowered) == 0 {
			continue
		}
		first := lowered[0]

		switch {
		case sameNode(child, alternative):
			out.Alternate = first
		case sameNode(child, value):
			out.Init = first
		case sameNode(child, handler):
			out.Handler = first
		case sameNode(child, finalizer):
			out.Finalizer = first
		case sameNode(child, arguments) && out.Type == estree.TaggedTemplateExpression:
			out.Quasi = first
		}
	}

	switch out.Type {
	case estree.SwitchStatement:
		for _, c := range out.Children {
			if c.Type == estree.SwitchCase {
				out.Cases = append(out.Cases, c)
			}
		}
	case estree.ObjectPattern:
		out.Properties = append(out.Properties, out.Children...)
	}
}

// lowerObjectMethod lowers a method or accessor of an object literal. Outside
// classes ESTree has no MethodDefinition: the member is a Property whose value
// is a FunctionExpression holding the parameters and body.
func (l *lowerer) lowerObjectMethod(node *sitter.Node, out *estree.Node) []*estree.Node {
	out.Type = estree.Property
	switch kind := l.methodKind(node); kind {
	case "get", "set":
		out.Kind = kind
	default:
		out.Kind = "init"
	}

	name := node.ChildByFieldName("name")
	fn := &estree.Node{Type: estree.FunctionExpression}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		target := fn
		if sameNode(child, name) {
			target = out
		}
		for _, n := range l.lower(child) {
			target.Append(n)
		}
	}
	out.Append(fn)
	return []*estree.Node{out}
}

// lowerTemplate fills a TemplateLiteral: each substitution contributes its
// expression to Expressions, literal text becomes TemplateElement leaves.
func (l *lowerer) lowerTemplate(node *sitter.Node, out *estree.Node) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}

		switch child.Type() {
		case jsNodeTemplateSubstitution:
			for j := 0; j < int(child.ChildCount()); j++ {
				inner := child.Child(j)
				if inner == nil || !inner.IsNamed() {
					continue
				}
				for _, expr := range l.lower(inner) {
					out.Append(expr)
					out.Expressions = append(out.Expressions, expr)
				}
			}
		case jsNodeStringFragment, jsNodeEscapeSequence:
			out.Append(&estree.Node{Type: estree.TemplateElement})
		case jsNodeComment:
		default:
			for _, n := range l.lower(child) {
				out.Append(n)
			}
		}
	}
}

// lowerForHeader handles for-in and for-of. A declared loop variable
// (`for (const a in b)`) becomes a VariableDeclaration holding one
// VariableDeclarator, as in ESTree.
func (l *lowerer) lowerForHeader(node *sitter.Node, out *estree.Node) {
	kind := node.ChildByFieldName("kind")
	left := node.ChildByFieldName("left")
	value := node.ChildByFieldName("value")

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}

		if kind != nil && sameNode(child, left) {
			decl := out.Append(&estree.Node{Type: estree.VariableDeclaration, Kind: kind.Type()})
			declarator := decl.Append(&estree.Node{Type: estree.VariableDeclarator})
			for _, n := range l.lower(child) {
				declarator.Append(n)
			}
			if value != nil {
				for _, n := range l.lower(value) {
					declarator.Append(n)
					if declarator.Init == nil {
						declarator.Init = n
					}
				}
			}
			continue
		}
		if kind != nil && sameNode(child, value) {
			continue
		}

		for _, n := range l.lower(child) {
			out.Append(n)
		}
	}
}

func (l *lowerer) lowerChildren(node *sitter.Node) []*estree.Node {
	var result []*estree.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		result = append(result, l.lower(child)...)
	}
	return result
}

// methodKind classifies a method_definition as ESTree does.
func (l *lowerer) methodKind(node *sitter.Node) string {
	if name := node.ChildByFieldName("name"); name != nil && name.Content(l.source) == "constructor" {
		return "constructor"
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || child.IsNamed() {
			continue
		}
		switch child.Type() {
		case "get", "set":
			return child.Type()
		}
	}
	return "method"
}

func estreeType(tsType string) estree.Type {
	if t, ok := nodeTypes[tsType]; ok {
		return t
	}
	return estree.Type(tsType)
}

// operatorOf returns the operator token of an expression node. Anonymous
// tree-sitter nodes are typed by their literal text.
func operatorOf(node *sitter.Node) string {
	if op := node.ChildByFieldName("operator"); op != nil {
		return op.Type()
	}
	return ""
}

// sameNode reports whether a and b denote the same syntax node.
func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}
