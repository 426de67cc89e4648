//go:build cgo

package jsparse

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Node types that open a new jump or declaration context.
var (
	loopTypes = map[string]bool{
		"for_statement":    true,
		"for_in_statement": true,
		"while_statement":  true,
		"do_statement":     true,
	}

	functionTypes = map[string]bool{
		"function_declaration":           true,
		"generator_function_declaration": true,
		"function":                       true,
		"function_expression":            true,
		"generator_function":             true,
		"arrow_function":                 true,
		"method_definition":              true,
	}

	// initializer contexts allow no return, break or continue
	initializerTypes = map[string]bool{
		"class_static_block":      true,
		"field_definition":        true,
		"public_field_definition": true,
	}

	scopeTypes = map[string]bool{
		"program":          true,
		"statement_block":  true,
		"switch_body":      true,
		"for_statement":    true,
		"for_in_statement": true,
	}
)

// jumpContext is what a break, continue or return statement can reach.
type jumpContext struct {
	inFunction bool
	loops      int
	breakable  int
	labels     []string
	loopLabels []string
}

func (c jumpContext) withLabel(label string, loop bool) jumpContext {
	c.labels = append(c.labels[:len(c.labels):len(c.labels)], label)
	if loop {
		c.loopLabels = append(c.loopLabels[:len(c.loopLabels):len(c.loopLabels)], label)
	}
	return c
}

// scope tracks the names declared directly in one block.
type scope struct {
	lexical map[string]bool
	vars    map[string]bool
}

func newScope() *scope {
	return &scope{lexical: make(map[string]bool), vars: make(map[string]bool)}
}

// earlyChecker reports the early errors tree-sitter accepts but the language
// rejects: break and continue without a target, return outside a function,
// and a lexical name declared twice in one block.
type earlyChecker struct {
	source []byte
	lang   Language
}

// checkEarlyErrors returns the first early error in document order, or nil.
func checkEarlyErrors(root *sitter.Node, source []byte, lang Language) *SyntaxError {
	c := &earlyChecker{source: source, lang: lang}
	return c.check(root, jumpContext{}, nil)
}

func (c *earlyChecker) check(node *sitter.Node, jc jumpContext, sc *scope) *SyntaxError {
	tsType := node.Type()

	switch {
	case functionTypes[tsType]:
		jc = jumpContext{inFunction: true}
	case initializerTypes[tsType]:
		jc = jumpContext{}
	}
	if scopeTypes[tsType] {
		sc = newScope()
	}

	switch tsType {
	case "break_statement":
		if label := node.ChildByFieldName("label"); label != nil {
			if !contains(jc.labels, label.Content(c.source)) {
				return c.errorAt(node, "undefined label "+label.Content(c.source))
			}
		} else if jc.breakable == 0 {
			return c.errorAt(node, "illegal break statement")
		}
	case "continue_statement":
		if jc.loops == 0 {
			return c.errorAt(node, "illegal continue statement")
		}
		if label := node.ChildByFieldName("label"); label != nil && !contains(jc.loopLabels, label.Content(c.source)) {
			return c.errorAt(node, "undefined loop label "+label.Content(c.source))
		}
	case "return_statement":
		if !jc.inFunction {
			return c.errorAt(node, "return outside of function")
		}
	case "labeled_statement":
		if label := node.ChildByFieldName("label"); label != nil {
			body := node.ChildByFieldName("body")
			jc = jc.withLabel(label.Content(c.source), body != nil && loopTypes[body.Type()])
		}
	case "switch_statement":
		jc.breakable++
	case "lexical_declaration", "variable_declaration":
		lexical := tsType == "lexical_declaration"
		for i := 0; i < int(node.NamedChildCount()); i++ {
			decl := node.NamedChild(i)
			if decl.Type() != "variable_declarator" {
				continue
			}
			if serr := c.declare(sc, decl.ChildByFieldName("name"), lexical); serr != nil {
				return serr
			}
		}
	case "class_declaration":
		if serr := c.declare(sc, node.ChildByFieldName("name"), true); serr != nil {
			return serr
		}
	case "function_declaration", "generator_function_declaration":
		if serr := c.declare(sc, node.ChildByFieldName("name"), false); serr != nil {
			return serr
		}
	}

	if loopTypes[tsType] {
		jc.loops++
		jc.breakable++
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		if serr := c.check(child, jc, sc); serr != nil {
			return serr
		}
	}
	return nil
}

// declare records the names bound by pattern in sc.
func (c *earlyChecker) declare(sc *scope, pattern *sitter.Node, lexical bool) *SyntaxError {
	if sc == nil || pattern == nil {
		return nil
	}
	for _, id := range boundNames(pattern) {
		name := id.Content(c.source)
		if sc.lexical[name] || (lexical && sc.vars[name]) {
			return c.errorAt(id, "identifier "+name+" has already been declared")
		}
		if lexical {
			sc.lexical[name] = true
		} else {
			sc.vars[name] = true
		}
	}
	return nil
}

// boundNames returns the identifier nodes a binding pattern declares.
func boundNames(pattern *sitter.Node) []*sitter.Node {
	switch pattern.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		return []*sitter.Node{pattern}
	case "pair_pattern":
		if value := pattern.ChildByFieldName("value"); value != nil {
			return boundNames(value)
		}
		return nil
	case "assignment_pattern", "object_assignment_pattern":
		if left := pattern.ChildByFieldName("left"); left != nil {
			return boundNames(left)
		}
		return nil
	case "object_pattern", "array_pattern", "rest_pattern":
		var names []*sitter.Node
		for i := 0; i < int(pattern.NamedChildCount()); i++ {
			names = append(names, boundNames(pattern.NamedChild(i))...)
		}
		return names
	}
	return nil
}

func (c *earlyChecker) errorAt(node *sitter.Node, reason string) *SyntaxError {
	pos := node.StartPoint()
	return &SyntaxError{
		Language: c.lang,
		Line:     int(pos.Row) + 1,
		Column:   int(pos.Column) + 1,
		Reason:   reason,
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
