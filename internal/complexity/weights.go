package complexity

import "jscore/internal/estree"

// WeightsVersion identifies the weight table. Bump it whenever a rule changes
// so cached scores from older tables are not reused.
const WeightsVersion = 1

// rule computes the contribution of a single node. parent is nil for the root.
type rule func(n, parent *estree.Node) int

// flat returns a rule with a constant contribution.
func flat(points int) rule {
	return func(_, _ *estree.Node) int { return points }
}

// weights maps node types to their scoring rule. Types absent from the table
// contribute nothing, but their children are still scored.
var weights = map[estree.Type]rule{
	// Mutation
	estree.AssignmentExpression: flat(1),
	estree.VariableDeclarator:   variableDeclarator,
	estree.UpdateExpression:     flat(1),

	// Branching
	estree.ConditionalExpression: flat(3),
	estree.IfStatement:           ifStatement,
	estree.SwitchStatement:       switchStatement,
	estree.LogicalExpression:     flat(1),
	estree.BinaryExpression:      flat(1),
	estree.UnaryExpression:       flat(1),

	// Jumps and scoping
	estree.LabeledStatement: flat(5),
	estree.BreakStatement:   flat(2),
	estree.WithStatement:    flat(5),
	estree.ThrowStatement:   flat(1),
	estree.TryStatement:     tryStatement,

	// Loops
	estree.WhileStatement: flat(1),
	estree.ForStatement:   flat(1),
	estree.ForInStatement: flat(2),
	estree.ForOfStatement: flat(2),

	// Implicit call sites
	estree.CallExpression:           flat(1),
	estree.MemberExpression:         flat(1),
	estree.NewExpression:            flat(1),
	estree.ThisExpression:           flat(1),
	estree.TaggedTemplateExpression: flat(5),
	estree.TemplateLiteral:          templateLiteral,

	// Destructuring
	estree.ArrayPattern:  flat(1),
	estree.ObjectPattern: objectPattern,
	estree.RestElement:   restElement,

	// Declarations
	estree.FunctionDeclaration: flat(1),
	estree.ClassDeclaration:    flat(1),
	estree.MethodDefinition:    flat(1),
}

// variableDeclarator counts only declarators that assign a value.
func variableDeclarator(n, _ *estree.Node) int {
	if n.Init != nil {
		return 1
	}
	return 0
}

// ifStatement scores each level of an else-if chain on its own: the chained
// if is the alternate and is scored when it is visited.
func ifStatement(n, _ *estree.Node) int {
	if n.Alternate != nil {
		return 2
	}
	return 1
}

func switchStatement(n, _ *estree.Node) int {
	return 1 + len(n.Cases)
}

func tryStatement(n, _ *estree.Node) int {
	points := 1
	if n.Handler != nil {
		points++
	}
	if n.Finalizer != nil {
		points++
	}
	return points
}

func templateLiteral(n, _ *estree.Node) int {
	return len(n.Expressions)
}

// objectPattern adds a bonus when the pattern ends in a rest entry. An empty
// pattern has no last entry and gets no bonus.
func objectPattern(n, _ *estree.Node) int {
	if last := n.LastProperty(); last != nil && last.Type == estree.RestElement {
		return 2
	}
	return 1
}

// restElement is not counted inside an object pattern; objectPattern already
// charges for it.
func restElement(_, parent *estree.Node) int {
	if parent != nil && parent.Type == estree.ObjectPattern {
		return 0
	}
	return 1
}

// weigh returns the contribution of n.
func weigh(n, parent *estree.Node) int {
	if r, ok := weights[n.Type]; ok {
		return r(n, parent)
	}
	return 0
}
