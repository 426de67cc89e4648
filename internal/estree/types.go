// Package estree models ECMAScript syntax trees in the ESTree shape.
package estree

// Type is the discriminant tag of a Node.
//
// ESTree kinds use their ESTree names. Grammar kinds that have no ESTree
// counterpart (JSX, TypeScript annotations, ...) keep the grammar's own tag,
// so the set is open-ended.
type Type string

// Program and statements
const (
	Program             Type = "Program"
	ExpressionStatement Type = "ExpressionStatement"
	BlockStatement      Type = "BlockStatement"
	EmptyStatement      Type = "EmptyStatement"
	DebuggerStatement   Type = "DebuggerStatement"
	WithStatement       Type = "WithStatement"
	ReturnStatement     Type = "ReturnStatement"
	LabeledStatement    Type = "LabeledStatement"
	BreakStatement      Type = "BreakStatement"
	ContinueStatement   Type = "ContinueStatement"
	IfStatement         Type = "IfStatement"
	SwitchStatement     Type = "SwitchStatement"
	SwitchCase          Type = "SwitchCase"
	ThrowStatement      Type = "ThrowStatement"
	TryStatement        Type = "TryStatement"
	CatchClause         Type = "CatchClause"
	WhileStatement      Type = "WhileStatement"
	DoWhileStatement    Type = "DoWhileStatement"
	ForStatement        Type = "ForStatement"
	ForInStatement      Type = "ForInStatement"
	ForOfStatement      Type = "ForOfStatement"
)

// Declarations
const (
	FunctionDeclaration Type = "FunctionDeclaration"
	VariableDeclaration Type = "VariableDeclaration"
	VariableDeclarator  Type = "VariableDeclarator"
	ClassDeclaration    Type = "ClassDeclaration"
	ClassBody           Type = "ClassBody"
	MethodDefinition    Type = "MethodDefinition"
	PropertyDefinition  Type = "PropertyDefinition"
	StaticBlock         Type = "StaticBlock"
	ImportDeclaration   Type = "ImportDeclaration"
	ExportDeclaration   Type = "ExportDeclaration"
)

// Expressions
const (
	Identifier               Type = "Identifier"
	Literal                  Type = "Literal"
	ThisExpression           Type = "ThisExpression"
	Super                    Type = "Super"
	ArrayExpression          Type = "ArrayExpression"
	ObjectExpression         Type = "ObjectExpression"
	Property                 Type = "Property"
	FunctionExpression       Type = "FunctionExpression"
	ArrowFunctionExpression  Type = "ArrowFunctionExpression"
	ClassExpression          Type = "ClassExpression"
	UnaryExpression          Type = "UnaryExpression"
	UpdateExpression         Type = "UpdateExpression"
	BinaryExpression         Type = "BinaryExpression"
	LogicalExpression        Type = "LogicalExpression"
	AssignmentExpression     Type = "AssignmentExpression"
	ConditionalExpression    Type = "ConditionalExpression"
	CallExpression           Type = "CallExpression"
	NewExpression            Type = "NewExpression"
	MemberExpression         Type = "MemberExpression"
	SequenceExpression       Type = "SequenceExpression"
	SpreadElement            Type = "SpreadElement"
	YieldExpression          Type = "YieldExpression"
	AwaitExpression          Type = "AwaitExpression"
	TemplateLiteral          Type = "TemplateLiteral"
	TemplateElement          Type = "TemplateElement"
	TaggedTemplateExpression Type = "TaggedTemplateExpression"
	MetaProperty             Type = "MetaProperty"
	ImportExpression         Type = "ImportExpression"
)

// Patterns
const (
	ObjectPattern     Type = "ObjectPattern"
	ArrayPattern      Type = "ArrayPattern"
	RestElement       Type = "RestElement"
	AssignmentPattern Type = "AssignmentPattern"
)
