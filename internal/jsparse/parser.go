//go:build cgo

package jsparse

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"jscore/internal/estree"
)

// maxNearLen bounds the source excerpt carried by a SyntaxError.
const maxNearLen = 24

// Parser parses source text into ESTree-shaped trees.
//
// A fresh tree-sitter parser is created for every call, so one Parser may be
// shared by concurrent callers.
type Parser struct{}

// NewParser creates a new parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses source and returns the Program root.
// Invalid input fails with *SyntaxError.
func (p *Parser) Parse(ctx context.Context, source []byte, lang Language) (*estree.Node, error) {
	tsLang, err := getLanguage(lang)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(tsLang)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	defer tree.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxErrorAt(root, source, lang)
	}
	if serr := checkEarlyErrors(root, source, lang); serr != nil {
		return nil, serr
	}

	l := &lowerer{source: source}
	return l.lower(root)[0], nil
}

// IsAvailable returns whether parsing is available.
// Returns true when CGO is enabled.
func IsAvailable() bool {
	return true
}

// getLanguage returns the tree-sitter Language for a given language identifier.
func getLanguage(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	default:
		return nil, &UnsupportedLanguageError{Name: string(lang)}
	}
}

// syntaxErrorAt builds a SyntaxError for the first ERROR or MISSING node in
// document order.
func syntaxErrorAt(root *sitter.Node, source []byte, lang Language) *SyntaxError {
	bad := firstErrorNode(root)
	if bad == nil {
		bad = root
	}

	pos := bad.StartPoint()
	serr := &SyntaxError{
		Language: lang,
		Line:     int(pos.Row) + 1,
		Column:   int(pos.Column) + 1,
	}

	if bad.IsMissing() {
		serr.Missing = true
		serr.Near = bad.Type()
		return serr
	}

	near := strings.TrimSpace(bad.Content(source))
	if i := strings.IndexByte(near, '\n'); i >= 0 {
		near = near[:i]
	}
	serr.Near = truncateNear(near, maxNearLen)
	return serr
}

func firstErrorNode(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}
	if !node.HasError() {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if bad := firstErrorNode(node.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}
