//go:build !cgo

package jsparse

import (
	"context"

	"jscore/internal/estree"
)

// Parser parses source text into ESTree-shaped trees.
// This is a stub implementation for non-CGO builds.
type Parser struct{}

// NewParser creates a new parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse always fails with ErrNoCGO.
func (p *Parser) Parse(ctx context.Context, source []byte, lang Language) (*estree.Node, error) {
	return nil, ErrNoCGO
}

// IsAvailable returns whether parsing is available.
// Returns false when CGO is disabled.
func IsAvailable() bool {
	return false
}
