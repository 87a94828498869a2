// Package parser wraps the tree-sitter Python grammar binding used by
// internal/langparser's PythonAdapter.
package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Parser provides Python code parsing via tree-sitter.
type Parser struct {
	parser *sitter.Parser
}

// New creates a new Parser instance with the Python grammar loaded.
func New() *Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return &Parser{parser: parser}
}

// ParseResult holds the parsed tree-sitter output for one source file.
type ParseResult struct {
	Tree     *sitter.Tree
	RootNode *sitter.Node
}

// Parse parses Python source code and returns its root node.
func (p *Parser) Parse(ctx context.Context, source []byte) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	return &ParseResult{Tree: tree, RootNode: tree.RootNode()}, nil
}
