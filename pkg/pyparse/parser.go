// Package pyparse turns Python source text into the pyast tree model using
// the tree-sitter Python grammar. The metric engines never depend on this
// package; it exists so callers can start from raw source instead of an
// already-parsed tree.
package pyparse

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexaandru/go-sitter-forest/python"
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/pyfang/pkg/pyast"
)

// Sentinel errors for parser operations.
var (
	errNoRootNode = errors.New("pyparse: no root node")
	errPoolType   = errors.New("pyparse: unexpected pool element type")
)

//nolint:gochecknoglobals // Shared grammar handle and parser pool.
var (
	language = sitter.NewLanguage(python.GetLanguage())

	parserPool = sync.Pool{
		New: func() any {
			tsParser := sitter.NewParser()
			tsParser.SetLanguage(language)

			return tsParser
		},
	}
)

// Parse parses Python source and returns the root of the converted tree.
func Parse(ctx context.Context, source []byte) (*pyast.Node, error) {
	tsParser, ok := parserPool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}

	defer parserPool.Put(tsParser)

	tree, err := tsParser.ParseString(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("pyparse: parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, errNoRootNode
	}

	conv := &converter{source: source}

	return conv.convert(root), nil
}
