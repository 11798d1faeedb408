package halstead

import (
	"context"

	"github.com/Sumatoshi-tech/pyfang/pkg/pyparse"
)

// FromSource parses Python source text with the external parser and runs a
// Visitor over the resulting tree.
func FromSource(ctx context.Context, source []byte, opts ...Option) (*Visitor, error) {
	root, err := pyparse.Parse(ctx, source)
	if err != nil {
		return nil, err
	}

	return FromTree(root, opts...)
}
