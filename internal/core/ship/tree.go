package ship

import (
	_ "embed"

	"github.com/zeusync/behave/internal/core/bt"
	"github.com/zeusync/behave/internal/core/loader"
)

//go:embed trees/ship.bt
var defaultTree []byte

// DefaultTreeSource is the built-in controller in text notation.
func DefaultTreeSource() []byte {
	out := make([]byte, len(defaultTree))
	copy(out, defaultTree)
	return out
}

// DefaultTree parses the built-in controller.
func DefaultTree() (*bt.Descriptor, error) {
	return loader.Text{}.Parse(defaultTree)
}

// NewTree builds a ship tree from desc against a frozen shared registry.
func NewTree(ctx *Context, reg *bt.Registry[*Context], desc *bt.Descriptor, opts ...bt.Option) (*bt.Tree[*Context], error) {
	tree := bt.NewShared(ctx, reg, opts...)
	if err := tree.SetRoot(desc); err != nil {
		return nil, err
	}
	return tree, nil
}
