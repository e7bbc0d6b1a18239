package loader

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/zeusync/behave/internal/core/bt"
)

// HCL reads nested node blocks:
//
//	node "Selector" {
//	  node "TestTurnInput" {}
//	  node "Noop" {}
//	}
type HCL struct{}

func (HCL) Name() string         { return "hcl" }
func (HCL) Extensions() []string { return []string{".hcl"} }

type hclFile struct {
	Nodes []*hclNode `hcl:"node,block"`
}

type hclNode struct {
	Type     string     `hcl:"type,label"`
	Children []*hclNode `hcl:"node,block"`
}

func (HCL) Parse(src []byte) (*bt.Descriptor, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, "tree.hcl")
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse HCL: %w", bt.ErrMalformedDescriptor, diags)
	}

	var root hclFile
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode HCL: %w", bt.ErrMalformedDescriptor, diags)
	}
	switch len(root.Nodes) {
	case 0:
		return nil, malformed("empty tree")
	case 1:
	default:
		return nil, malformed("hcl: expected one root node block, got %d", len(root.Nodes))
	}

	desc := root.Nodes[0].descriptor()
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return desc, nil
}

func (n *hclNode) descriptor() *bt.Descriptor {
	d := &bt.Descriptor{Type: n.Type}
	for _, ch := range n.Children {
		d.Children = append(d.Children, ch.descriptor())
	}
	return d
}
