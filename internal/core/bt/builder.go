package bt

import "fmt"

// Build instantiates desc against reg, binding every node to ctx.
// Children are built in order and attached before the parent is returned.
// desc is validated first, so a cycle or an empty type name is reported as
// ErrMalformedDescriptor. Nothing is returned on error; the error names the
// offending node by its path from the root, e.g. "Selector[0]/Sequence[1]/Turn".
func Build[C any](desc *Descriptor, reg *Registry[C], ctx C) (Node[C], error) {
	if desc == nil {
		return nil, fmt.Errorf("%w: nil descriptor", ErrMalformedDescriptor)
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return build(desc, reg, ctx, nil)
}

func build[C any](desc *Descriptor, reg *Registry[C], ctx C, path []string) (Node[C], error) {
	if desc == nil {
		return nil, fmt.Errorf("%w: nil node at %s", ErrMalformedDescriptor, joinPath(path))
	}
	here := append(path[:len(path):len(path)], desc.Type)

	factory, ok := reg.Resolve(desc.Type)
	if !ok {
		return nil, fmt.Errorf("%w %q at %s", ErrUnknownNodeType, desc.Type, joinPath(here))
	}
	node := factory(ctx)
	if node == nil {
		return nil, fmt.Errorf("%w: factory for %q returned nil at %s", ErrMalformedDescriptor, desc.Type, joinPath(here))
	}

	if len(desc.Children) == 0 {
		if err := validate(node, here); err != nil {
			return nil, err
		}
		return node, nil
	}

	comp, ok := node.(Composite[C])
	if !ok {
		return nil, fmt.Errorf("%w: leaf %q cannot have children at %s", ErrMalformedDescriptor, desc.Type, joinPath(here))
	}

	for i, chDesc := range desc.Children {
		childPath := append(path[:len(path):len(path)], fmt.Sprintf("%s[%d]", desc.Type, i))
		child, err := build(chDesc, reg, ctx, childPath)
		if err != nil {
			return nil, err
		}
		comp.AddChild(child)
	}
	if err := validate(node, here); err != nil {
		return nil, err
	}
	return node, nil
}

func validate(node any, path []string) error {
	v, ok := node.(validator)
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %v at %s", ErrMalformedDescriptor, err, joinPath(path))
	}
	return nil
}

// Shape returns the structural description of a built tree.
func Shape[C any](node Node[C]) *Descriptor {
	if node == nil {
		return nil
	}
	d := &Descriptor{Type: node.Name()}
	if comp, ok := node.(Composite[C]); ok {
		for _, ch := range comp.Children() {
			d.Children = append(d.Children, Shape(ch))
		}
	}
	return d
}
