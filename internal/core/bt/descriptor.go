package bt

import (
	"fmt"
	"strings"
)

// Descriptor is the structural description of a tree: a node type name and
// its ordered children. It is the common output of every text format.
type Descriptor struct {
	Type     string        `json:"type" yaml:"type"`
	Children []*Descriptor `json:"children,omitempty" yaml:"children,omitempty"`
}

// D is shorthand for building descriptors in code.
func D(typ string, children ...*Descriptor) *Descriptor {
	return &Descriptor{Type: typ, Children: children}
}

// Validate checks that every node has a non-empty type, no nil children, and
// that no node is its own ancestor.
func (d *Descriptor) Validate() error {
	return d.validate(nil, make(map[*Descriptor]bool))
}

func (d *Descriptor) validate(path []string, onPath map[*Descriptor]bool) error {
	if d == nil {
		return fmt.Errorf("%w: nil node at %s", ErrMalformedDescriptor, joinPath(path))
	}
	if strings.TrimSpace(d.Type) == "" {
		return fmt.Errorf("%w: empty node type at %s", ErrMalformedDescriptor, joinPath(path))
	}
	if onPath[d] {
		return fmt.Errorf("%w: cycle through %q at %s", ErrMalformedDescriptor, d.Type, joinPath(path))
	}
	onPath[d] = true
	defer delete(onPath, d)

	for i, ch := range d.Children {
		childPath := append(path[:len(path):len(path)], fmt.Sprintf("%s[%d]", d.Type, i))
		if err := ch.validate(childPath, onPath); err != nil {
			return err
		}
	}
	return nil
}

// Equal reports structural equality.
func (d *Descriptor) Equal(other *Descriptor) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.Type != other.Type || len(d.Children) != len(other.Children) {
		return false
	}
	for i := range d.Children {
		if !d.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// String renders the descriptor in the indented text form.
func (d *Descriptor) String() string {
	var sb strings.Builder
	d.write(&sb, 0)
	return sb.String()
}

func (d *Descriptor) write(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(d.Type)
	sb.WriteByte('\n')
	for _, ch := range d.Children {
		ch.write(sb, depth+1)
	}
}

func joinPath(path []string) string {
	if len(path) == 0 {
		return "root"
	}
	return strings.Join(path, "/")
}
