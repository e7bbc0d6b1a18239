// Package bt is a data-driven behavior tree engine.
//
// Trees are described structurally (a type name plus ordered children, see
// Descriptor), resolved against a Registry of named node factories and bound
// to a caller-owned context value C. A Tree ticks its root once per call; the
// traversal is depth-first, left to right, and every context mutation made by
// a node is visible to the nodes ticked after it in the same pass.
//
// A Tree is not safe for concurrent use. Exactly one Tick may be in flight per
// tree; the embedding loop guarantees this.
package bt

import "time"

// Status is the result of ticking a node.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusRunning
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusFailure:
		return "Failure"
	case StatusRunning:
		return "Running"
	default:
		return "Invalid"
	}
}

// Node is the executable unit of a tree.
// Implementations keep no state between ticks other than what they write into
// the context.
type Node[C any] interface {
	// Tick evaluates the node once against ctx.
	Tick(ctx C) Status
	// Name is the registered type name of the node.
	Name() string
}

// Composite is a node that owns an ordered list of children.
type Composite[C any] interface {
	Node[C]
	AddChild(child Node[C])
	Children() []Node[C]
}

// validator is implemented by composites with arity constraints. The builder
// calls Validate once all children are attached.
type validator interface {
	Validate() error
}

// Factory constructs a fresh node bound to ctx.
type Factory[C any] func(ctx C) Node[C]

// Observer is notified after every Tree.Tick.
type Observer interface {
	ObserveTick(tree string, status Status, elapsed time.Duration)
}

// Parser turns a textual tree description into a Descriptor.
type Parser interface {
	Parse(src []byte) (*Descriptor, error)
}
