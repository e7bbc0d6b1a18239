package bt

// baseNode implements common Name storage for nodes
type baseNode struct{ name string }

func (b baseNode) Name() string { return b.name }

// Action wraps an effect function as a leaf node.
type Action[C any] struct {
	baseNode
	fn func(ctx C) Status
}

func NewAction[C any](name string, fn func(ctx C) Status) *Action[C] {
	return &Action[C]{baseNode: baseNode{name: name}, fn: fn}
}

func (a *Action[C]) Tick(ctx C) Status { return a.fn(ctx) }

// Condition wraps a predicate as a leaf node: true is Success, false is Failure.
type Condition[C any] struct {
	baseNode
	fn func(ctx C) bool
}

func NewCondition[C any](name string, fn func(ctx C) bool) *Condition[C] {
	return &Condition[C]{baseNode: baseNode{name: name}, fn: fn}
}

func (c *Condition[C]) Tick(ctx C) Status {
	if c.fn(ctx) {
		return StatusSuccess
	}
	return StatusFailure
}
