package bt

import "fmt"

// Reserved type names pre-registered in every Registry.
const (
	TypeSequence = "Sequence"
	TypeSelector = "Selector"
	TypeInverter = "Inverter"
	TypeNoop     = "Noop"
)

type children[C any] struct {
	list []Node[C]
}

func (c *children[C]) AddChild(child Node[C]) { c.list = append(c.list, child) }
func (c *children[C]) Children() []Node[C]    { return c.list }

// Sequence runs children until one fails; success if all succeed; running if a child is running.
type Sequence[C any] struct {
	baseNode
	children[C]
}

func NewSequence[C any](children ...Node[C]) *Sequence[C] {
	s := &Sequence[C]{baseNode: baseNode{name: TypeSequence}}
	s.list = children
	return s
}

func (s *Sequence[C]) Tick(ctx C) Status {
	for _, ch := range s.list {
		switch st := ch.Tick(ctx); st {
		case StatusFailure, StatusRunning:
			return st
		}
	}
	return StatusSuccess
}

// Selector runs children until one succeeds; failure if all fail; running if a child is running.
type Selector[C any] struct {
	baseNode
	children[C]
}

func NewSelector[C any](children ...Node[C]) *Selector[C] {
	s := &Selector[C]{baseNode: baseNode{name: TypeSelector}}
	s.list = children
	return s
}

func (s *Selector[C]) Tick(ctx C) Status {
	for _, ch := range s.list {
		switch st := ch.Tick(ctx); st {
		case StatusSuccess, StatusRunning:
			return st
		}
	}
	return StatusFailure
}

// Inverter swaps Success and Failure of its single child. Running passes through.
type Inverter[C any] struct {
	baseNode
	children[C]
}

func NewInverter[C any](child ...Node[C]) *Inverter[C] {
	inv := &Inverter[C]{baseNode: baseNode{name: TypeInverter}}
	inv.list = child
	return inv
}

func (inv *Inverter[C]) Validate() error {
	if len(inv.list) != 1 {
		return fmt.Errorf("%s takes exactly one child, got %d", TypeInverter, len(inv.list))
	}
	return nil
}

func (inv *Inverter[C]) Tick(ctx C) Status {
	switch inv.list[0].Tick(ctx) {
	case StatusSuccess:
		return StatusFailure
	case StatusFailure:
		return StatusSuccess
	default:
		return StatusRunning
	}
}

func registerBuiltins[C any](factories map[string]Factory[C]) {
	factories[TypeSequence] = func(C) Node[C] { return NewSequence[C]() }
	factories[TypeSelector] = func(C) Node[C] { return NewSelector[C]() }
	factories[TypeInverter] = func(C) Node[C] { return NewInverter[C]() }
	factories[TypeNoop] = func(C) Node[C] {
		return NewAction(TypeNoop, func(C) Status { return StatusSuccess })
	}
}
