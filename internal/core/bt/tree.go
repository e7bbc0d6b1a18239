package bt

import (
	"fmt"
	"time"

	"github.com/zeusync/behave/internal/core/observability/log"
)

// Tree owns a root node bound to one context value.
type Tree[C any] struct {
	name     string
	ctx      C
	registry *Registry[C]
	root     Node[C]
	sealed   bool
	logger   log.Log
	observer Observer
}

// New creates a tree with a private registry. Node types may be added with
// RegisterNode until the first SetRoot.
func New[C any](ctx C, opts ...Option) *Tree[C] {
	return newTree(ctx, NewRegistry[C](opts...), opts)
}

// NewShared creates a tree resolving node types from reg. reg is typically
// frozen and shared between trees.
func NewShared[C any](ctx C, reg *Registry[C], opts ...Option) *Tree[C] {
	return newTree(ctx, reg, opts)
}

func newTree[C any](ctx C, reg *Registry[C], opts []Option) *Tree[C] {
	o := applyOptions(opts)
	return &Tree[C]{
		name:     o.name,
		ctx:      ctx,
		registry: reg,
		logger:   o.logger.Named("bt").With(log.String("tree", o.name)),
		observer: o.observer,
	}
}

// RegisterNode adds a node type to the tree's registry.
func (t *Tree[C]) RegisterNode(name string, factory Factory[C]) error {
	if t.sealed {
		return fmt.Errorf("register %q: %w", name, ErrTreeSealed)
	}
	return t.registry.Register(name, factory)
}

// Registry returns the registry the tree resolves types from.
func (t *Tree[C]) Registry() *Registry[C] { return t.registry }

// SetRoot builds desc and installs it as the root. It may be called again to
// rebuild; on failure the previous root is kept.
func (t *Tree[C]) SetRoot(desc *Descriptor) error {
	root, err := Build(desc, t.registry, t.ctx)
	if err != nil {
		t.logger.Error("failed to build tree", log.Error(err))
		return err
	}
	t.root = root
	t.sealed = true
	t.logger.Debug("root installed", log.String("root", root.Name()))
	return nil
}

// SetRootText parses src with p and installs the result as root.
func (t *Tree[C]) SetRootText(p Parser, src []byte) error {
	desc, err := p.Parse(src)
	if err != nil {
		return err
	}
	return t.SetRoot(desc)
}

// Tick evaluates the root once.
func (t *Tree[C]) Tick() (Status, error) {
	if t.root == nil {
		return StatusFailure, ErrNotInitialized
	}
	start := time.Now()
	status := t.root.Tick(t.ctx)
	if t.observer != nil {
		t.observer.ObserveTick(t.name, status, time.Since(start))
	}
	return status, nil
}

func (t *Tree[C]) Name() string  { return t.name }
func (t *Tree[C]) Root() Node[C] { return t.root }
func (t *Tree[C]) Context() C    { return t.ctx }

// Shape returns the structure of the installed root, or nil.
func (t *Tree[C]) Shape() *Descriptor {
	if t.root == nil {
		return nil
	}
	return Shape(t.root)
}
