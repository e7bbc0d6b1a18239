package bt

import (
	"fmt"
	"sort"
	"sync"

	"github.com/zeusync/behave/internal/core/observability/log"
)

// Registry maps node type names to factories.
// Sequence, Selector, Inverter and Noop are always present.
type Registry[C any] struct {
	mu        sync.RWMutex
	factories map[string]Factory[C]
	frozen    bool
	strict    bool
	logger    log.Log
}

func NewRegistry[C any](opts ...Option) *Registry[C] {
	o := applyOptions(opts)
	r := &Registry[C]{
		factories: make(map[string]Factory[C]),
		strict:    o.strict,
		logger:    o.logger.Named("bt.registry"),
	}
	registerBuiltins(r.factories)
	return r
}

// Register binds name to factory. Re-registering a name replaces the previous
// factory and logs a warning, unless the registry was created with
// WithStrictRegistration, in which case ErrDuplicateNodeType is returned.
func (r *Registry[C]) Register(name string, factory Factory[C]) error {
	if name == "" {
		return fmt.Errorf("register: empty node type name")
	}
	if factory == nil {
		return fmt.Errorf("register %q: nil factory", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("register %q: %w", name, ErrRegistryFrozen)
	}
	if _, exists := r.factories[name]; exists {
		if r.strict {
			return fmt.Errorf("register %q: %w", name, ErrDuplicateNodeType)
		}
		r.logger.Warn("node type re-registered, replacing factory", log.String("type", name))
	}
	r.factories[name] = factory
	return nil
}

// RegisterAction registers a leaf that runs fn on every tick.
func (r *Registry[C]) RegisterAction(name string, fn func(ctx C) Status) error {
	return r.Register(name, func(C) Node[C] { return NewAction(name, fn) })
}

// RegisterCondition registers a leaf that reports Success when fn returns true.
func (r *Registry[C]) RegisterCondition(name string, fn func(ctx C) bool) error {
	return r.Register(name, func(C) Node[C] { return NewCondition(name, fn) })
}

// Resolve returns the factory for name.
func (r *Registry[C]) Resolve(name string) (Factory[C], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// Types lists registered type names in lexical order.
func (r *Registry[C]) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Freeze rejects all further registrations. A frozen registry can be shared
// read-only by many trees.
func (r *Registry[C]) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

func (r *Registry[C]) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}
