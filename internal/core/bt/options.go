package bt

import "github.com/zeusync/behave/internal/core/observability/log"

type options struct {
	name     string
	logger   log.Log
	observer Observer
	strict   bool
}

// Option configures a Registry or a Tree.
type Option func(*options)

// WithName labels a tree in logs and observer callbacks.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

func WithLogger(l log.Log) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithStrictRegistration makes duplicate registrations fail with ErrDuplicateNodeType.
func WithStrictRegistration() Option {
	return func(o *options) { o.strict = true }
}

func applyOptions(opts []Option) options {
	o := options{name: "tree", logger: log.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
