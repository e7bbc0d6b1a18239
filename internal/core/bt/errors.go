package bt

import "errors"

var (
	// ErrUnknownNodeType is returned when a descriptor names a type that is not registered.
	ErrUnknownNodeType = errors.New("unknown node type")
	// ErrMalformedDescriptor is returned for structurally invalid tree input.
	ErrMalformedDescriptor = errors.New("malformed tree descriptor")
	// ErrNotInitialized is returned by Tick when no root has been installed.
	ErrNotInitialized = errors.New("behavior tree has no root")
	// ErrDuplicateNodeType is returned by a strict registry on re-registration.
	ErrDuplicateNodeType = errors.New("node type already registered")
	// ErrRegistryFrozen is returned when registering into a frozen registry.
	ErrRegistryFrozen = errors.New("registry is frozen")
	// ErrTreeSealed is returned by RegisterNode once a root has been set.
	ErrTreeSealed = errors.New("node registration after SetRoot")
)
