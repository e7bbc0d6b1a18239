package bus

import "time"

// Bus is a synchronous in-process pub/sub bus keyed by event type.
//
// Publish runs handlers in the caller goroutine in subscription order and
// returns their errors joined. Handlers must be quick; the simulation loop
// publishes from inside a tick. All methods are safe for concurrent use.
type Bus interface {
	Publish(event Event) error
	// Subscribe registers handler for eventType and returns a handle to cancel it.
	Subscribe(eventType string, handler Handler) (Subscription, error)
	// Unsubscribe cancels sub. A nil sub is ignored.
	Unsubscribe(sub Subscription) error
	// Subscribers counts active handlers for eventType.
	Subscribers(eventType string) int
}

// Event is an immutable message carried by the bus.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
}

type Handler func(event Event) error

type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	// Cancel removes the handler. Repeated calls are no-ops.
	Cancel() error
}

// Event types published by the simulation.
const (
	EventProjectileSpawned = "projectile.spawned"
	EventProjectileExpired = "projectile.expired"
)
