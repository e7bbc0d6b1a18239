package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/zeusync/behave/internal/core/bt"
	"github.com/zeusync/behave/internal/core/control"
	"github.com/zeusync/behave/internal/core/events/bus"
	"github.com/zeusync/behave/internal/core/observability/log"
	"github.com/zeusync/behave/internal/core/ship"
	"github.com/zeusync/behave/internal/core/systems/physics"
)

// Config describes a world.
type Config struct {
	Step       time.Duration
	Ship       ShipConfig
	Projectile ProjectileConfig
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Step <= 0:
		return errors.New("sim: step must be positive")
	case c.Ship.MaxSpeed < 0, c.Ship.Acceleration < 0, c.Ship.Deceleration < 0, c.Ship.RotationPerSecond < 0:
		return errors.New("sim: ship rates must not be negative")
	case c.Ship.PrimaryAttackCooldown < 0:
		return errors.New("sim: primary attack cooldown must not be negative")
	case c.Projectile.Lifetime <= 0:
		return errors.New("sim: projectile lifetime must be positive")
	}
	return nil
}

// World steps one ship and its projectiles at a fixed rate.
// Step and Run must not be called concurrently with each other; Snapshot may
// be called from any goroutine.
type World struct {
	mu sync.RWMutex

	cfg         Config
	ship        *Ship
	tree        *bt.Tree[*ship.Context]
	input       control.Source
	current     control.Input
	projectiles []*projectile

	steps      uint64
	elapsed    time.Duration
	lastStatus bt.Status

	bus    bus.Bus
	logger log.Log
}

type Option func(*worldOptions)

type worldOptions struct {
	logger   log.Log
	bus      bus.Bus
	treeOpts []bt.Option
}

func WithLogger(l log.Log) Option {
	return func(o *worldOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithBus publishes projectile events to b. Handlers run inside Step and
// must not call back into the world.
func WithBus(b bus.Bus) Option {
	return func(o *worldOptions) { o.bus = b }
}

// WithTreeOptions forwards options to the ship's behavior tree.
func WithTreeOptions(opts ...bt.Option) Option {
	return func(o *worldOptions) { o.treeOpts = append(o.treeOpts, opts...) }
}

// NewWorld builds the ship tree from desc using reg and binds it to input.
func NewWorld(cfg Config, reg *bt.Registry[*ship.Context], desc *bt.Descriptor, input control.Source, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if input == nil {
		return nil, errors.New("sim: nil input source")
	}
	o := worldOptions{logger: log.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.bus == nil {
		o.bus = bus.New()
	}

	w := &World{
		cfg:        cfg,
		input:      input,
		bus:        o.bus,
		logger:     o.logger.Named("sim"),
		lastStatus: bt.StatusFailure,
	}
	w.ship = newShip(cfg.Ship, func() time.Duration { return w.elapsed }, w.spawn)

	ctx := ship.NewContext(w.ship, &w.current, cfg.Step)
	treeOpts := append([]bt.Option{bt.WithName("ship"), bt.WithLogger(o.logger)}, o.treeOpts...)
	tree, err := ship.NewTree(ctx, reg, desc, treeOpts...)
	if err != nil {
		return nil, fmt.Errorf("build ship tree: %w", err)
	}
	w.tree = tree
	return w, nil
}

// Step advances the world by one fixed step: refresh input, reset angular
// velocity, tick the tree, integrate the ship and age projectiles.
func (w *World) Step() (bt.Status, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.current = w.input.Snapshot()
	w.ship.body.AngularVelocity = 0

	status, err := w.tree.Tick()
	if err != nil {
		return status, err
	}
	w.lastStatus = status

	dt := w.cfg.Step
	w.ship.body.Integrate(dt.Seconds())

	alive := w.projectiles[:0]
	for _, p := range w.projectiles {
		if p.advance(dt) {
			alive = append(alive, p)
			continue
		}
		w.logger.Debug("projectile expired", log.String("id", p.id))
		w.publish(bus.EventProjectileExpired, p.state())
	}
	for i := len(alive); i < len(w.projectiles); i++ {
		w.projectiles[i] = nil
	}
	w.projectiles = alive

	w.steps++
	w.elapsed += dt
	return status, nil
}

// Run steps the world on a ticker until ctx is done.
func (w *World) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.Step)
	defer ticker.Stop()

	w.logger.Info("simulation started", log.Duration("step", w.cfg.Step))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("simulation stopped", log.Uint64("steps", w.Steps()))
			return nil
		case <-ticker.C:
			if _, err := w.Step(); err != nil {
				return err
			}
		}
	}
}

// RunSteps performs n steps immediately.
func (w *World) RunSteps(n int) error {
	for i := 0; i < n; i++ {
		if _, err := w.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (w *World) Steps() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.steps
}

// Snapshot copies the current world state.
func (w *World) Snapshot() State {
	w.mu.RLock()
	defer w.mu.RUnlock()

	st := State{
		Step:        w.steps,
		Elapsed:     w.elapsed,
		LastStatus:  w.lastStatus.String(),
		Ship:        w.ship.state(),
		Projectiles: make([]ProjectileState, 0, len(w.projectiles)),
	}
	for _, p := range w.projectiles {
		st.Projectiles = append(st.Projectiles, p.state())
	}
	return st
}

// TreeShape describes the installed ship tree.
func (w *World) TreeShape() *bt.Descriptor {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.Shape()
}

// Bus is the bus events are published on.
func (w *World) Bus() bus.Bus { return w.bus }

// spawn runs inside Step with the lock held.
func (w *World) spawn(origin physics.Vec2, heading float64) {
	p := newProjectile(w.cfg.Projectile, origin, heading)
	w.projectiles = append(w.projectiles, p)
	w.logger.Debug("projectile spawned", log.String("id", p.id), log.Float64("heading", heading))
	w.publish(bus.EventProjectileSpawned, p.state())
}

func (w *World) publish(eventType string, data any) {
	if err := w.bus.Publish(bus.NewEvent(eventType, "sim", data)); err != nil {
		w.logger.Warn("event handler failed", log.String("event", eventType), log.Error(err))
	}
}
