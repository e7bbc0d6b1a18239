package ship

import (
	"time"

	"github.com/zeusync/behave/internal/core/systems/physics"
)

// Context is the state shared by all nodes of one ship's tree.
// RemainingTurn is scratch space written by SetupTurn and read by the turn
// leaves later in the same tick.
type Context struct {
	ship          Ship
	control       Control
	dt            float64
	remainingTurn float64
}

// NewContext binds a ship and its control source with a fixed step.
// A nil capability is a programming error.
func NewContext(s Ship, c Control, step time.Duration) *Context {
	if s == nil || c == nil {
		panic("ship: NewContext requires a ship and a control")
	}
	return &Context{ship: s, control: c, dt: step.Seconds()}
}

func (c *Context) Ship() Ship       { return c.ship }
func (c *Context) Control() Control { return c.control }

// FixedDelta is the simulation step in seconds.
func (c *Context) FixedDelta() float64 { return c.dt }

func (c *Context) RemainingTurn() float64 { return c.remainingTurn }

func (c *Context) SetRemainingTurn(deg float64) { c.remainingTurn = deg }

func (c *Context) SetAngularVelocity(degPerSec float64) { c.ship.SetAngularVelocity(degPerSec) }

func (c *Context) SetVelocity(v physics.Vec2) { c.ship.SetVelocity(v) }

func (c *Context) PerformPrimaryAttack() { c.ship.PerformPrimaryAttack() }
