// Package sim is a small fixed-step world that hosts one behavior tree
// controlled ship and its projectiles.
package sim

import "github.com/zeusync/behave/internal/core/systems/physics"

// Body is a point mass with a facing. Heading is kept in (-180, 180].
type Body struct {
	Position        physics.Vec2
	Velocity        physics.Vec2
	Heading         float64
	AngularVelocity float64
}

// Integrate advances the body by dt seconds with explicit Euler.
func (b *Body) Integrate(dt float64) {
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	b.Heading = physics.NormalizeAngle(b.Heading + b.AngularVelocity*dt)
}
