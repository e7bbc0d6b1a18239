// Package ship holds the behavior tree leaves that steer a ship: attack
// gating, turning toward the stick direction, acceleration and drift
// deceleration. The leaves act only through Context.
package ship

import "github.com/zeusync/behave/internal/core/systems/physics"

// Control is the player's input for one step.
type Control interface {
	Direction() physics.Vec2
	PrimaryAttackPressed() bool
	SecondaryAttackPressed() bool
	AcceleratePressed() bool
}

// Ship is the body the tree steers. Angles are in degrees, rates per second.
type Ship interface {
	Heading() float64
	Velocity() physics.Vec2
	PrimaryAttackRecharged() bool
	MaxRotation() float64
	Acceleration() float64
	Deceleration() float64
	MaxSpeed() float64

	SetAngularVelocity(degPerSec float64)
	SetVelocity(v physics.Vec2)
	// PerformPrimaryAttack spawns projectiles at the emitters and restarts the cooldown.
	PerformPrimaryAttack()
}
