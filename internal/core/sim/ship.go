package sim

import (
	"time"

	"github.com/zeusync/behave/internal/core/systems/physics"
)

// ShipConfig holds the tunables of a ship.
type ShipConfig struct {
	PrimaryAttackCooldown time.Duration
	RotationPerSecond     float64
	Acceleration          float64
	Deceleration          float64
	MaxSpeed              float64
	// Emitters are projectile spawn points in ship-local coordinates, +X forward.
	Emitters []physics.Vec2
}

// Ship implements ship.Ship on top of a Body. It is owned by a World and
// only touched from the world's step.
type Ship struct {
	body Body
	cfg  ShipConfig

	now        func() time.Duration
	fire       func(origin physics.Vec2, heading float64)
	lastAttack time.Duration
	attacked   bool
	attacks    int
}

func newShip(cfg ShipConfig, now func() time.Duration, fire func(physics.Vec2, float64)) *Ship {
	return &Ship{cfg: cfg, now: now, fire: fire}
}

func (s *Ship) Heading() float64       { return s.body.Heading }
func (s *Ship) Velocity() physics.Vec2 { return s.body.Velocity }
func (s *Ship) MaxRotation() float64   { return s.cfg.RotationPerSecond }
func (s *Ship) Acceleration() float64  { return s.cfg.Acceleration }
func (s *Ship) Deceleration() float64  { return s.cfg.Deceleration }
func (s *Ship) MaxSpeed() float64      { return s.cfg.MaxSpeed }

// PrimaryAttackRecharged reports whether the cooldown has elapsed since the
// last attack. A ship that never attacked is ready.
func (s *Ship) PrimaryAttackRecharged() bool {
	return !s.attacked || s.now()-s.lastAttack >= s.cfg.PrimaryAttackCooldown
}

func (s *Ship) SetAngularVelocity(degPerSec float64) { s.body.AngularVelocity = degPerSec }

func (s *Ship) SetVelocity(v physics.Vec2) { s.body.Velocity = v }

// PerformPrimaryAttack fires one projectile from every emitter along the
// current heading and restarts the cooldown.
func (s *Ship) PerformPrimaryAttack() {
	for _, e := range s.cfg.Emitters {
		origin := s.body.Position.Add(e.Rotate(s.body.Heading))
		s.fire(origin, s.body.Heading)
	}
	s.lastAttack = s.now()
	s.attacked = true
	s.attacks++
}

func (s *Ship) state() ShipState {
	return ShipState{
		Position:         s.body.Position,
		Velocity:         s.body.Velocity,
		Heading:          s.body.Heading,
		AngularVelocity:  s.body.AngularVelocity,
		PrimaryRecharged: s.PrimaryAttackRecharged(),
		Attacks:          s.attacks,
	}
}
