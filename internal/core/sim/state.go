package sim

import (
	"time"

	"github.com/zeusync/behave/internal/core/systems/physics"
)

// State is a point-in-time copy of the world, safe to serialize.
type State struct {
	Step        uint64            `json:"step"`
	Elapsed     time.Duration     `json:"elapsed"`
	LastStatus  string            `json:"last_status"`
	Ship        ShipState         `json:"ship"`
	Projectiles []ProjectileState `json:"projectiles"`
}

type ShipState struct {
	Position         physics.Vec2 `json:"position"`
	Velocity         physics.Vec2 `json:"velocity"`
	Heading          float64      `json:"heading"`
	AngularVelocity  float64      `json:"angular_velocity"`
	PrimaryRecharged bool         `json:"primary_recharged"`
	Attacks          int          `json:"attacks"`
}

type ProjectileState struct {
	ID        string        `json:"id"`
	Position  physics.Vec2  `json:"position"`
	Velocity  physics.Vec2  `json:"velocity"`
	Heading   float64       `json:"heading"`
	Remaining time.Duration `json:"remaining"`
}
