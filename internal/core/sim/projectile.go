package sim

import (
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/behave/internal/core/systems/physics"
)

// ProjectileConfig describes what the primary attack spawns.
type ProjectileConfig struct {
	Speed    float64
	Lifetime time.Duration
}

type projectile struct {
	id        string
	body      Body
	remaining time.Duration
}

func newProjectile(cfg ProjectileConfig, origin physics.Vec2, heading float64) *projectile {
	return &projectile{
		id: uuid.NewString(),
		body: Body{
			Position: origin,
			Velocity: physics.FromAngle(heading).Scale(cfg.Speed),
			Heading:  physics.NormalizeAngle(heading),
		},
		remaining: cfg.Lifetime,
	}
}

// advance moves the projectile one step and reports whether it is still alive.
func (p *projectile) advance(step time.Duration) bool {
	p.body.Integrate(step.Seconds())
	p.remaining -= step
	return p.remaining > 0
}

func (p *projectile) state() ProjectileState {
	return ProjectileState{
		ID:        p.id,
		Position:  p.body.Position,
		Velocity:  p.body.Velocity,
		Heading:   p.body.Heading,
		Remaining: p.remaining,
	}
}
