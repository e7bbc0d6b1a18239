package ship

import (
	"math"

	"github.com/zeusync/behave/internal/core/bt"
	"github.com/zeusync/behave/internal/core/systems/physics"
)

// Leaf type names as they appear in tree files.
const (
	NodeTestPrimaryAttackTrigger   = "TestPrimaryAttackTrigger"
	NodeTestSecondaryAttackTrigger = "TestSecondaryAttackTrigger"
	NodeTestPrimaryAttackTimer     = "TestPrimaryAttackTimer"
	NodePrimaryAttack              = "PrimaryAttack"
	NodeTestTurnInput              = "TestTurnInput"
	NodeSetupTurn                  = "SetupTurn"
	NodeTestTurnDirection          = "TestTurnDirection"
	NodeTurn                       = "Turn"
	NodeTestAccelerationInput      = "TestAccelerationInput"
	NodeAccelerate                 = "Accelerate"
	NodeDecelerate                 = "Decelerate"
)

// Register adds the ship leaves to reg.
func Register(reg *bt.Registry[*Context]) error {
	conditions := []struct {
		name string
		fn   func(*Context) bool
	}{
		{NodeTestPrimaryAttackTrigger, primaryTriggered},
		{NodeTestSecondaryAttackTrigger, secondaryTriggered},
		{NodeTestPrimaryAttackTimer, primaryRecharged},
		{NodeTestTurnInput, hasTurnInput},
		{NodeTestTurnDirection, hasTurnRemaining},
		{NodeTestAccelerationInput, accelerateRequested},
	}
	for _, c := range conditions {
		if err := reg.RegisterCondition(c.name, c.fn); err != nil {
			return err
		}
	}

	actions := []struct {
		name string
		fn   func(*Context)
	}{
		{NodePrimaryAttack, primaryAttack},
		{NodeSetupTurn, setupTurn},
		{NodeTurn, turn},
		{NodeAccelerate, accelerate},
		{NodeDecelerate, decelerate},
	}
	for _, a := range actions {
		fn := a.fn
		if err := reg.RegisterAction(a.name, func(c *Context) bt.Status {
			fn(c)
			return bt.StatusSuccess
		}); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a frozen registry holding the built-ins and the ship leaves.
func NewRegistry(opts ...bt.Option) (*bt.Registry[*Context], error) {
	reg := bt.NewRegistry[*Context](opts...)
	if err := Register(reg); err != nil {
		return nil, err
	}
	reg.Freeze()
	return reg, nil
}

func primaryTriggered(c *Context) bool { return c.Control().PrimaryAttackPressed() }

func secondaryTriggered(c *Context) bool { return c.Control().SecondaryAttackPressed() }

func primaryRecharged(c *Context) bool { return c.Ship().PrimaryAttackRecharged() }

func primaryAttack(c *Context) { c.PerformPrimaryAttack() }

// hasTurnInput succeeds when the stick is pushed.
func hasTurnInput(c *Context) bool {
	return !physics.NearZero(c.Control().Direction().Len())
}

// setupTurn stores the shortest signed angle from the heading to the stick direction.
func setupTurn(c *Context) {
	want := c.Control().Direction().Normalized().Angle()
	c.SetRemainingTurn(physics.NormalizeAngle(want - c.Ship().Heading()))
}

func hasTurnRemaining(c *Context) bool {
	return !physics.NearZero(c.RemainingTurn())
}

// turn rotates toward the remaining turn at up to the ship's max rate,
// slowing down so the last step lands exactly on target.
func turn(c *Context) {
	maxRate := c.Ship().MaxRotation()
	perStep := maxRate * c.FixedDelta()
	if perStep <= 0 {
		c.SetAngularVelocity(0)
		return
	}
	rem := c.RemainingTurn()
	rate := physics.Clamp01(math.Abs(rem) / perStep)
	c.SetAngularVelocity(rate * maxRate * physics.Sign(rem))
}

func accelerateRequested(c *Context) bool { return c.Control().AcceleratePressed() }

// accelerate pushes along the heading and caps the speed.
func accelerate(c *Context) {
	s := c.Ship()
	v := s.Velocity().Add(physics.FromAngle(s.Heading()).Scale(s.Acceleration() * c.FixedDelta()))
	if v.Len() > s.MaxSpeed() {
		v = v.Normalized().Scale(s.MaxSpeed())
	}
	c.SetVelocity(v)
}

// decelerate bleeds speed while keeping direction, stopping at exactly zero.
func decelerate(c *Context) {
	s := c.Ship()
	v := s.Velocity()
	speed := v.Len()
	if physics.NearZero(speed) {
		return
	}
	speed = math.Max(0, speed-s.Deceleration()*c.FixedDelta())
	if speed == 0 {
		c.SetVelocity(physics.Vec2{})
		return
	}
	c.SetVelocity(v.Normalized().Scale(speed))
}
