package sim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/behave/internal/core/bt"
	"github.com/zeusync/behave/internal/core/control"
	"github.com/zeusync/behave/internal/core/events/bus"
	"github.com/zeusync/behave/internal/core/observability/log"
	"github.com/zeusync/behave/internal/core/ship"
	"github.com/zeusync/behave/internal/core/systems/physics"
)

func testConfig() Config {
	return Config{
		Step: 20 * time.Millisecond,
		Ship: ShipConfig{
			PrimaryAttackCooldown: 100 * time.Millisecond,
			RotationPerSecond:     180,
			Acceleration:          6,
			Deceleration:          3,
			MaxSpeed:              8,
			Emitters:              []physics.Vec2{{X: 1, Y: 0.5}, {X: 1, Y: -0.5}},
		},
		Projectile: ProjectileConfig{Speed: 20, Lifetime: 60 * time.Millisecond},
	}
}

func newTestWorld(t *testing.T, input control.Source, opts ...Option) *World {
	t.Helper()
	reg, err := ship.NewRegistry()
	require.NoError(t, err)
	desc, err := ship.DefaultTree()
	require.NoError(t, err)
	w, err := NewWorld(testConfig(), reg, desc, input, opts...)
	require.NoError(t, err)
	return w
}

func TestBodyIntegrate(t *testing.T) {
	b := Body{Velocity: physics.Vec2{X: 2, Y: -1}, Heading: 170, AngularVelocity: 100}
	b.Integrate(0.5)
	assert.Equal(t, physics.Vec2{X: 1, Y: -0.5}, b.Position)
	assert.InDelta(t, -140, b.Heading, 1e-9)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, testConfig().Validate())

	bad := testConfig()
	bad.Step = 0
	assert.Error(t, bad.Validate())

	bad = testConfig()
	bad.Ship.MaxSpeed = -1
	assert.Error(t, bad.Validate())

	bad = testConfig()
	bad.Projectile.Lifetime = 0
	assert.Error(t, bad.Validate())
}

func TestNewWorldRejectsUnknownNodes(t *testing.T) {
	reg, err := ship.NewRegistry()
	require.NoError(t, err)
	_, err = NewWorld(testConfig(), reg, bt.D("Warp"), control.Static{})
	assert.ErrorIs(t, err, bt.ErrUnknownNodeType)

	_, err = NewWorld(testConfig(), reg, bt.D(bt.TypeNoop), nil)
	assert.Error(t, err)
}

func TestIdleWorldStaysPut(t *testing.T) {
	w := newTestWorld(t, control.Static{})
	require.NoError(t, w.RunSteps(10))

	st := w.Snapshot()
	assert.Equal(t, uint64(10), st.Step)
	assert.Equal(t, 200*time.Millisecond, st.Elapsed)
	assert.Equal(t, "Success", st.LastStatus)
	assert.Equal(t, physics.Vec2{}, st.Ship.Position)
	assert.Equal(t, 0.0, st.Ship.Heading)
	assert.Empty(t, st.Projectiles)
	assert.True(t, st.Ship.PrimaryRecharged)
}

func TestThrustIsCappedAndDecays(t *testing.T) {
	latest := control.NewLatest()
	latest.Set(control.Input{Accelerate: true})
	w := newTestWorld(t, latest)

	// 6 u/s^2 needs 1.33 s to reach 8 u/s
	require.NoError(t, w.RunSteps(100))
	st := w.Snapshot()
	assert.InDelta(t, 8, st.Ship.Velocity.Len(), 1e-9)
	assert.InDelta(t, 0, st.Ship.Velocity.Angle(), 1e-9)
	assert.Greater(t, st.Ship.Position.X, 0.0)

	latest.Set(control.Input{})
	// 3 u/s^2 stops 8 u/s within 2.67 s
	require.NoError(t, w.RunSteps(150))
	assert.Equal(t, physics.Vec2{}, w.Snapshot().Ship.Velocity)
}

func TestTurnsTowardStick(t *testing.T) {
	w := newTestWorld(t, control.Static{Stick: physics.Vec2{Y: 1}})

	_, err := w.Step()
	require.NoError(t, err)
	st := w.Snapshot()
	assert.InDelta(t, 3.6, st.Ship.Heading, 1e-9)
	assert.InDelta(t, 180, st.Ship.AngularVelocity, 1e-9)

	// 90 degrees at 3.6 per step
	require.NoError(t, w.RunSteps(30))
	st = w.Snapshot()
	assert.InDelta(t, 90, st.Ship.Heading, 1e-6)
	assert.InDelta(t, 0, st.Ship.AngularVelocity, 1e-6)
}

func TestPrimaryAttackCooldownAndProjectiles(t *testing.T) {
	events := bus.New()
	var spawned, expired int
	_, err := events.Subscribe(bus.EventProjectileSpawned, func(e bus.Event) error {
		spawned++
		p := e.Data().(ProjectileState)
		assert.NotEmpty(t, p.ID)
		return nil
	})
	require.NoError(t, err)
	_, err = events.Subscribe(bus.EventProjectileExpired, func(bus.Event) error {
		expired++
		return nil
	})
	require.NoError(t, err)

	w := newTestWorld(t, control.Static{Primary: true}, WithBus(events))
	assert.Same(t, events, w.Bus())

	_, err = w.Step()
	require.NoError(t, err)
	st := w.Snapshot()
	assert.Equal(t, 1, st.Ship.Attacks)
	require.Len(t, st.Projectiles, 2)
	assert.False(t, st.Ship.PrimaryRecharged)
	// spawned at the emitters, then moved one step at 20 u/s along heading 0
	assert.InDelta(t, 1.4, st.Projectiles[0].Position.X, 1e-9)
	assert.InDelta(t, 0.5, st.Projectiles[0].Position.Y, 1e-9)
	assert.InDelta(t, -0.5, st.Projectiles[1].Position.Y, 1e-9)

	// cooldown of 100ms is five steps
	require.NoError(t, w.RunSteps(4))
	assert.Equal(t, 1, w.Snapshot().Ship.Attacks)
	_, err = w.Step()
	require.NoError(t, err)
	assert.Equal(t, 2, w.Snapshot().Ship.Attacks)

	assert.Equal(t, 4, spawned)
	// first volley lives three steps
	assert.Equal(t, 2, expired)
	assert.Len(t, w.Snapshot().Projectiles, 2)
}

// recordingLog keeps debug messages in order.
type recordingLog struct {
	debug []string
}

func (r *recordingLog) Debug(msg string, _ ...log.Field) { r.debug = append(r.debug, msg) }
func (r *recordingLog) Info(string, ...log.Field)        {}
func (r *recordingLog) Warn(string, ...log.Field)        {}
func (r *recordingLog) Error(string, ...log.Field)       {}
func (r *recordingLog) With(...log.Field) log.Log        { return r }
func (r *recordingLog) Named(string) log.Log             { return r }
func (r *recordingLog) GetLevel() log.Level              { return log.LevelDebug }

func (r *recordingLog) count(msg string) int {
	n := 0
	for _, m := range r.debug {
		if m == msg {
			n++
		}
	}
	return n
}

func TestProjectileLifecycleIsLogged(t *testing.T) {
	rec := &recordingLog{}
	w := newTestWorld(t, control.Static{Primary: true}, WithLogger(rec))

	// one volley of two, alive for three steps
	require.NoError(t, w.RunSteps(3))
	assert.Equal(t, 2, rec.count("projectile spawned"))
	assert.Equal(t, 2, rec.count("projectile expired"))
}

func TestProjectileFollowsHeading(t *testing.T) {
	p := newProjectile(ProjectileConfig{Speed: 10, Lifetime: 30 * time.Millisecond}, physics.Vec2{}, 450)
	assert.InDelta(t, 90, p.body.Heading, 1e-9)
	assert.True(t, p.advance(20*time.Millisecond))
	assert.InDelta(t, 0.2, p.body.Position.Y, 1e-9)
	assert.False(t, p.advance(20*time.Millisecond))
}

func TestRunStopsOnCancel(t *testing.T) {
	w := newTestWorld(t, control.Static{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	assert.Eventually(t, func() bool { return w.Steps() >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestTreeShapeMatchesDescriptor(t *testing.T) {
	w := newTestWorld(t, control.Static{})
	desc, err := ship.DefaultTree()
	require.NoError(t, err)
	assert.True(t, desc.Equal(w.TreeShape()))
}
