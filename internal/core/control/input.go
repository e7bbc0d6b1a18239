// Package control carries player input into the simulation. Input arrives on
// arbitrary goroutines and is read once per step as an immutable snapshot.
package control

import (
	"sync/atomic"

	"github.com/zeusync/behave/internal/core/systems/physics"
)

// Input is one snapshot of the player's controls. It implements ship.Control.
type Input struct {
	Stick      physics.Vec2 `json:"stick"`
	Primary    bool         `json:"primary"`
	Secondary  bool         `json:"secondary"`
	Accelerate bool         `json:"accelerate"`
}

func (i Input) Direction() physics.Vec2      { return i.Stick }
func (i Input) PrimaryAttackPressed() bool   { return i.Primary }
func (i Input) SecondaryAttackPressed() bool { return i.Secondary }
func (i Input) AcceleratePressed() bool      { return i.Accelerate }

// Source yields the input to use for the next step.
type Source interface {
	Snapshot() Input
}

// Latest holds the most recently received input.
type Latest struct {
	v atomic.Pointer[Input]
}

func NewLatest() *Latest { return &Latest{} }

func (l *Latest) Set(in Input) { l.v.Store(&in) }

// Snapshot returns the last input set, or the zero Input.
func (l *Latest) Snapshot() Input {
	if p := l.v.Load(); p != nil {
		return *p
	}
	return Input{}
}

// Static always yields the same input.
type Static Input

func (s Static) Snapshot() Input { return Input(s) }

// SourceFunc adapts a function to Source.
type SourceFunc func() Input

func (f SourceFunc) Snapshot() Input { return f() }
