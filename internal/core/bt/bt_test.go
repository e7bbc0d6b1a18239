package bt

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probe struct {
	calls []string
}

// stub registers a leaf that records its name and returns status.
func stub(t *testing.T, reg *Registry[*probe], name string, status Status) {
	t.Helper()
	require.NoError(t, reg.RegisterAction(name, func(p *probe) Status {
		p.calls = append(p.calls, name)
		return status
	}))
}

func TestSequenceStopsAtFirstFailure(t *testing.T) {
	reg := NewRegistry[*probe]()
	stub(t, reg, "S1", StatusSuccess)
	stub(t, reg, "S2", StatusSuccess)
	stub(t, reg, "F", StatusFailure)
	stub(t, reg, "S3", StatusSuccess)

	p := &probe{}
	root, err := Build(D(TypeSequence, D("S1"), D("S2"), D("F"), D("S3")), reg, p)
	require.NoError(t, err)

	assert.Equal(t, StatusFailure, root.Tick(p))
	assert.Equal(t, []string{"S1", "S2", "F"}, p.calls)
}

func TestSelectorStopsAtFirstSuccess(t *testing.T) {
	reg := NewRegistry[*probe]()
	stub(t, reg, "F1", StatusFailure)
	stub(t, reg, "F2", StatusFailure)
	stub(t, reg, "S", StatusSuccess)
	stub(t, reg, "F3", StatusFailure)

	p := &probe{}
	root, err := Build(D(TypeSelector, D("F1"), D("F2"), D("S"), D("F3")), reg, p)
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, root.Tick(p))
	assert.Equal(t, []string{"F1", "F2", "S"}, p.calls)
}

func TestRunningShortCircuits(t *testing.T) {
	reg := NewRegistry[*probe]()
	stub(t, reg, "R", StatusRunning)
	stub(t, reg, "After", StatusSuccess)

	p := &probe{}
	seq, err := Build(D(TypeSequence, D("R"), D("After")), reg, p)
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, seq.Tick(p))

	sel, err := Build(D(TypeSelector, D("R"), D("After")), reg, p)
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, sel.Tick(p))

	assert.Equal(t, []string{"R", "R"}, p.calls)
}

func TestEmptyComposites(t *testing.T) {
	p := &probe{}
	assert.Equal(t, StatusSuccess, NewSequence[*probe]().Tick(p))
	assert.Equal(t, StatusFailure, NewSelector[*probe]().Tick(p))
}

func TestInverter(t *testing.T) {
	reg := NewRegistry[*probe]()
	stub(t, reg, "S", StatusSuccess)
	stub(t, reg, "F", StatusFailure)
	stub(t, reg, "R", StatusRunning)

	p := &probe{}
	for child, want := range map[string]Status{
		"S": StatusFailure,
		"F": StatusSuccess,
		"R": StatusRunning,
	} {
		n, err := Build(D(TypeInverter, D(child)), reg, p)
		require.NoError(t, err)
		assert.Equal(t, want, n.Tick(p), child)
	}

	n, err := Build(D(TypeInverter), reg, p)
	assert.ErrorIs(t, err, ErrMalformedDescriptor)
	assert.Nil(t, n)
	_, err = Build(D(TypeInverter, D("S"), D("F")), reg, p)
	assert.ErrorIs(t, err, ErrMalformedDescriptor)
}

func TestConditionLeaf(t *testing.T) {
	reg := NewRegistry[*probe]()
	require.NoError(t, reg.RegisterCondition("Always", func(*probe) bool { return true }))
	require.NoError(t, reg.RegisterCondition("Never", func(*probe) bool { return false }))

	p := &probe{}
	n, err := Build(D("Always"), reg, p)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, n.Tick(p))

	n, err = Build(D("Never"), reg, p)
	require.NoError(t, err)
	assert.Equal(t, StatusFailure, n.Tick(p))
}

func TestBuildUnknownTypeReportsPath(t *testing.T) {
	reg := NewRegistry[*probe]()
	stub(t, reg, "Known", StatusSuccess)

	root, err := Build(D(TypeSelector, D("Known"), D(TypeSequence, D("Known"), D("Turn"))), reg, &probe{})
	require.Error(t, err)
	assert.Nil(t, root)
	assert.ErrorIs(t, err, ErrUnknownNodeType)
	assert.Contains(t, err.Error(), "Selector[1]/Sequence[1]/Turn")
}

func TestBuildRejectsChildrenUnderLeaf(t *testing.T) {
	reg := NewRegistry[*probe]()
	stub(t, reg, "Leaf", StatusSuccess)

	_, err := Build(D("Leaf", D(TypeNoop)), reg, &probe{})
	assert.ErrorIs(t, err, ErrMalformedDescriptor)

	_, err = Build(nil, reg, &probe{})
	assert.ErrorIs(t, err, ErrMalformedDescriptor)
}

func TestBuildRejectsMalformedDescriptors(t *testing.T) {
	reg := NewRegistry[*probe]()

	cyclic := D(TypeSequence, D(TypeNoop))
	cyclic.Children = append(cyclic.Children, cyclic)
	root, err := Build(cyclic, reg, &probe{})
	assert.ErrorIs(t, err, ErrMalformedDescriptor)
	assert.Nil(t, root)

	deep := D(TypeSelector)
	deep.Children = append(deep.Children, D(TypeSequence, deep))
	_, err = Build(deep, reg, &probe{})
	assert.ErrorIs(t, err, ErrMalformedDescriptor)

	root, err = Build(D(TypeSequence, D("")), reg, &probe{})
	assert.ErrorIs(t, err, ErrMalformedDescriptor)
	assert.NotErrorIs(t, err, ErrUnknownNodeType)
	assert.Nil(t, root)

	// a shared subtree that is not its own ancestor is fine
	leaf := D(TypeNoop)
	_, err = Build(D(TypeSequence, leaf, leaf), reg, &probe{})
	assert.NoError(t, err)
}

func TestShapeRoundTrip(t *testing.T) {
	reg := NewRegistry[*probe]()
	stub(t, reg, "A", StatusSuccess)
	stub(t, reg, "B", StatusFailure)

	desc := D(TypeSequence,
		D(TypeSelector, D("A"), D(TypeInverter, D("B"))),
		D(TypeNoop),
	)
	root, err := Build(desc, reg, &probe{})
	require.NoError(t, err)
	assert.True(t, desc.Equal(Shape(root)), "got:\n%s", Shape(root))
}

func TestRegistryDuplicates(t *testing.T) {
	lenient := NewRegistry[*probe]()
	stub(t, lenient, "X", StatusFailure)
	stub(t, lenient, "X", StatusSuccess)

	n, err := Build(D("X"), lenient, &probe{})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, n.Tick(&probe{}), "later registration wins")

	strict := NewRegistry[*probe](WithStrictRegistration())
	require.NoError(t, strict.RegisterAction("X", func(*probe) Status { return StatusSuccess }))
	err = strict.RegisterAction("X", func(*probe) Status { return StatusSuccess })
	assert.ErrorIs(t, err, ErrDuplicateNodeType)

	err = strict.RegisterAction(TypeSequence, func(*probe) Status { return StatusSuccess })
	assert.ErrorIs(t, err, ErrDuplicateNodeType, "built-ins count as registered")
}

func TestRegistryFreezeAndTypes(t *testing.T) {
	reg := NewRegistry[*probe]()
	stub(t, reg, "Zeta", StatusSuccess)
	reg.Freeze()
	assert.True(t, reg.Frozen())

	err := reg.RegisterAction("Alpha", func(*probe) Status { return StatusSuccess })
	assert.ErrorIs(t, err, ErrRegistryFrozen)

	assert.Equal(t, []string{TypeInverter, TypeNoop, TypeSelector, TypeSequence, "Zeta"}, reg.Types())
}

func TestTreeLifecycle(t *testing.T) {
	p := &probe{}
	tree := New(p)

	_, err := tree.Tick()
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Nil(t, tree.Shape())

	require.NoError(t, tree.RegisterNode("Ping", func(*probe) Node[*probe] {
		return NewAction("Ping", func(p *probe) Status {
			p.calls = append(p.calls, "Ping")
			return StatusSuccess
		})
	}))
	require.NoError(t, tree.SetRoot(D(TypeSequence, D("Ping"), D("Ping"))))

	status, err := tree.Tick()
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, status)
	assert.Equal(t, []string{"Ping", "Ping"}, p.calls)

	err = tree.RegisterNode("Late", func(*probe) Node[*probe] { return nil })
	assert.ErrorIs(t, err, ErrTreeSealed)

	// a failed rebuild keeps the previous root
	err = tree.SetRoot(D("Missing"))
	assert.ErrorIs(t, err, ErrUnknownNodeType)
	assert.Equal(t, TypeSequence, tree.Root().Name())

	require.NoError(t, tree.SetRoot(D(TypeNoop)))
	assert.Equal(t, TypeNoop, tree.Shape().Type)
}

type parserFunc func([]byte) (*Descriptor, error)

func (f parserFunc) Parse(src []byte) (*Descriptor, error) { return f(src) }

func TestSetRootText(t *testing.T) {
	tree := New(&probe{})
	p := parserFunc(func(src []byte) (*Descriptor, error) {
		if len(src) == 0 {
			return nil, errors.New("empty")
		}
		return D(string(src)), nil
	})

	assert.Error(t, tree.SetRootText(p, nil))
	require.NoError(t, tree.SetRootText(p, []byte(TypeNoop)))
	status, err := tree.Tick()
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, status)
}

type recordingObserver struct {
	tree   string
	status Status
	ticks  int
}

func (r *recordingObserver) ObserveTick(tree string, status Status, _ time.Duration) {
	r.tree, r.status = tree, status
	r.ticks++
}

func TestSharedRegistryAndObserver(t *testing.T) {
	reg := NewRegistry[*probe]()
	stub(t, reg, "Hit", StatusSuccess)
	reg.Freeze()

	obs := &recordingObserver{}
	a := NewShared(&probe{}, reg, WithName("a"), WithObserver(obs))
	b := NewShared(&probe{}, reg, WithName("b"))
	require.NoError(t, a.SetRoot(D("Hit")))
	require.NoError(t, b.SetRoot(D(TypeSelector, D("Hit"))))

	_, err := a.Tick()
	require.NoError(t, err)
	_, err = b.Tick()
	require.NoError(t, err)

	assert.Equal(t, []string{"Hit"}, a.Context().calls)
	assert.Equal(t, []string{"Hit"}, b.Context().calls)
	assert.Equal(t, 1, obs.ticks)
	assert.Equal(t, "a", obs.tree)
	assert.Equal(t, StatusSuccess, obs.status)
}

func TestDescriptorValidate(t *testing.T) {
	assert.NoError(t, D(TypeSequence, D("A")).Validate())
	assert.ErrorIs(t, D(TypeSequence, D("")).Validate(), ErrMalformedDescriptor)
	assert.ErrorIs(t, (&Descriptor{Type: "X", Children: []*Descriptor{nil}}).Validate(), ErrMalformedDescriptor)
	assert.Equal(t, "Sequence\n  A\n", D(TypeSequence, D("A")).String())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Success", StatusSuccess.String())
	assert.Equal(t, "Failure", StatusFailure.String())
	assert.Equal(t, "Running", StatusRunning.String())
	assert.Equal(t, "Invalid", Status(9).String())
}
