package rwc

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkForcedToOtherSide(t *testing.T) {
	g := buildGraph(t, [2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"C", "A"})
	idx := indices(t, g, "A", "C")
	a, c := idx[0], idx[1]

	w := NewWalker(g, 10)
	own := NewTerminals([]int{a}).Without(a)
	other := NewTerminals([]int{c})

	result, err := w.Walk(context.Background(), rand.New(rand.NewSource(1)), a, own, other)
	require.NoError(t, err)
	assert.Equal(t, LandedOtherSide, result.State)
	assert.Equal(t, 2, result.Steps)
	assert.Equal(t, c, result.Node)
}

func TestWalkLandsOnDuplicateOfStart(t *testing.T) {
	// A self-loop brings the walk back to A; the second sampled copy of A terminates it
	g := buildGraph(t, [2]string{"A", "A"}, [2]string{"C", "C"})
	idx := indices(t, g, "A", "C")
	a, c := idx[0], idx[1]

	w := NewWalker(g, 10)
	own := NewTerminals([]int{a, a}).Without(a)
	other := NewTerminals([]int{c})

	result, err := w.Walk(context.Background(), rand.New(rand.NewSource(1)), a, own, other)
	require.NoError(t, err)
	assert.Equal(t, LandedOwnSide, result.State)
	assert.Equal(t, 1, result.Steps)
}

func TestWalkStartIsExcludedFromOwnSide(t *testing.T) {
	// A -> A forever: the only own-side occurrence is the start, so the walk cannot end
	g := buildGraph(t, [2]string{"A", "A"}, [2]string{"C", "C"})
	idx := indices(t, g, "A", "C")
	a, c := idx[0], idx[1]

	w := NewWalker(g, 50)
	own := NewTerminals([]int{a}).Without(a)
	other := NewTerminals([]int{c})

	result, err := w.Walk(context.Background(), rand.New(rand.NewSource(1)), a, own, other)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNonConvergentWalk))
	assert.Equal(t, NonConvergent, result.State)
	assert.Equal(t, 50, result.Steps)

	var walkErr *WalkError
	require.True(t, errors.As(err, &walkErr))
	assert.Equal(t, "A", walkErr.Start)
	assert.Equal(t, "step limit exceeded", walkErr.Reason)
}

func TestWalkDanglingNode(t *testing.T) {
	g := buildGraph(t, [2]string{"A", "B"}, [2]string{"B", "D"}, [2]string{"C", "D"})
	idx := indices(t, g, "A", "C", "D")
	a, c, d := idx[0], idx[1], idx[2]

	w := NewWalker(g, 100)
	own := NewTerminals([]int{a}).Without(a)
	other := NewTerminals([]int{c})

	result, err := w.Walk(context.Background(), rand.New(rand.NewSource(1)), a, own, other)
	require.ErrorIs(t, err, ErrNonConvergentWalk)
	assert.Equal(t, NonConvergent, result.State)
	assert.Equal(t, d, result.Node)
	assert.Equal(t, 2, result.Steps)
}

func TestWalkWithoutTerminals(t *testing.T) {
	g := buildGraph(t, [2]string{"A", "B"}, [2]string{"B", "A"})
	a := indices(t, g, "A")[0]

	w := NewWalker(g, 100)
	own := NewTerminals([]int{a}).Without(a)
	other := NewTerminals(nil)

	result, err := w.Walk(context.Background(), rand.New(rand.NewSource(1)), a, own, other)
	require.ErrorIs(t, err, ErrNonConvergentWalk)
	assert.Equal(t, 0, result.Steps)
}

func TestWalkNonSampledNodesAreTransparent(t *testing.T) {
	// B belongs to side2 but is not sampled, so the walk passes through it
	g := buildGraph(t, [2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"C", "A"})
	idx := indices(t, g, "A", "C")
	a, c := idx[0], idx[1]

	w := NewWalker(g, 10)
	result, err := w.Walk(context.Background(), rand.New(rand.NewSource(3)), a,
		NewTerminals([]int{a}).Without(a), NewTerminals([]int{c}))
	require.NoError(t, err)
	assert.Equal(t, c, result.Node)
}

func TestWalkHonoursContext(t *testing.T) {
	g := buildGraph(t, [2]string{"A", "B"}, [2]string{"B", "A"}, [2]string{"C", "C"})
	idx := indices(t, g, "A", "C")
	a, c := idx[0], idx[1]

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewWalker(g, 10*ctxCheckInterval)
	_, err := w.Walk(ctx, rand.New(rand.NewSource(1)), a,
		NewTerminals([]int{a}).Without(a), NewTerminals([]int{c}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewWalkerDefaultSteps(t *testing.T) {
	w := NewWalker(NewGraph(), 0)
	assert.Equal(t, DefaultMaxSteps, w.MaxSteps())
}

func TestWalkStateString(t *testing.T) {
	assert.Equal(t, "walking", Walking.String())
	assert.Equal(t, "landed_own_side", LandedOwnSide.String())
	assert.Equal(t, "landed_other_side", LandedOtherSide.String())
	assert.Equal(t, "non_convergent", NonConvergent.String())
}
