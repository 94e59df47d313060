package rwc

import (
	"context"
	"math/rand"
)

// DefaultMaxSteps bounds a single walk when no limit is configured
const DefaultMaxSteps = 1_000_000

// ctxCheckInterval is how many steps a walk takes between context checks
const ctxCheckInterval = 1 << 12

// WalkState is the state of a single random walk
type WalkState int

const (
	Walking WalkState = iota
	LandedOwnSide
	LandedOtherSide
	NonConvergent
)

func (s WalkState) String() string {
	switch s {
	case Walking:
		return "walking"
	case LandedOwnSide:
		return "landed_own_side"
	case LandedOtherSide:
		return "landed_other_side"
	case NonConvergent:
		return "non_convergent"
	}
	return "unknown"
}

// WalkResult is the final state of a walk together with where and when it ended
type WalkResult struct {
	State WalkState
	Node  int
	Steps int
}

// Walker runs bounded random walks over a read-only graph.
// It holds no mutable state and may be shared by all workers.
type Walker struct {
	graph    *Graph
	maxSteps int
}

// NewWalker creates a walker; maxSteps <= 0 selects DefaultMaxSteps
func NewWalker(graph *Graph, maxSteps int) *Walker {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Walker{graph: graph, maxSteps: maxSteps}
}

// MaxSteps returns the step bound of the walker
func (w *Walker) MaxSteps() int { return w.maxSteps }

// Walk moves from start to a uniformly chosen out-neighbor until the current node
// is in own (the starting side's sample minus the start position) or in other
// (the opposite side's full sample). The start node itself is never tested.
func (w *Walker) Walk(ctx context.Context, rng *rand.Rand, start int, own, other Terminals) (WalkResult, error) {
	result := WalkResult{State: Walking, Node: start}

	if own.Len() == 0 && other.Len() == 0 {
		result.State = NonConvergent
		return result, w.walkError(start, result, "no terminal nodes sampled")
	}

	current := start
	for result.Steps < w.maxSteps {
		neighbors := w.graph.Neighbors(current)
		if len(neighbors) == 0 {
			result.State = NonConvergent
			return result, w.walkError(start, result, "dangling node has no outbound edges")
		}

		current = neighbors[rng.Intn(len(neighbors))]
		result.Node = current
		result.Steps++

		if own.Contains(current) {
			result.State = LandedOwnSide
			return result, nil
		}
		if other.Contains(current) {
			result.State = LandedOtherSide
			return result, nil
		}

		if result.Steps%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return result, err
			}
		}
	}

	result.State = NonConvergent
	return result, w.walkError(start, result, "step limit exceeded")
}

func (w *Walker) walkError(start int, result WalkResult, reason string) error {
	return &WalkError{
		Start:  w.graph.ID(start),
		Node:   w.graph.ID(result.Node),
		Steps:  result.Steps,
		Reason: reason,
	}
}
