package rwc

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter indicates a bad percent, simulation count or an empty side.
	ErrInvalidParameter = errors.New("rwc: invalid parameter")
	// ErrOverlappingPartitions indicates a node claimed by both sides.
	ErrOverlappingPartitions = errors.New("rwc: node present in both sides")
	// ErrUnknownNode indicates a side node that does not exist in the graph.
	ErrUnknownNode = errors.New("rwc: unknown node")
	// ErrNonConvergentWalk indicates a walk that could not reach either terminal set.
	ErrNonConvergentWalk = errors.New("rwc: random walk did not converge")
	// ErrWorkerFailure indicates that a simulation batch failed and the run was aborted.
	ErrWorkerFailure = errors.New("rwc: simulation batch failed")
)

// WalkError describes a walk that stopped without landing on a terminal node.
type WalkError struct {
	Start  string
	Node   string
	Steps  int
	Reason string
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("walk from %q stopped at %q after %d steps: %s", e.Start, e.Node, e.Steps, e.Reason)
}

func (e *WalkError) Unwrap() error { return ErrNonConvergentWalk }

// BatchError ties a failure to the simulation batch that produced it.
type BatchError struct {
	Batch int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("simulation #%d: %v", e.Batch+1, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }
