// Package fixedorder implements the robust fixed-order scheduler: given a
// permutation of operations it produces the earliest start times that stay
// energy-feasible under every deviation scenario, or declares the order
// infeasible. Two interchangeable variants are provided (optimized and
// baseline); both must agree on every feasible order, so the baseline is
// kept as a differential-testing oracle rather than deleted once the
// optimized variant existed.
package fixedorder

import "rseclp/internal/model"

// Result is the binary outcome of appending a position to a fixed-order
// schedule. There is no witness payload here (that belongs to the
// feasibility checker); a solver either gets a start time or it doesn't.
type Result int

const (
	Feasible Result = iota
	Infeasible
)

// Scheduler builds start times for a fixed permutation one position at a
// time. appendPosition must be called for positions 0..N-1 in order;
// Create is a convenience wrapper doing exactly that with short-circuit on
// infeasibility.
type Scheduler interface {
	AppendPosition(ordered []model.Operation, position int) Result
	Create(ordered []model.Operation) Result
	StartTimes() model.StartTimes
}

// Variant selects which of the two scheduler implementations to use.
type Variant int

const (
	Optimized Variant = iota
	Baseline
)

// New returns a fresh Scheduler over ins for the requested variant. Each
// Scheduler owns its own scratch StartTimes vectors, so instances handed to
// different goroutines never share mutable state (§5 resource discipline).
func New(ins *model.Instance, variant Variant) Scheduler {
	switch variant {
	case Baseline:
		return newBaselineScheduler(ins)
	default:
		return newOptimizedScheduler(ins)
	}
}

func create(s Scheduler, ordered []model.Operation) Result {
	for position := range ordered {
		if s.AppendPosition(ordered, position) == Infeasible {
			return Infeasible
		}
	}
	return Feasible
}

func intersectionLength(start1, end1, start2, end2 int) int {
	lo := start1
	if start2 > lo {
		lo = start2
	}
	hi := end1
	if end2 < hi {
		hi = end2
	}
	d := hi - lo
	if d < 0 {
		return 0
	}
	return d
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
