package model

import (
	"fmt"
	"sort"
	"strings"
)

// StartTimes is a length-N vector of start times indexed by operation index.
// It is the sole mutable per-schedule state in the whole solver; every
// subsystem that needs a scratch StartTimes allocates one once and reuses it.
type StartTimes []int

// NewStartTimes allocates a zeroed StartTimes for n operations.
func NewStartTimes(n int) StartTimes {
	return make(StartTimes, n)
}

// Clone returns an independent copy.
func (st StartTimes) Clone() StartTimes {
	out := make(StartTimes, len(st))
	copy(out, st)
	return out
}

func (st StartTimes) String() string {
	parts := make([]string, len(st))
	for i, v := range st {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return "StartTimes(" + strings.Join(parts, ", ") + ")"
}

// OperationsOrdered returns the operations of ins sorted by ascending start
// time, ties broken by operation index (stable sort over index-ordered
// input achieves this directly).
func (st StartTimes) OperationsOrdered(ins *Instance) []Operation {
	ordered := make([]Operation, len(ins.Operations()))
	copy(ordered, ins.Operations())
	sort.SliceStable(ordered, func(i, j int) bool {
		return st[ordered[i].Index] < st[ordered[j].Index]
	})
	return ordered
}

// ViolatedMeteringInterval returns the lowest-index metering interval whose
// accumulated energy exceeds its cap by more than GrossEnergyTolerance, or
// false if none is violated.
func (st StartTimes) ViolatedMeteringInterval(ins *Instance) (MeteringInterval, bool) {
	consumed := make([]float64, ins.NumMeteringIntervals())
	for _, op := range ins.Operations() {
		startTime := st[op.Index]
		completionTime := startTime + op.ProcessingTime

		first, ok := ins.FirstNonZeroIntersectionMeteringInterval(startTime)
		if !ok {
			continue
		}
		last, ok := ins.LastNonZeroIntersectionMeteringInterval(completionTime)
		if !ok {
			continue
		}

		if first.Index == last.Index {
			consumed[first.Index] += float64(op.ProcessingTime) * op.PowerConsumption
			continue
		}

		consumed[first.Index] += float64(first.End-startTime) * op.PowerConsumption
		consumed[last.Index] += float64(completionTime-last.Start) * op.PowerConsumption
		for idx := first.Index + 1; idx < last.Index; idx++ {
			consumed[idx] += float64(ins.LengthMeteringInterval()) * op.PowerConsumption
		}
	}

	for _, mi := range ins.MeteringIntervals() {
		if isGreater(consumed[mi.Index], mi.MaxEnergyConsumption, GrossEnergyTolerance) {
			return mi, true
		}
	}
	return MeteringInterval{}, false
}

// EnergyLimitsViolated reports whether any metering interval cap is violated.
func (st StartTimes) EnergyLimitsViolated(ins *Instance) bool {
	_, violated := st.ViolatedMeteringInterval(ins)
	return violated
}

// ComputeLatestStartTimes fills latestStartTimes[0..len(ordered)) with the
// right-shift envelope of st under ins.MaxDeviation(), for positions
// 0..len(ordered)-1 of the given permutation.
func (st StartTimes) ComputeLatestStartTimes(ins *Instance, ordered []Operation, latestStartTimes StartTimes) {
	for position := range ordered {
		st.ComputeLatestStartTime(ins, ordered, position, latestStartTimes)
	}
}

// ComputeLatestStartTime fills latestStartTimes for a single position,
// assuming latestStartTimes[0..forPosition) is already populated.
func (st StartTimes) ComputeLatestStartTime(ins *Instance, ordered []Operation, forPosition int, latestStartTimes StartTimes) {
	op := ordered[forPosition]
	if forPosition == 0 {
		latestStartTimes[op.Index] = st[op.Index] + ins.MaxDeviation()
		return
	}
	prev := ordered[forPosition-1]
	base := st[op.Index]
	if v := latestStartTimes[prev.Index] + prev.ProcessingTime; v > base {
		base = v
	}
	latestStartTimes[op.Index] = base + ins.MaxDeviation()
}

// ComputeRealisedStartTimes fills realisedStartTimes for the full
// permutation under a concrete per-operation delay vector (indexed by
// operation index, not position).
func (st StartTimes) ComputeRealisedStartTimes(ordered []Operation, uncertaintyScenario []int, realisedStartTimes StartTimes) {
	for position := range ordered {
		st.ComputeRealisedStartTime(ordered, position, uncertaintyScenario, realisedStartTimes)
	}
}

// ComputeRealisedStartTime fills realisedStartTimes for a single position.
func (st StartTimes) ComputeRealisedStartTime(ordered []Operation, forPosition int, uncertaintyScenario []int, realisedStartTimes StartTimes) {
	op := ordered[forPosition]
	if forPosition == 0 {
		realisedStartTimes[op.Index] = st[op.Index] + uncertaintyScenario[op.Index]
		return
	}
	prev := ordered[forPosition-1]
	base := st[op.Index]
	if v := realisedStartTimes[prev.Index] + prev.ProcessingTime; v > base {
		base = v
	}
	realisedStartTimes[op.Index] = base + uncertaintyScenario[op.Index]
}

func isGreater(x, y, tolerance float64) bool {
	d := x - y
	if d < 0 {
		d = -d
	}
	return x > y && d > tolerance
}
