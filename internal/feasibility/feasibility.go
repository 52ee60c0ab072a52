// Package feasibility independently re-checks a start-time vector against
// the adversarial right-shift model, reconstructing an explicit delay
// witness and the first violating metering interval when it fails. It does
// not trust the scheduler that produced the start times: it walks the
// monotone right-shift lattice itself.
package feasibility

import "rseclp/internal/model"

// Result is the outcome of a robustness check.
type Result struct {
	Feasible bool

	// Delays is the adversarial delay vector witnessing infeasibility,
	// indexed by operation index. Zero value when Feasible is true.
	Delays []int

	// ViolatedInterval is the first metering interval whose energy cap the
	// realized schedule breaches. Only meaningful when Feasible is false.
	ViolatedInterval model.MeteringInterval
	HasViolation     bool
}

// Check determines whether st is robust against every delay vector in
// [0,Δ]^N, by exploring the monotone right-shift lattice bounded by the
// latest start times. It terminates because each step strictly increases
// the sum of realized start times.
func Check(ins *model.Instance, st model.StartTimes) Result {
	ordered := st.OperationsOrdered(ins)
	latest := model.NewStartTimes(ins.NumOperations())
	st.ComputeLatestStartTimes(ins, ordered, latest)

	realised := st.Clone()
	maxDeviation := ins.MaxDeviation()

	q := 0
	for q < len(ordered) {
		if mi, violated := realised.ViolatedMeteringInterval(ins); violated {
			delays := make([]int, ins.NumOperations())
			for j := 0; j < q; j++ {
				delays[ordered[j].Index] = maxDeviation
			}
			op := ordered[q]
			delays[op.Index] = maxDeviation - (latest[op.Index] - realised[op.Index])
			return Result{
				Feasible:         false,
				Delays:           delays,
				ViolatedInterval: mi,
				HasViolation:     true,
			}
		}

		op := ordered[q]
		if realised[op.Index]+1 > latest[op.Index] {
			q++
			continue
		}

		realised[op.Index]++
		for j := q + 1; j < len(ordered); j++ {
			prev := ordered[j-1]
			cur := ordered[j]
			if realised[prev.Index]+prev.ProcessingTime > realised[cur.Index] {
				realised[cur.Index]++
			} else {
				break
			}
		}
	}

	return Result{Feasible: true}
}
