package feasibility

import (
	"math/rand"
	"testing"

	"rseclp/internal/fixedorder"
	"rseclp/internal/model"
)

// the checker independently re-derives infeasibility for a nominal schedule
// that already overshoots a single metering interval's cap, naming interval 0
// as the violated one and an all-zero adversarial delay (no deviation is even
// needed: the nominal schedule itself overshoots the cap).
func TestCheck_ReportsViolatedIntervalAndZeroDelayWitness(t *testing.T) {
	ins, err := model.NewInstance(2,
		[]int{0, 0}, []int{10, 10}, []int{3, 3}, []float64{4, 4},
		0, 1, 6, []float64{18}, nil)
	if err != nil {
		t.Fatalf("model.NewInstance: %v", err)
	}
	st := model.StartTimes{0, 3}
	result := Check(ins, st)

	if result.Feasible {
		t.Fatal("expected INFEASIBLE")
	}
	if !result.HasViolation {
		t.Fatal("expected a violated metering interval to be reported")
	}
	if result.ViolatedInterval.Index != 0 {
		t.Fatalf("ViolatedInterval.Index = %d, want 0", result.ViolatedInterval.Index)
	}
	for i, d := range result.Delays {
		if d != 0 {
			t.Fatalf("Delays[%d] = %d, want 0 (Δ=0 leaves no adversarial freedom)", i, d)
		}
	}
}

func TestCheck_FeasibleSchedule(t *testing.T) {
	ins, err := model.NewInstance(1,
		[]int{0}, []int{10}, []int{5}, []float64{1},
		0, 2, 5, []float64{10, 10}, nil)
	if err != nil {
		t.Fatalf("model.NewInstance: %v", err)
	}
	result := Check(ins, model.StartTimes{0})
	if !result.Feasible {
		t.Fatalf("expected Feasible, got Delays=%v ViolatedInterval=%v", result.Delays, result.ViolatedInterval)
	}
}

// Every schedule the fixed-order scheduler declares Feasible must also be
// declared robust by the independent checker: the scheduler constructs its
// start times specifically so they survive every delay vector in [0,Δ]^N,
// and the checker explores exactly that lattice.
func TestCheck_AgreesWithScheduler(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 100; trial++ {
		n := 1 + rng.Intn(4)
		release := make([]int, n)
		due := make([]int, n)
		proc := make([]int, n)
		power := make([]float64, n)
		cursor := 0
		for i := 0; i < n; i++ {
			cursor += rng.Intn(4)
			release[i] = cursor
			proc[i] = 1 + rng.Intn(4)
			due[i] = release[i] + proc[i] + rng.Intn(6)
			power[i] = 1 + rng.Float64()*3
		}
		numIntervals := 3
		length := 5
		maxEnergy := make([]float64, numIntervals)
		for k := range maxEnergy {
			maxEnergy[k] = 5 + rng.Float64()*20
		}
		maxDeviation := rng.Intn(3)

		ins, err := model.NewInstance(n, release, due, proc, power, maxDeviation, numIntervals, length, maxEnergy, nil)
		if err != nil {
			continue
		}

		perm := append([]model.Operation(nil), ins.Operations()...)
		rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })

		sched := fixedorder.New(ins, fixedorder.Optimized)
		if sched.Create(perm) == fixedorder.Infeasible {
			continue
		}

		result := Check(ins, sched.StartTimes())
		if !result.Feasible {
			t.Fatalf("trial %d: scheduler declared order %v feasible but checker disagreed (violated=%v, delays=%v)",
				trial, indices(perm), result.ViolatedInterval, result.Delays)
		}
	}
}

func indices(ops []model.Operation) []int {
	out := make([]int, len(ops))
	for i, op := range ops {
		out[i] = op.Index
	}
	return out
}
