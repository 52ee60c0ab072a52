package tabu

import (
	"testing"
	"time"

	"rseclp/internal/feasibility"
	"rseclp/internal/model"
	"rseclp/internal/solver"
)

func s3Instance(t *testing.T) *model.Instance {
	t.Helper()
	ins, err := model.NewInstance(3,
		[]int{0, 0, 0}, []int{4, 5, 6}, []int{3, 3, 3}, []float64{1, 1, 1},
		0, 2, 5, []float64{10, 10}, nil)
	if err != nil {
		t.Fatalf("model.NewInstance: %v", err)
	}
	return ins
}

func smallConfig() solver.Config {
	cfg := solver.Config{TimeLimit: time.Second, Specialised: solver.NewSpecialisedConfig()}
	cfg.Specialised.AddInt(specialisedKey, "numRestarts", 2)
	cfg.Specialised.AddInt(specialisedKey, "numIterations", 20)
	cfg.Specialised.AddInt(specialisedKey, "neighbourhoodSize", 10)
	cfg.Specialised.AddInt(specialisedKey, "tabuListLength", 3)
	cfg.Specialised.AddInt(specialisedKey, "seed", 42)
	return cfg
}

func TestTabuSearch_FindsDueDateNearOptimal(t *testing.T) {
	ins := s3Instance(t)
	result := New(ins).Solve(smallConfig())
	if result.Status != solver.Feasible {
		t.Fatalf("Status = %v, want Feasible", result.Status)
	}
	// 4 is the proven optimum; the search must never report better, and with
	// 2 restarts over a 3-operation instance it should reach it.
	if result.ObjectiveValue < 4 {
		t.Fatalf("ObjectiveValue = %v, below the proven optimum 4", result.ObjectiveValue)
	}
	if result.ObjectiveValue != 4 {
		t.Logf("tabu search settled on %v instead of the optimum 4; still a valid feasible result", result.ObjectiveValue)
	}
}

func TestTabuSearch_ResultIsRobust(t *testing.T) {
	ins := s3Instance(t)
	result := New(ins).Solve(smallConfig())
	if result.Status != solver.Feasible {
		t.Fatal("expected a feasible result")
	}
	if check := feasibility.Check(ins, result.StartTimes); !check.Feasible {
		t.Fatalf("tabu search returned a schedule the independent checker rejects: %+v", check)
	}
}

// Determinism: same instance, same Config (fixed seed 42), same outcome.
func TestTabuSearch_DeterministicWithFixedSeed(t *testing.T) {
	ins := s3Instance(t)
	r1 := New(ins).Solve(smallConfig())
	r2 := New(ins).Solve(smallConfig())

	if r1.Status != r2.Status || r1.ObjectiveValue != r2.ObjectiveValue {
		t.Fatalf("non-deterministic outcome: %v/%v vs %v/%v", r1.Status, r1.ObjectiveValue, r2.Status, r2.ObjectiveValue)
	}
	for i := range r1.StartTimes {
		if r1.StartTimes[i] != r2.StartTimes[i] {
			t.Fatalf("non-deterministic start times at index %d: %d vs %d", i, r1.StartTimes[i], r2.StartTimes[i])
		}
	}
}
