package branchbound

import (
	"math/rand"
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

func TestBranchAndBound_SingleTrivialOperation(t *testing.T) {
	ins, err := model.NewInstance(1, []int{0}, []int{10}, []int{5}, []float64{1}, 0, 2, 5, []float64{10, 10}, nil)
	if err != nil {
		t.Fatalf("model.NewInstance: %v", err)
	}
	result := New(ins).Solve(solver.Config{TimeLimit: time.Second})
	if result.Status != solver.Optimal {
		t.Fatalf("Status = %v, want Optimal", result.Status)
	}
	if result.ObjectiveValue != 0 {
		t.Fatalf("ObjectiveValue = %v, want 0", result.ObjectiveValue)
	}
}

func TestBranchAndBound_TotalEnergyExceedsSingleIntervalCap(t *testing.T) {
	ins, err := model.NewInstance(2, []int{0, 0}, []int{10, 10}, []int{3, 3}, []float64{4, 4}, 0, 1, 6, []float64{18}, nil)
	if err != nil {
		t.Fatalf("model.NewInstance: %v", err)
	}
	result := New(ins).Solve(solver.Config{TimeLimit: time.Second})
	if result.Status != solver.Infeasible {
		t.Fatalf("Status = %v, want Infeasible", result.Status)
	}
}

func TestBranchAndBound_DueDateOrderIsOptimal(t *testing.T) {
	ins := s3Instance(t)
	result := New(ins).Solve(solver.Config{TimeLimit: time.Second})
	if result.Status != solver.Optimal {
		t.Fatalf("Status = %v, want Optimal", result.Status)
	}
	if result.ObjectiveValue != 4 {
		t.Fatalf("ObjectiveValue = %v, want 4", result.ObjectiveValue)
	}
}

func TestBranchAndBound_AgreesWithBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for trial := 0; trial < 20; trial++ {
		n := 2 + rng.Intn(3)
		release := make([]int, n)
		due := make([]int, n)
		proc := make([]int, n)
		power := make([]float64, n)
		cursor := 0
		for i := 0; i < n; i++ {
			cursor += rng.Intn(3)
			release[i] = cursor
			proc[i] = 1 + rng.Intn(3)
			due[i] = release[i] + proc[i] + rng.Intn(4)
			power[i] = 1 + rng.Float64()*2
		}
		numIntervals := 3
		length := 4
		maxEnergy := make([]float64, numIntervals)
		for k := range maxEnergy {
			maxEnergy[k] = 4 + rng.Float64()*10
		}

		ins, err := model.NewInstance(n, release, due, proc, power, 0, numIntervals, length, maxEnergy, nil)
		if err != nil {
			continue
		}

		cfg := solver.Config{TimeLimit: 2 * time.Second}
		bnb := New(ins).Solve(cfg)
		brute := NewBruteForce(ins).Solve(cfg)

		if bnb.Status != brute.Status {
			t.Fatalf("trial %d: branch-and-bound status %v != brute-force status %v", trial, bnb.Status, brute.Status)
		}
		if bnb.Status == solver.Optimal && bnb.ObjectiveValue != brute.ObjectiveValue {
			t.Fatalf("trial %d: branch-and-bound objective %v != brute-force objective %v", trial, bnb.ObjectiveValue, brute.ObjectiveValue)
		}
	}
}

func TestBranchAndBound_ResultIsRobust(t *testing.T) {
	ins := s3Instance(t)
	result := New(ins).Solve(solver.Config{TimeLimit: time.Second})
	if result.Status != solver.Optimal {
		t.Fatal("expected Optimal")
	}
	if check := feasibility.Check(ins, result.StartTimes); !check.Feasible {
		t.Fatalf("branch-and-bound returned a schedule the checker rejects: %+v", check)
	}
}
