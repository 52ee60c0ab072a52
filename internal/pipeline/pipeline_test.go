package pipeline

import (
	"testing"
	"time"

	"rseclp/internal/branchbound"
	"rseclp/internal/feasibility"
	"rseclp/internal/heuristic"
	"rseclp/internal/model"
	"rseclp/internal/solver"
	"rseclp/internal/tabu"
)

// a 5-operation instance (Δ=1, L=15, M=5) driven through
// Greedy(tardiness) -> TabuSearch(default) -> BranchAndBoundOnOrder: every
// stage's own result must pass the independent checker, and the driver's
// final objective must never be worse than any individual stage's.
func TestMultiStageSolver_WarmStartNeverWorsensObjective(t *testing.T) {
	ins, err := model.NewInstance(5,
		[]int{0, 1, 3, 4, 6},
		[]int{10, 14, 16, 20, 24},
		[]int{3, 2, 3, 2, 3},
		[]float64{1, 1.5, 1, 2, 1},
		1, 5, 15,
		[]float64{20, 20, 20, 20, 20},
		nil,
	)
	if err != nil {
		t.Fatalf("model.NewInstance: %v", err)
	}

	greedyCfg := solver.Config{Specialised: solver.NewSpecialisedConfig()}
	greedyCfg.Specialised.AddString("greedy", "rule", "tardiness")
	greedyResult := heuristic.New(ins).Solve(greedyCfg)
	if greedyResult.Status != solver.Feasible {
		t.Fatalf("greedy stage: Status = %v, want Feasible", greedyResult.Status)
	}
	if check := feasibility.Check(ins, greedyResult.StartTimes); !check.Feasible {
		t.Fatalf("greedy stage result failed the independent checker: %+v", check)
	}

	tabuCfg := solver.Config{TimeLimit: 500 * time.Millisecond, Specialised: solver.NewSpecialisedConfig()}
	tabuCfg.Specialised.AddInt("tabu", "numRestarts", 2)
	tabuCfg.Specialised.AddInt("tabu", "numIterations", 30)
	tabuCfg.Specialised.AddInt("tabu", "neighbourhoodSize", 20)
	tabuCfg.Specialised.AddInt("tabu", "seed", 42)
	tabuCfg.UseInitStartTimes = true
	tabuCfg.InitStartTimes = greedyResult.StartTimes
	tabuResult := tabu.New(ins).Solve(tabuCfg)
	if tabuResult.Status != solver.Feasible {
		t.Fatalf("tabu stage: Status = %v, want Feasible", tabuResult.Status)
	}
	if check := feasibility.Check(ins, tabuResult.StartTimes); !check.Feasible {
		t.Fatalf("tabu stage result failed the independent checker: %+v", check)
	}

	driver := New(ins, heuristic.New(ins), tabu.New(ins), branchbound.New(ins))
	driverCfg := solver.Config{TimeLimit: 2 * time.Second, Specialised: solver.NewSpecialisedConfig()}
	driverCfg.Specialised.AddString("greedy", "rule", "tardiness")
	driverCfg.Specialised.AddInt("tabu", "numRestarts", 2)
	driverCfg.Specialised.AddInt("tabu", "numIterations", 30)
	driverCfg.Specialised.AddInt("tabu", "neighbourhoodSize", 20)
	driverCfg.Specialised.AddInt("tabu", "seed", 42)

	finalResult := driver.Solve(driverCfg)
	if finalResult.Status != solver.Optimal && finalResult.Status != solver.Feasible {
		t.Fatalf("driver: Status = %v, want Optimal or Feasible", finalResult.Status)
	}
	if check := feasibility.Check(ins, finalResult.StartTimes); !check.Feasible {
		t.Fatalf("driver result failed the independent checker: %+v", check)
	}

	if finalResult.ObjectiveValue > greedyResult.ObjectiveValue {
		t.Fatalf("driver objective %v worse than greedy stage's %v", finalResult.ObjectiveValue, greedyResult.ObjectiveValue)
	}
	if finalResult.ObjectiveValue > tabuResult.ObjectiveValue {
		t.Fatalf("driver objective %v worse than tabu stage's %v", finalResult.ObjectiveValue, tabuResult.ObjectiveValue)
	}
}

func TestMultiStageSolver_StopsEarlyOnInfeasible(t *testing.T) {
	ins, err := model.NewInstance(2, []int{0, 0}, []int{10, 10}, []int{3, 3}, []float64{4, 4}, 0, 1, 6, []float64{18}, nil)
	if err != nil {
		t.Fatalf("model.NewInstance: %v", err)
	}
	driver := New(ins, heuristic.New(ins), branchbound.New(ins), tabu.New(ins))
	cfg := solver.Config{TimeLimit: time.Second, Specialised: solver.NewSpecialisedConfig()}
	result := driver.Solve(cfg)
	if result.Status != solver.Infeasible {
		t.Fatalf("Status = %v, want Infeasible", result.Status)
	}
}
