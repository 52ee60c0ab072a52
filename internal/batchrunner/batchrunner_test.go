package batchrunner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"rseclp/internal/jsonio"
	"rseclp/internal/model"
	"rseclp/internal/objective"
	"rseclp/internal/solver"
)

func mustInstance(t *testing.T, dueDateSpread int) *model.Instance {
	t.Helper()
	ins, err := model.NewInstance(1,
		[]int{0}, []int{10 + dueDateSpread}, []int{5}, []float64{1},
		0, 2, 5, []float64{10, 10}, nil)
	if err != nil {
		t.Fatalf("model.NewInstance: %v", err)
	}
	return ins
}

func TestRun_PreservesJobOrderAndIsolatesState(t *testing.T) {
	jobs := []Job{
		{Name: "a", Instance: mustInstance(t, 0), StageNames: []string{jsonio.StageGreedyHeuristics}, Config: solver.Config{Objective: objective.TotalTardiness{}, Specialised: solver.NewSpecialisedConfig()}},
		{Name: "b", Instance: mustInstance(t, 1), StageNames: []string{jsonio.StageGreedyHeuristics}, Config: solver.Config{Objective: objective.TotalTardiness{}, Specialised: solver.NewSpecialisedConfig()}},
		{Name: "c", Instance: mustInstance(t, 2), StageNames: []string{jsonio.StageGreedyHeuristics}, Config: solver.Config{Objective: objective.TotalTardiness{}, Specialised: solver.NewSpecialisedConfig()}},
	}

	outcomes := Run(jobs, 3)
	if len(outcomes) != 3 {
		t.Fatalf("len(outcomes) = %d, want 3", len(outcomes))
	}
	for i, want := range []string{"a", "b", "c"} {
		if outcomes[i].Name != want {
			t.Fatalf("outcomes[%d].Name = %q, want %q (Run must preserve job order)", i, outcomes[i].Name, want)
		}
		if outcomes[i].Result.Status != solver.Feasible {
			t.Fatalf("outcomes[%d].Result.Status = %v, want Feasible", i, outcomes[i].Result.Status)
		}
	}
}

func TestRun_UnknownStageNameReportsError(t *testing.T) {
	jobs := []Job{
		{Name: "bad", Instance: mustInstance(t, 0), StageNames: []string{"NotAStage"}, Config: solver.Config{}},
	}
	outcomes := Run(jobs, 1)
	if outcomes[0].Err == nil {
		t.Fatal("expected an error for an unknown stage name")
	}
}

func TestRankByObjective(t *testing.T) {
	outcomes := []Outcome{
		{Name: "worst", Result: solver.Result{Status: solver.Feasible, ObjectiveValue: 10}},
		{Name: "best", Result: solver.Result{Status: solver.Optimal, ObjectiveValue: 2}},
		{Name: "errored", Err: errTest},
		{Name: "no-solution", Result: solver.Result{Status: solver.NoSolution, ObjectiveValue: 0}},
		{Name: "middle", Result: solver.Result{Status: solver.Feasible, ObjectiveValue: 5}},
	}
	ranked := RankByObjective(outcomes)
	want := []string{"best", "middle", "worst", "no-solution", "errored"}
	for i, name := range want {
		if ranked[i].Name != name {
			t.Fatalf("ranked[%d].Name = %q, want %q", i, ranked[i].Name, name)
		}
	}
}

func TestWriteSummaryCSV(t *testing.T) {
	outcomes := []Outcome{
		{Name: "one", Result: solver.Result{Status: solver.Optimal, ObjectiveValue: 4}, Duration: 12 * time.Millisecond},
	}
	path := filepath.Join(t.TempDir(), "summary.csv")
	if err := WriteSummaryCSV(path, outcomes); err != nil {
		t.Fatalf("WriteSummaryCSV: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "name,status,objective_value,runtime_ms,error") {
		t.Fatalf("missing CSV header, got:\n%s", content)
	}
	if !strings.Contains(content, "one,OPTIMAL,4.000000,12,") {
		t.Fatalf("missing expected data row, got:\n%s", content)
	}
}

var errTest = &testError{"boom"}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
