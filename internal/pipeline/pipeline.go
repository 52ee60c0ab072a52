// Package pipeline implements the multi-stage driver: a list of solvers run
// in order, each warm-started from the previous stage's best feasible
// result, sharing one global deadline.
package pipeline

import (
	"rseclp/internal/feasibility"
	"rseclp/internal/model"
	"rseclp/internal/objective"
	"rseclp/internal/solver"
	"rseclp/internal/stopwatch"
)

// MultiStageSolver chains Stages, each consuming whatever time remains of
// the global budget after the stages before it.
type MultiStageSolver struct {
	Instance *model.Instance
	Stages   []solver.Solver
}

func New(ins *model.Instance, stages ...solver.Solver) *MultiStageSolver {
	return &MultiStageSolver{Instance: ins, Stages: stages}
}

func (m *MultiStageSolver) Solve(cfg solver.Config) solver.Result {
	obj := cfg.Objective
	if obj == nil {
		obj = objective.TotalTardiness{}
	}

	sw := stopwatch.New()
	sw.Start()

	current := solver.NewResult(m.Instance.NumOperations(), obj.WorstValue())
	if cfg.UseInitStartTimes {
		if r := feasibility.Check(m.Instance, cfg.InitStartTimes); r.Feasible {
			current.Status = solver.Feasible
			current.StartTimes = cfg.InitStartTimes.Clone()
			current.ObjectiveValue = obj.Compute(m.Instance, current.StartTimes)
		}
	}

	for _, stage := range m.Stages {
		remaining := cfg.TimeLimit - sw.Duration()
		if cfg.TimeLimit > 0 && remaining <= 0 {
			break
		}

		stageCfg := solver.Config{
			TimeLimit:   remaining,
			Objective:   obj,
			Specialised: cfg.Specialised,
		}
		if current.Status == solver.Feasible {
			stageCfg.UseInitStartTimes = true
			stageCfg.InitStartTimes = current.StartTimes.Clone()
		}

		stageResult := stage.Solve(stageCfg)
		current.MergeOptionalFrom(stageResult)

		switch stageResult.Status {
		case solver.Optimal:
			current.Status = solver.Optimal
			current.StartTimes = stageResult.StartTimes
			current.ObjectiveValue = stageResult.ObjectiveValue
			sw.Stop()
			current.Runtime = sw.Duration()
			return current
		case solver.Feasible:
			if current.Status != solver.Feasible || obj.IsBetter(stageResult.ObjectiveValue, current.ObjectiveValue) {
				current.Status = solver.Feasible
				current.StartTimes = stageResult.StartTimes
				current.ObjectiveValue = stageResult.ObjectiveValue
			}
		case solver.Infeasible:
			current.Status = solver.Infeasible
			sw.Stop()
			current.Runtime = sw.Duration()
			return current
		case solver.NoSolution:
			// keep current
		}
	}

	sw.Stop()
	current.Runtime = sw.Duration()
	return current
}
