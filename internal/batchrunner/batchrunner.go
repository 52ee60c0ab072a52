// Package batchrunner drives the solving pipeline over many instance files
// concurrently, one goroutine per worker, each with its own solver stages
// and scratch state so no instance's solve can observe another's.
package batchrunner

import (
	"sort"
	"sync"
	"time"

	"rseclp/internal/jsonio"
	"rseclp/internal/model"
	"rseclp/internal/pipeline"
	"rseclp/internal/solver"
)

// Job is one instance file to solve plus the prescriptions to chain.
type Job struct {
	Name            string
	Instance        *model.Instance
	StageNames      []string
	Config          solver.Config
}

// Outcome is the result of solving one Job.
type Outcome struct {
	Name     string
	Result   solver.Result
	Duration time.Duration
	Err      error
}

// Run solves every job using up to workers concurrent goroutines, one
// MultiStageSolver and its stages instantiated fresh per job so no mutable
// state crosses goroutine boundaries. Results come back in job order
// regardless of completion order.
func Run(jobs []Job, workers int) []Outcome {
	if workers < 1 {
		workers = 1
	}

	outcomes := make([]Outcome, len(jobs))
	jobCh := make(chan int, len(jobs))
	for i := range jobs {
		jobCh <- i
	}
	close(jobCh)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobCh {
				outcomes[i] = runOne(jobs[i])
			}
		}()
	}
	wg.Wait()

	return outcomes
}

func runOne(job Job) Outcome {
	start := time.Now()

	stages := make([]solver.Solver, 0, len(job.StageNames))
	for _, name := range job.StageNames {
		stage, err := jsonio.ResolveStage(name, job.Instance)
		if err != nil {
			return Outcome{Name: job.Name, Err: err, Duration: time.Since(start)}
		}
		stages = append(stages, stage)
	}

	driver := pipeline.New(job.Instance, stages...)
	result := driver.Solve(job.Config)
	return Outcome{Name: job.Name, Result: result, Duration: time.Since(start)}
}

// RankByObjective sorts outcomes ascending by objective value; failed or
// NO_SOLUTION outcomes sort last.
func RankByObjective(outcomes []Outcome) []Outcome {
	out := append([]Outcome(nil), outcomes...)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Err != nil || b.Err != nil {
			return a.Err == nil
		}
		if a.Result.Status == solver.NoSolution || b.Result.Status == solver.NoSolution {
			return a.Result.Status != solver.NoSolution
		}
		return a.Result.ObjectiveValue < b.Result.ObjectiveValue
	})
	return out
}
