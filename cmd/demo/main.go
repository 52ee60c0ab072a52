// Command demo runs the sample Greedy -> TabuSearch -> BranchAndBoundOnOrder
// pipeline against a single instance file, printing the final schedule's
// start times, objective, status and elapsed time, and the feasibility
// checker's verdict on it.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"rseclp/internal/branchbound"
	"rseclp/internal/feasibility"
	"rseclp/internal/heuristic"
	"rseclp/internal/jsonio"
	"rseclp/internal/objective"
	"rseclp/internal/pipeline"
	"rseclp/internal/solver"
	"rseclp/internal/tabu"
)

func main() {
	instancePath := flag.String("instance", "example-instances/5/example.json", "path to an instance JSON file")
	timeLimit := flag.Duration("time-limit", time.Hour, "total solving time budget")
	flag.Parse()

	ins, err := jsonio.ReadInstance(*instancePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	specialised := solver.NewSpecialisedConfig()
	specialised.AddString("greedy", "rule", "tardiness")
	specialised.AddInt("tabu", "numRestarts", 10)
	specialised.AddInt("tabu", "numIterations", 200)
	specialised.AddInt("tabu", "neighbourhoodSize", 50)
	specialised.AddInt("tabu", "tabuListLength", 5)

	driver := pipeline.New(ins,
		heuristic.New(ins),
		tabu.New(ins),
		branchbound.New(ins),
	)

	cfg := solver.Config{
		TimeLimit:   *timeLimit,
		Objective:   objective.TotalTardiness{},
		Specialised: specialised,
	}

	start := time.Now()
	result := driver.Solve(cfg)
	elapsed := time.Since(start)

	check := feasibility.Check(ins, result.StartTimes)
	fmt.Printf("Solution feasible? %v\n", check.Feasible)
	fmt.Printf("Start times: %s\n", result.StartTimes)
	fmt.Printf("Objective: %g\n", result.ObjectiveValue)
	fmt.Printf("Status: %s\n", result.Status)
	fmt.Printf("Elapsed time: %s\n", elapsed)
}
