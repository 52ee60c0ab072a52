// Command batch drives the solving pipeline concurrently across every
// instance file matched by a pipeline config's batch.instance_glob, one
// goroutine worker per config's worker count, each instance solved by its
// own isolated solver stages.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"rseclp/internal/batchrunner"
	"rseclp/internal/jsonio"
	"rseclp/internal/objective"
	"rseclp/internal/pipelineconfig"
	"rseclp/internal/solver"
)

func main() {
	cfgPath := flag.String("config", "", "path to pipeline YAML config")
	summaryPath := flag.String("summary", "batch-summary.csv", "path to write the CSV run summary")
	flag.Parse()

	if *cfgPath == "" {
		fmt.Fprintln(os.Stderr, "usage: batch --config pipeline.yaml [--summary batch-summary.csv]")
		os.Exit(1)
	}

	cfg, err := pipelineconfig.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	paths, err := filepath.Glob(cfg.Batch.InstanceGlob)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "no instance files matched %q\n", cfg.Batch.InstanceGlob)
		os.Exit(1)
	}

	stageNames := make([]string, len(cfg.Pipeline.Stages))
	for i, s := range cfg.Pipeline.Stages {
		stageNames[i] = s.Name
	}

	jobs := make([]batchrunner.Job, 0, len(paths))
	for _, p := range paths {
		ins, err := jsonio.ReadInstance(p)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		specialised := solver.NewSpecialisedConfig()
		for _, stage := range cfg.Pipeline.Stages {
			key := stageSpecialisedKey(stage.Name)
			for k, v := range stage.Options {
				specialised.AddString(key, k, v)
			}
		}

		jobs = append(jobs, batchrunner.Job{
			Name:       p,
			Instance:   ins,
			StageNames: stageNames,
			Config: solver.Config{
				TimeLimit:   time.Duration(cfg.Pipeline.TimeLimitInMilliseconds) * time.Millisecond,
				Objective:   objective.TotalTardiness{},
				Specialised: specialised,
			},
		})
	}

	outcomes := batchrunner.Run(jobs, cfg.Batch.Workers)
	ranked := batchrunner.RankByObjective(outcomes)

	if err := batchrunner.WriteSummaryCSV(*summaryPath, ranked); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for _, o := range ranked {
		if o.Err != nil {
			fmt.Printf("%-40s error=%v\n", o.Name, o.Err)
			continue
		}
		fmt.Printf("%-40s status=%-12s objective=%-12g runtime=%s\n", o.Name, o.Result.Status, o.Result.ObjectiveValue, o.Duration)
	}
}

func stageSpecialisedKey(name string) string {
	switch name {
	case jsonio.StageGreedyHeuristics:
		return "greedy"
	case jsonio.StageTabuSearch:
		return "tabu"
	default:
		return "branchbound"
	}
}
