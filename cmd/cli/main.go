// Command cli is the core solver binary: "solve" runs one solver
// prescription against one instance, "compare" batch-solves every instance
// matched by a glob against one prescription and prints a ranked table.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"rseclp/internal/batchrunner"
	"rseclp/internal/jsonio"
	"rseclp/internal/pipeline"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "solve":
		cmdSolve(os.Args[2:])
	case "compare":
		cmdCompare(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli solve <prescription.json> <instance.json> <result.json>")
	fmt.Println("  cli compare --instances 'datasets/*.json' --prescription prescription.json")
}

func cmdSolve(args []string) {
	if len(args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: cli solve <prescription.json> <instance.json> <result.json>")
		os.Exit(1)
	}
	prescriptionPath, instancePath, resultPath := args[0], args[1], args[2]

	ins, err := jsonio.ReadInstance(instancePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	prescription, err := jsonio.ReadPrescription(prescriptionPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	stage, err := jsonio.ResolveStage(prescription.StageName, ins)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	driver := pipeline.New(ins, stage)
	result := driver.Solve(prescription.Config)

	if err := jsonio.WriteResult(resultPath, result); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("status=%s objective=%g runtime=%s\n", result.Status, result.ObjectiveValue, result.Runtime)
}

func cmdCompare(args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	instanceGlob := fs.String("instances", "", "glob of instance JSON files to solve")
	prescriptionPath := fs.String("prescription", "", "path to a solver prescription JSON file")
	_ = fs.Parse(args)

	if *instanceGlob == "" || *prescriptionPath == "" {
		fmt.Println("--instances and --prescription are required")
		os.Exit(1)
	}

	paths, err := filepath.Glob(*instanceGlob)
	if err != nil {
		panic(err)
	}
	if len(paths) == 0 {
		fmt.Printf("no instance files matched %q\n", *instanceGlob)
		os.Exit(1)
	}

	prescription, err := jsonio.ReadPrescription(*prescriptionPath)
	if err != nil {
		panic(err)
	}

	jobs := make([]batchrunner.Job, 0, len(paths))
	for _, p := range paths {
		ins, err := jsonio.ReadInstance(p)
		if err != nil {
			panic(err)
		}
		jobs = append(jobs, batchrunner.Job{
			Name:       p,
			Instance:   ins,
			StageNames: []string{prescription.StageName},
			Config:     prescription.Config,
		})
	}

	outcomes := batchrunner.Run(jobs, 0)
	ranked := batchrunner.RankByObjective(outcomes)

	fmt.Printf("%-4s %-40s %-12s %-14s %-10s\n", "rank", "instance", "status", "objective", "runtime")
	for i, o := range ranked {
		if o.Err != nil {
			fmt.Printf("%-4d %-40s error: %v\n", i+1, o.Name, o.Err)
			continue
		}
		fmt.Printf("%-4d %-40s %-12s %-14g %-10s\n", i+1, o.Name, o.Result.Status, o.Result.ObjectiveValue, o.Duration)
	}
}
