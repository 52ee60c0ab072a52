// Command datasetgen synthesizes random scheduling instances for
// benchmarking. It is a small cobra-based CLI: "generate" emits one instance,
// "sweep" emits a grid of instances across parameter combinations, mirroring
// the reference dataset-generator family.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"rseclp/internal/datasetgen"
	"rseclp/internal/heuristic"
	"rseclp/internal/jsonio"
	"rseclp/internal/model"
	"rseclp/internal/objective"
	"rseclp/internal/solver"
)

func main() {
	root := &cobra.Command{
		Use:   "datasetgen",
		Short: "Generate random robust scheduling instances",
	}
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newSweepCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newGenerateCmd() *cobra.Command {
	var (
		numOperations int
		intervalsMul  int
		alpha1        float64
		alpha2        float64
		alpha3        float64
		maxDeviation  int
		seed          int64
		out           string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a single random instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			ins, err := datasetgen.Generate(datasetgen.Params{
				NumOperations:           numOperations,
				NumMeteringIntervalsMul: intervalsMul,
				Alpha1:                  alpha1,
				Alpha2:                  alpha2,
				Alpha3:                  alpha3,
				MaxDeviation:            maxDeviation,
				Seed:                    seed,
			})
			if err != nil {
				return err
			}
			if err := requireFeasible(ins); err != nil {
				return err
			}
			return jsonio.WriteInstance(out, ins)
		},
	}

	cmd.Flags().IntVar(&numOperations, "num-operations", 10, "number of operations")
	cmd.Flags().IntVar(&intervalsMul, "intervals-mul", 2, "metering intervals per operation")
	cmd.Flags().Float64Var(&alpha1, "alpha1", 1.0, "release-time interarrival scale")
	cmd.Flags().Float64Var(&alpha2, "alpha2", 1.0, "due-date spread scale")
	cmd.Flags().Float64Var(&alpha3, "alpha3", 0.5, "minimum energy draw fraction")
	cmd.Flags().IntVar(&maxDeviation, "max-deviation", 0, "adversarial deviation bound")
	cmd.Flags().Int64Var(&seed, "seed", 42, "PRNG seed")
	cmd.Flags().StringVar(&out, "out", "instance.json", "output instance path")

	return cmd
}

func newSweepCmd() *cobra.Command {
	var (
		numOperations string
		intervalsMul  string
		alpha1        string
		alpha2        string
		alpha3        string
		maxDeviation  string
		numInstances  int
		outDir        string
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Generate a grid of instances across parameter combinations",
		RunE: func(cmd *cobra.Command, args []string) error {
			nOps, err := parseInts(numOperations)
			if err != nil {
				return err
			}
			mults, err := parseInts(intervalsMul)
			if err != nil {
				return err
			}
			a1s, err := parseFloats(alpha1)
			if err != nil {
				return err
			}
			a2s, err := parseFloats(alpha2)
			if err != nil {
				return err
			}
			a3s, err := parseFloats(alpha3)
			if err != nil {
				return err
			}
			devs, err := parseInts(maxDeviation)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			combo := 0
			var seed int64 = 1
			for _, n := range nOps {
				for _, mul := range mults {
					for _, a1 := range a1s {
						for _, a2 := range a2s {
							for _, a3 := range a3s {
								for _, dev := range devs {
									comboDir := filepath.Join(outDir, strconv.Itoa(combo), "instances")
									if err := os.MkdirAll(comboDir, 0o755); err != nil {
										return err
									}
									for i := 0; i < numInstances; i++ {
										ins, err := datasetgen.Generate(datasetgen.Params{
											NumOperations:           n,
											NumMeteringIntervalsMul: mul,
											Alpha1:                  a1,
											Alpha2:                  a2,
											Alpha3:                  a3,
											MaxDeviation:            dev,
											Seed:                    seed,
										})
										seed++
										if err != nil {
											return err
										}
										if err := requireFeasible(ins); err != nil {
											return err
										}
										path := filepath.Join(comboDir, strconv.Itoa(i)+".json")
										if err := jsonio.WriteInstance(path, ins); err != nil {
											return err
										}
									}
									combo++
								}
							}
						}
					}
				}
			}
			fmt.Printf("wrote %d parameter combinations to %s\n", combo, outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&numOperations, "num-operations", "10", "comma-separated operation counts")
	cmd.Flags().StringVar(&intervalsMul, "intervals-mul", "2", "comma-separated metering-interval multipliers")
	cmd.Flags().StringVar(&alpha1, "alpha1", "1.0", "comma-separated alpha1 values")
	cmd.Flags().StringVar(&alpha2, "alpha2", "1.0", "comma-separated alpha2 values")
	cmd.Flags().StringVar(&alpha3, "alpha3", "0.5", "comma-separated alpha3 values")
	cmd.Flags().StringVar(&maxDeviation, "max-deviation", "0", "comma-separated max-deviation values")
	cmd.Flags().IntVar(&numInstances, "num-instances", 5, "instances generated per combination")
	cmd.Flags().StringVar(&outDir, "out-dir", "datasets", "output directory root")

	return cmd
}

// requireFeasible rejects a generated instance that the tardiness-ordered
// greedy heuristic cannot schedule at all, mirroring the reference
// generator's sanity check.
func requireFeasible(ins *model.Instance) error {
	specialised := solver.NewSpecialisedConfig()
	specialised.AddString("greedy", "rule", "tardiness")
	cfg := solver.Config{
		TimeLimit:   time.Hour,
		Objective:   objective.TotalTardiness{},
		Specialised: specialised,
	}
	result := heuristic.New(ins).Solve(cfg)
	if result.Status != solver.Feasible {
		return fmt.Errorf("generated instance is infeasible")
	}
	return nil
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}
