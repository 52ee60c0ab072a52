// Package tabu implements tabu search over full permutations: swap and
// insert neighborhoods, aspiration against best-so-far, and a FIFO tabu
// list of whole orders.
package tabu

import (
	"math/rand"

	"rseclp/internal/feasibility"
	"rseclp/internal/fixedorder"
	"rseclp/internal/model"
	"rseclp/internal/objective"
	"rseclp/internal/solver"
	"rseclp/internal/stopwatch"
)

const specialisedKey = "tabu"

// Config holds the tunable tabu search parameters; defaultedConfig fills each
// field from the "tabu" specialised options, using its default when the
// option is absent or does not parse.
type Config struct {
	NumRestarts               int
	NumIterations             int
	NeighbourhoodSize         int
	TabuListLength            int
	MaxNonimprovingIterations int
	Seed                      int64
}

func defaultedConfig(c solver.Config) Config {
	return Config{
		NumRestarts:               c.Specialised.GetInt(specialisedKey, "numRestarts", 5),
		NumIterations:             c.Specialised.GetInt(specialisedKey, "numIterations", 100),
		NeighbourhoodSize:         c.Specialised.GetInt(specialisedKey, "neighbourhoodSize", 200),
		TabuListLength:            c.Specialised.GetInt(specialisedKey, "tabuListLength", 5),
		MaxNonimprovingIterations: c.Specialised.GetInt(specialisedKey, "maxNonimprovingIterations", -1),
		Seed:                      int64(c.Specialised.GetInt(specialisedKey, "seed", 42)),
	}
}

// TabuSearch implements solver.Solver.
type TabuSearch struct {
	Instance *model.Instance
}

func New(ins *model.Instance) *TabuSearch {
	return &TabuSearch{Instance: ins}
}

type orderKey string

func keyOf(ordered []model.Operation) orderKey {
	b := make([]byte, 0, len(ordered)*4)
	for _, op := range ordered {
		b = append(b, byte(op.Index), byte(op.Index>>8), byte(op.Index>>16), byte(op.Index>>24))
	}
	return orderKey(b)
}

func (ts *TabuSearch) Solve(cfg solver.Config) solver.Result {
	obj := cfg.Objective
	if obj == nil {
		obj = objective.TotalTardiness{}
	}
	params := defaultedConfig(cfg)
	ins := ts.Instance

	sw := stopwatch.New()
	sw.Start()

	best := solver.NewResult(ins.NumOperations(), obj.WorstValue())
	var bestOrder []model.Operation

	if cfg.UseInitStartTimes {
		if r := feasibility.Check(ins, cfg.InitStartTimes); r.Feasible {
			best.Status = solver.Feasible
			best.StartTimes = cfg.InitStartTimes.Clone()
			best.ObjectiveValue = obj.Compute(ins, best.StartTimes)
			bestOrder = best.StartTimes.OperationsOrdered(ins)
		}
	}

	rng := rand.New(rand.NewSource(params.Seed))

	for restart := 0; restart < params.NumRestarts; restart++ {
		if sw.TimeLimitReached(cfg.TimeLimit) {
			break
		}

		var currentOrder []model.Operation
		var currentStart model.StartTimes
		if restart == 0 && bestOrder != nil {
			currentOrder = append([]model.Operation(nil), bestOrder...)
			currentStart = best.StartTimes.Clone()
		} else {
			currentOrder = randomPermutation(ins, rng)
			sched := fixedorder.New(ins, fixedorder.Optimized)
			if sched.Create(currentOrder) == fixedorder.Infeasible {
				continue
			}
			currentStart = sched.StartTimes()
		}
		currentObjective := obj.Compute(ins, currentStart)

		tabuList := make([]orderKey, 0, params.TabuListLength)
		tabuSet := map[orderKey]int{}
		nonimproving := 0

		for iteration := 0; iteration < params.NumIterations; iteration++ {
			if sw.TimeLimitReached(cfg.TimeLimit) {
				return finish(best, sw)
			}
			if params.MaxNonimprovingIterations >= 0 && nonimproving > params.MaxNonimprovingIterations {
				break
			}

			var candOrder []model.Operation
			var candStart model.StartTimes
			var candObjective float64
			haveCandidate := false

			for s := 0; s < params.NeighbourhoodSize; s++ {
				trial := applyRandomMove(currentOrder, rng)
				sched := fixedorder.New(ins, fixedorder.Optimized)
				if sched.Create(trial) == fixedorder.Infeasible {
					continue
				}
				trialStart := sched.StartTimes()
				trialObjective := obj.Compute(ins, trialStart)
				k := keyOf(trial)

				isAspiring := trialObjective < best.ObjectiveValue
				if tabuSet[k] > 0 && !isAspiring {
					continue
				}

				if !haveCandidate || trialObjective < candObjective {
					candOrder = trial
					candStart = trialStart
					candObjective = trialObjective
					haveCandidate = true
				}
			}

			if !haveCandidate {
				continue
			}

			currentOrder = candOrder
			currentStart = candStart
			currentObjective = candObjective

			k := keyOf(currentOrder)
			tabuList = append(tabuList, k)
			tabuSet[k]++
			if len(tabuList) > params.TabuListLength {
				old := tabuList[0]
				tabuList = tabuList[1:]
				tabuSet[old]--
				if tabuSet[old] <= 0 {
					delete(tabuSet, old)
				}
			}

			if currentObjective < best.ObjectiveValue {
				best.Status = solver.Feasible
				best.StartTimes = currentStart.Clone()
				best.ObjectiveValue = currentObjective
				bestOrder = append([]model.Operation(nil), currentOrder...)
				nonimproving = 0
			} else {
				nonimproving++
			}
		}
	}

	return finish(best, sw)
}

func finish(best solver.Result, sw *stopwatch.Stopwatch) solver.Result {
	sw.Stop()
	best.Runtime = sw.Duration()
	return best
}

func randomPermutation(ins *model.Instance, rng *rand.Rand) []model.Operation {
	ops := append([]model.Operation(nil), ins.Operations()...)
	rng.Shuffle(len(ops), func(i, j int) { ops[i], ops[j] = ops[j], ops[i] })
	return ops
}

// applyRandomMove returns a new order derived from base by a swap or an
// insert, chosen uniformly, over a uniformly sampled distinct index pair.
func applyRandomMove(base []model.Operation, rng *rand.Rand) []model.Operation {
	trial := append([]model.Operation(nil), base...)
	p, q := distinctPair(len(trial), rng)
	if rng.Intn(2) == 0 {
		trial[p], trial[q] = trial[q], trial[p]
		return trial
	}
	op := trial[p]
	trial = append(trial[:p], trial[p+1:]...)
	if q > p {
		q--
	}
	trial = append(trial[:q], append([]model.Operation{op}, trial[q:]...)...)
	return trial
}

func distinctPair(n int, rng *rand.Rand) (int, int) {
	p := rng.Intn(n)
	q := rng.Intn(n - 1)
	if q >= p {
		q++
	}
	return p, q
}
