// Package heuristic implements the greedy construction rules: each produces
// one permutation and schedules it via the fixed-order scheduler, surfacing
// FEASIBLE when the resulting order survives the energy caps and NO_SOLUTION
// when it does not.
package heuristic

import (
	"math/rand"
	"sort"

	"rseclp/internal/fixedorder"
	"rseclp/internal/model"
	"rseclp/internal/objective"
	"rseclp/internal/solver"
)

// Rule selects the ordering key used to build a permutation.
type Rule int

const (
	DueDates Rule = iota
	ReleaseTimes
	ProcessingTimes
	PowerConsumptions
	Random
	Tardiness
)

// Direction controls ascending/descending order for the simple key-sort
// rules; it has no effect on Random or Tardiness.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Heuristic implements solver.Solver by constructing a single permutation
// per Config.Specialised options and scheduling it.
type Heuristic struct {
	Instance *model.Instance
}

const specialisedKey = "greedy"

func New(ins *model.Instance) *Heuristic {
	return &Heuristic{Instance: ins}
}

func (h *Heuristic) Solve(cfg solver.Config) solver.Result {
	obj := cfg.Objective
	if obj == nil {
		obj = objective.TotalTardiness{}
	}
	result := solver.NewResult(h.Instance.NumOperations(), obj.WorstValue())

	rule := parseRule(cfg.Specialised.GetString(specialisedKey, "rule", "due_dates"))
	direction := Ascending
	if !cfg.Specialised.GetBool(specialisedKey, "ascending", true) {
		direction = Descending
	}
	seed := int64(cfg.Specialised.GetInt(specialisedKey, "seed", 42))

	var ordered []model.Operation
	if rule == Tardiness {
		var feasible bool
		ordered, result.StartTimes, feasible = h.buildTardinessOrder(obj)
		if !feasible {
			result.Status = solver.NoSolution
			return result
		}
	} else {
		ordered = h.buildSortedOrder(rule, direction, seed)
		sched := fixedorder.New(h.Instance, fixedorder.Optimized)
		if sched.Create(ordered) == fixedorder.Infeasible {
			result.Status = solver.NoSolution
			return result
		}
		result.StartTimes = sched.StartTimes()
	}

	result.Status = solver.Feasible
	result.ObjectiveValue = obj.Compute(h.Instance, result.StartTimes)
	return result
}

func parseRule(name string) Rule {
	switch name {
	case "release_times":
		return ReleaseTimes
	case "processing_times":
		return ProcessingTimes
	case "power_consumptions":
		return PowerConsumptions
	case "random":
		return Random
	case "tardiness":
		return Tardiness
	default:
		return DueDates
	}
}

func (h *Heuristic) buildSortedOrder(rule Rule, direction Direction, seed int64) []model.Operation {
	ops := append([]model.Operation(nil), h.Instance.Operations()...)

	if rule == Random {
		rng := rand.New(rand.NewSource(seed))
		rng.Shuffle(len(ops), func(i, j int) { ops[i], ops[j] = ops[j], ops[i] })
		return ops
	}

	var key func(model.Operation) int
	switch rule {
	case ReleaseTimes:
		key = func(o model.Operation) int { return o.ReleaseTime }
	case ProcessingTimes:
		key = func(o model.Operation) int { return o.ProcessingTime }
	case PowerConsumptions:
		key = func(o model.Operation) int { return int(o.PowerConsumption * 1e6) }
	default:
		key = func(o model.Operation) int { return o.DueDate }
	}

	sort.SliceStable(ops, func(i, j int) bool {
		if direction == Descending {
			return key(ops[i]) > key(ops[j])
		}
		return key(ops[i]) < key(ops[j])
	})
	return ops
}

// buildTardinessOrder grows a permutation one position at a time, at each
// step picking the remaining operation whose feasible placement minimizes a
// look-ahead objective: its own tardiness plus the tardiness every other
// remaining operation would incur if released no earlier than this
// operation's completion time. Returns feasible=false (empty order) if no
// remaining operation can be placed at some position.
func (h *Heuristic) buildTardinessOrder(obj objective.Objective) ([]model.Operation, model.StartTimes, bool) {
	ins := h.Instance
	n := ins.NumOperations()
	remainingIndices := make([]int, 0, n)
	for _, op := range ins.Operations() {
		remainingIndices = append(remainingIndices, op.Index)
	}

	ordered := make([]model.Operation, 0, n)
	tt := objective.TotalTardiness{}
	sort.Ints(remainingIndices)

	for position := 0; position < n; position++ {
		bestIndex := -1
		bestObjective := tt.WorstValue()
		bestCompletion := 0

		for _, idx := range remainingIndices {
			candidate := ins.Operation(idx)
			trialOrder := append(append([]model.Operation(nil), ordered...), candidate)
			sched := fixedorder.New(ins, fixedorder.Optimized)
			if sched.Create(trialOrder) == fixedorder.Infeasible {
				continue
			}
			completion := candidate.CompletionTime(sched.StartTimes()[candidate.Index])

			lookahead := float64(maxInt(0, completion-candidate.DueDate))
			for _, other := range remainingIndices {
				if other == idx {
					continue
				}
				o := ins.Operation(other)
				start := maxInt(completion, o.ReleaseTime)
				lookahead += float64(maxInt(0, start+o.ProcessingTime-o.DueDate))
			}

			// remainingIndices is iterated in increasing order, so on a tie
			// the first (smallest-index) candidate already won; only a
			// strictly smaller completion time can still displace it.
			if lookahead < bestObjective || (lookahead == bestObjective && bestIndex >= 0 && completion < bestCompletion) {
				bestIndex = idx
				bestObjective = lookahead
				bestCompletion = completion
			}
		}

		if bestIndex < 0 {
			return nil, nil, false
		}

		ordered = append(ordered, ins.Operation(bestIndex))
		for i, idx := range remainingIndices {
			if idx == bestIndex {
				remainingIndices = append(remainingIndices[:i], remainingIndices[i+1:]...)
				break
			}
		}
	}

	sched := fixedorder.New(ins, fixedorder.Optimized)
	if sched.Create(ordered) == fixedorder.Infeasible {
		return nil, nil, false
	}
	return ordered, sched.StartTimes(), true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
