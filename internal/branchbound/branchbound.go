// Package branchbound implements exact search over orderings: a
// depth-first branch-and-bound pruned by the Chu lower bound, and a
// brute-force enumerator kept as an admissibility cross-check.
package branchbound

import (
	"sort"
	"time"

	"rseclp/internal/feasibility"
	"rseclp/internal/fixedorder"
	"rseclp/internal/model"
	"rseclp/internal/objective"
	"rseclp/internal/solver"
	"rseclp/internal/stopwatch"
)

// BranchAndBoundOnOrder implements solver.Solver.
type BranchAndBoundOnOrder struct {
	Instance *model.Instance
}

func New(ins *model.Instance) *BranchAndBoundOnOrder {
	return &BranchAndBoundOnOrder{Instance: ins}
}

func (b *BranchAndBoundOnOrder) Solve(cfg solver.Config) solver.Result {
	obj := cfg.Objective
	if obj == nil {
		obj = objective.TotalTardiness{}
	}
	ins := b.Instance
	n := ins.NumOperations()

	sw := stopwatch.New()
	sw.Start()

	best := solver.NewResult(n, obj.WorstValue())
	if cfg.UseInitStartTimes {
		if r := feasibility.Check(ins, cfg.InitStartTimes); r.Feasible {
			best.Status = solver.Feasible
			best.StartTimes = cfg.InitStartTimes.Clone()
			best.ObjectiveValue = obj.Compute(ins, best.StartTimes)
		}
	}

	remaining := make(map[int]struct{}, n)
	for _, op := range ins.Operations() {
		remaining[op.Index] = struct{}{}
	}

	s := &search{
		ins:       ins,
		tt:        objective.TotalTardiness{},
		sw:        sw,
		deadline:  cfg.TimeLimit,
		best:      &best,
		ordered:   make([]model.Operation, 0, n),
		scheduler: fixedorder.New(ins, fixedorder.Optimized),
	}

	deadlineHit := s.recurse(remaining)

	sw.Stop()
	best.Runtime = sw.Duration()
	if !deadlineHit {
		switch best.Status {
		case solver.Feasible:
			best.Status = solver.Optimal
		case solver.NoSolution:
			best.Status = solver.Infeasible
		}
	}
	return best
}

type search struct {
	ins       *model.Instance
	tt        objective.TotalTardiness
	sw        *stopwatch.Stopwatch
	deadline  time.Duration
	best      *solver.Result
	ordered   []model.Operation
	scheduler fixedorder.Scheduler
}

// recurse explores the subtree rooted at the current prefix (s.ordered plus
// whatever start times s.scheduler already holds for it). It returns true
// if the deadline fired anywhere in the subtree.
func (s *search) recurse(remaining map[int]struct{}) bool {
	if s.sw.TimeLimitReached(s.deadline) {
		return true
	}

	if len(remaining) == 0 {
		value := s.tt.Compute(s.ins, s.scheduler.StartTimes())
		if value < s.best.ObjectiveValue {
			s.best.Status = solver.Feasible
			s.best.StartTimes = s.scheduler.StartTimes().Clone()
			s.best.ObjectiveValue = value
		}
		return false
	}

	lowerBound := s.tt.ComputeLowerBoundChu(s.ins, s.ordered, s.scheduler.StartTimes(), remaining)
	if !(lowerBound < s.best.ObjectiveValue) {
		return false
	}

	indices := make([]int, 0, len(remaining))
	for idx := range remaining {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	candidates := make([]model.Operation, 0, len(indices))
	for _, idx := range indices {
		candidates = append(candidates, s.ins.Operation(idx))
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		return a.DueDate < b.DueDate || (a.DueDate == b.DueDate && a.Index < b.Index)
	})

	position := len(s.ordered)
	for _, op := range candidates {
		s.ordered = append(s.ordered, op)
		result := s.scheduler.AppendPosition(s.ordered, position)
		if result == fixedorder.Feasible {
			delete(remaining, op.Index)
			if s.recurse(remaining) {
				s.ordered = s.ordered[:position]
				return true
			}
			remaining[op.Index] = struct{}{}
		}
		s.ordered = s.ordered[:position]
	}
	return false
}

// BruteForce enumerates every permutation and keeps the best feasible one.
// It is exponential and exists only as a correctness oracle for small
// instances in tests, never as a production solver choice.
type BruteForce struct {
	Instance *model.Instance
}

func NewBruteForce(ins *model.Instance) *BruteForce {
	return &BruteForce{Instance: ins}
}

func (b *BruteForce) Solve(cfg solver.Config) solver.Result {
	obj := cfg.Objective
	if obj == nil {
		obj = objective.TotalTardiness{}
	}
	ins := b.Instance
	n := ins.NumOperations()

	sw := stopwatch.New()
	sw.Start()

	best := solver.NewResult(n, obj.WorstValue())
	deadlineHit := false

	ops := append([]model.Operation(nil), ins.Operations()...)
	permute(ops, 0, func(perm []model.Operation) bool {
		if sw.TimeLimitReached(cfg.TimeLimit) {
			deadlineHit = true
			return false
		}
		sched := fixedorder.New(ins, fixedorder.Optimized)
		if sched.Create(perm) == fixedorder.Infeasible {
			return true
		}
		value := obj.Compute(ins, sched.StartTimes())
		if value < best.ObjectiveValue {
			best.Status = solver.Feasible
			best.StartTimes = sched.StartTimes().Clone()
			best.ObjectiveValue = value
		}
		return true
	})

	sw.Stop()
	best.Runtime = sw.Duration()
	if !deadlineHit && best.Status == solver.Feasible {
		best.Status = solver.Optimal
	} else if !deadlineHit && best.Status == solver.NoSolution {
		best.Status = solver.Infeasible
	}
	return best
}

// permute calls visit with every permutation of items (recursive
// swap-and-restore from position k), stopping early if visit returns false.
func permute(items []model.Operation, k int, visit func([]model.Operation) bool) bool {
	if k == len(items) {
		return visit(items)
	}
	for i := k; i < len(items); i++ {
		items[k], items[i] = items[i], items[k]
		if !permute(items, k+1, visit) {
			items[k], items[i] = items[i], items[k]
			return false
		}
		items[k], items[i] = items[i], items[k]
	}
	return true
}
