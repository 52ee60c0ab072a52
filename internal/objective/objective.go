// Package objective implements the scheduling objective (total tardiness)
// and the Chu preemptive lower bound used to prune branch-and-bound search.
package objective

import "rseclp/internal/model"

// Objective is the capability every solver evaluates candidate schedules
// against. Total tardiness is the only implementation in scope; the
// interface exists so solvers don't hard-code it, mirroring the source's
// Objective base class.
type Objective interface {
	// WorstValue is a value no real schedule can beat, used to seed results.
	WorstValue() float64
	// IsBetter reports whether a is strictly preferable to b.
	IsBetter(a, b float64) bool
	// Compute returns the objective value of a full schedule.
	Compute(ins *model.Instance, st model.StartTimes) float64
}
