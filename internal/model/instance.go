package model

import (
	"errors"
	"fmt"
)

// EnergyTolerance is a fine absolute tolerance for energy comparisons. The
// scheduler and the feasibility checker do not reference it; the checker's
// violation test uses GrossEnergyTolerance.
const EnergyTolerance = 1e-6

// GrossEnergyTolerance is the coarser tolerance used by the feasibility
// checker's final violation test (StartTimes.ViolatedMeteringInterval).
const GrossEnergyTolerance = 0.1

// Instance is the immutable description of a scheduling problem: a set of
// Operations, a partition of [0, horizon) into MeteringIntervals, the common
// interval length L, and the maximum adversarial deviation.
//
// Instance owns its Operations and MeteringIntervals. Every other component
// borrows it and addresses operations/intervals by index.
type Instance struct {
	operations             []Operation
	meteringIntervals      []MeteringInterval
	lengthMeteringInterval int
	maxDeviation           int
	horizon                int
	maximumStartTime       int
	metadata               map[string]string
}

// NewInstance validates and constructs an Instance from scalar-or-vector
// parameters. Every []T argument must either have length numOperations (or
// numMeteringIntervals for maxEnergyConsumptions) or be handled by the caller
// via ExpandInt/ExpandFloat64 beforehand.
func NewInstance(
	numOperations int,
	releaseTimes []int,
	dueDates []int,
	processingTimes []int,
	powerConsumptions []float64,
	maxDeviation int,
	numMeteringIntervals int,
	lengthMeteringInterval int,
	maxEnergyConsumptions []float64,
	metadata map[string]string,
) (*Instance, error) {
	if numOperations <= 0 {
		return nil, errors.New("numOperations must be > 0")
	}
	if numMeteringIntervals <= 0 {
		return nil, errors.New("numMeteringIntervals must be > 0")
	}
	if lengthMeteringInterval < 1 {
		return nil, errors.New("lengthMeteringInterval must be >= 1")
	}
	if maxDeviation < 0 {
		return nil, errors.New("maxDeviation must be >= 0")
	}
	if len(releaseTimes) != numOperations || len(dueDates) != numOperations ||
		len(processingTimes) != numOperations || len(powerConsumptions) != numOperations {
		return nil, fmt.Errorf("operation parameter vectors must have length %d", numOperations)
	}
	if len(maxEnergyConsumptions) != numMeteringIntervals {
		return nil, fmt.Errorf("maxEnergyConsumptions must have length %d", numMeteringIntervals)
	}

	operations := make([]Operation, numOperations)
	maxProcessingTime := 0
	for i := 0; i < numOperations; i++ {
		if releaseTimes[i] < 0 {
			return nil, fmt.Errorf("operation %d: release time must be >= 0", i)
		}
		if processingTimes[i] < 1 {
			return nil, fmt.Errorf("operation %d: processing time must be >= 1", i)
		}
		if powerConsumptions[i] <= 0 {
			return nil, fmt.Errorf("operation %d: power consumption must be > 0", i)
		}
		operations[i] = Operation{
			Index:            i,
			ReleaseTime:      releaseTimes[i],
			DueDate:          dueDates[i],
			ProcessingTime:   processingTimes[i],
			PowerConsumption: powerConsumptions[i],
		}
		if processingTimes[i] > maxProcessingTime {
			maxProcessingTime = processingTimes[i]
		}
	}

	meteringIntervals := make([]MeteringInterval, numMeteringIntervals)
	for k := 0; k < numMeteringIntervals; k++ {
		if maxEnergyConsumptions[k] < 0 {
			return nil, fmt.Errorf("metering interval %d: max energy consumption must be >= 0", k)
		}
		meteringIntervals[k] = MeteringInterval{
			Index:                k,
			Start:                k * lengthMeteringInterval,
			End:                  (k + 1) * lengthMeteringInterval,
			MaxEnergyConsumption: maxEnergyConsumptions[k],
		}
	}

	horizon := numMeteringIntervals * lengthMeteringInterval
	maximumStartTime := horizon - (maxProcessingTime + numOperations*maxDeviation)
	if maximumStartTime < 0 {
		return nil, fmt.Errorf("instance is infeasible by construction: maximumStartTime=%d < 0", maximumStartTime)
	}

	md := metadata
	if md == nil {
		md = map[string]string{}
	}

	return &Instance{
		operations:             operations,
		meteringIntervals:      meteringIntervals,
		lengthMeteringInterval: lengthMeteringInterval,
		maxDeviation:           maxDeviation,
		horizon:                horizon,
		maximumStartTime:       maximumStartTime,
		metadata:               md,
	}, nil
}

func (ins *Instance) Operations() []Operation            { return ins.operations }
func (ins *Instance) Operation(index int) Operation       { return ins.operations[index] }
func (ins *Instance) NumOperations() int                  { return len(ins.operations) }
func (ins *Instance) MeteringIntervals() []MeteringInterval { return ins.meteringIntervals }
func (ins *Instance) MeteringInterval(index int) MeteringInterval {
	return ins.meteringIntervals[index]
}
func (ins *Instance) NumMeteringIntervals() int  { return len(ins.meteringIntervals) }
func (ins *Instance) LengthMeteringInterval() int { return ins.lengthMeteringInterval }
func (ins *Instance) MaxDeviation() int           { return ins.maxDeviation }
func (ins *Instance) Horizon() int                { return ins.horizon }
func (ins *Instance) MaximumStartTime() int       { return ins.maximumStartTime }
func (ins *Instance) Metadata() map[string]string { return ins.metadata }

func (ins *Instance) SetMetadata(key, value string) {
	ins.metadata[key] = value
}

// FirstNonZeroIntersectionMeteringInterval returns the interval containing
// startTime, or false if startTime is at or beyond the horizon.
func (ins *Instance) FirstNonZeroIntersectionMeteringInterval(startTime int) (MeteringInterval, bool) {
	idx := startTime / ins.lengthMeteringInterval
	if idx >= ins.NumMeteringIntervals() {
		return MeteringInterval{}, false
	}
	return ins.meteringIntervals[idx], true
}

// LastNonZeroIntersectionMeteringInterval returns the interval containing
// completionTime-1, i.e. the last interval an operation ending at
// completionTime actually overlaps.
func (ins *Instance) LastNonZeroIntersectionMeteringInterval(completionTime int) (MeteringInterval, bool) {
	idx := (completionTime - 1) / ins.lengthMeteringInterval
	if idx >= ins.NumMeteringIntervals() || idx < 0 {
		return MeteringInterval{}, false
	}
	return ins.meteringIntervals[idx], true
}

// ExpandInt expands a scalar-or-vector JSON field to a length-n vector.
func ExpandInt(values []int, n int) ([]int, error) {
	if len(values) == n {
		return values, nil
	}
	if len(values) == 1 {
		out := make([]int, n)
		for i := range out {
			out[i] = values[0]
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected length 1 or %d, got %d", n, len(values))
}

// ExpandFloat64 expands a scalar-or-vector JSON field to a length-n vector.
func ExpandFloat64(values []float64, n int) ([]float64, error) {
	if len(values) == n {
		return values, nil
	}
	if len(values) == 1 {
		out := make([]float64, n)
		for i := range out {
			out[i] = values[0]
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected length 1 or %d, got %d", n, len(values))
}
