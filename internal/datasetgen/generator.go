// Package datasetgen synthesizes random scheduling instances for benchmarking,
// following the release-time/due-date/power-consumption distributions used to
// build the reference instance families (exponential interarrivals, a
// branch-and-bound-literature due-date spread, and energy draws inspired by
// a CP/MILP energy-cost scheduling benchmark).
package datasetgen

import (
	"math"
	"math/rand"

	"rseclp/internal/model"
)

// Params controls one instance's random generation. Alpha1 scales the mean
// release-time interarrival gap (as a multiple of average processing time),
// Alpha2 scales the spread of due dates around each operation's completion,
// and Alpha3 sets the low end of the per-operation energy draw as a fraction
// of MaxEnergyConsumption.
type Params struct {
	NumOperations           int
	NumMeteringIntervalsMul int
	Alpha1                  float64
	Alpha2                  float64
	Alpha3                  float64
	MaxDeviation            int
	LengthMeteringInterval  int
	MaxEnergyConsumption    float64
	Seed                    int64
}

// Generate builds one random Instance from p.
func Generate(p Params) (*model.Instance, error) {
	rng := rand.New(rand.NewSource(p.Seed))

	lengthMeteringInterval := p.LengthMeteringInterval
	if lengthMeteringInterval <= 0 {
		lengthMeteringInterval = 15
	}
	maxEnergy := p.MaxEnergyConsumption
	if maxEnergy <= 0 {
		maxEnergy = 100
	}
	numMeteringIntervals := p.NumMeteringIntervalsMul * p.NumOperations
	if numMeteringIntervals <= 0 {
		numMeteringIntervals = p.NumOperations
	}

	processingTimes := make([]int, p.NumOperations)
	sumProcessingTimes := 0
	for j := range processingTimes {
		processingTimes[j] = 1 + rng.Intn(lengthMeteringInterval)
		sumProcessingTimes += processingTimes[j]
	}
	averageProcessingTime := float64(sumProcessingTimes) / float64(p.NumOperations)

	meanInterarrival := p.Alpha1 * averageProcessingTime
	if meanInterarrival <= 0 {
		meanInterarrival = 1
	}
	releaseTimes := make([]int, p.NumOperations)
	currentTime := 0
	for j := range releaseTimes {
		currentTime += int(rng.ExpFloat64() * meanInterarrival)
		releaseTimes[j] = currentTime
	}

	dueDateSpread := int(math.Ceil(p.Alpha2 * float64(sumProcessingTimes)))
	if dueDateSpread < 0 {
		dueDateSpread = 0
	}
	dueDates := make([]int, p.NumOperations)
	for j := range dueDates {
		diff := 0
		if dueDateSpread > 0 {
			diff = rng.Intn(dueDateSpread + 1)
		}
		dueDates[j] = releaseTimes[j] + processingTimes[j] + diff
	}

	lowEnergy := p.Alpha3 * maxEnergy
	if lowEnergy > maxEnergy {
		lowEnergy = maxEnergy
	}
	powerConsumptions := make([]float64, p.NumOperations)
	for j := range powerConsumptions {
		energy := lowEnergy + rng.Float64()*(maxEnergy-lowEnergy)
		powerConsumptions[j] = energy / float64(processingTimes[j])
	}

	maxEnergyConsumptions := make([]float64, numMeteringIntervals)
	for k := range maxEnergyConsumptions {
		maxEnergyConsumptions[k] = maxEnergy
	}

	return model.NewInstance(
		p.NumOperations, releaseTimes, dueDates, processingTimes, powerConsumptions,
		p.MaxDeviation, numMeteringIntervals, lengthMeteringInterval,
		maxEnergyConsumptions, map[string]string{},
	)
}
