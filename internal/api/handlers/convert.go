package handlers

import (
	"rseclp/internal/model"
	"rseclp/internal/solver"

	"rseclp/internal/api/models"
)

func toInstance(p models.InstancePayload) (*model.Instance, error) {
	return model.NewInstance(
		p.NumOperations,
		p.ReleaseTimes,
		p.DueDates,
		p.ProcessingTimes,
		p.PowerConsumptions,
		p.MaxDeviation,
		p.NumMeteringIntervals,
		p.LengthMeteringInterval,
		p.MaxEnergyConsumptions,
		p.Metadata,
	)
}

func fromInstance(ins *model.Instance) models.InstancePayload {
	n := ins.NumOperations()
	releaseTimes := make([]int, n)
	dueDates := make([]int, n)
	processingTimes := make([]int, n)
	powerConsumptions := make([]float64, n)
	for i, op := range ins.Operations() {
		releaseTimes[i] = op.ReleaseTime
		dueDates[i] = op.DueDate
		processingTimes[i] = op.ProcessingTime
		powerConsumptions[i] = op.PowerConsumption
	}

	maxEnergyConsumptions := make([]float64, ins.NumMeteringIntervals())
	for i, mi := range ins.MeteringIntervals() {
		maxEnergyConsumptions[i] = mi.MaxEnergyConsumption
	}

	return models.InstancePayload{
		NumOperations:          n,
		ReleaseTimes:           releaseTimes,
		DueDates:               dueDates,
		ProcessingTimes:        processingTimes,
		PowerConsumptions:      powerConsumptions,
		MaxDeviation:           ins.MaxDeviation(),
		NumMeteringIntervals:   ins.NumMeteringIntervals(),
		LengthMeteringInterval: ins.LengthMeteringInterval(),
		MaxEnergyConsumptions:  maxEnergyConsumptions,
		Metadata:               ins.Metadata(),
	}
}

func toSpecialisedConfig(stages []models.StagePayload) solver.SpecialisedConfig {
	specialised := solver.NewSpecialisedConfig()
	for _, stage := range stages {
		key := stageSpecialisedKey(stage.Name)
		for k, v := range stage.Cfg {
			specialised.AddString(key, k, v)
		}
	}
	return specialised
}

// stageSpecialisedKey maps a solverStage.name to the specialized-config key
// its resolved solver.Solver reads its own options from.
func stageSpecialisedKey(name string) string {
	switch name {
	case "GreedyHeuristics":
		return "greedy"
	case "TabuSearch":
		return "tabu"
	default:
		return "branchbound"
	}
}
