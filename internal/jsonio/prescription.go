package jsonio

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"rseclp/internal/branchbound"
	"rseclp/internal/heuristic"
	"rseclp/internal/model"
	"rseclp/internal/objective"
	"rseclp/internal/solver"
	"rseclp/internal/tabu"
)

// Solver stage names accepted in a SolverPrescription's solverStage.name.
const (
	StageGreedyHeuristics     = "GreedyHeuristics"
	StageTabuSearch           = "TabuSearch"
	StageBranchAndBoundOnOrder = "BranchAndBoundOnOrder"
)

type solverStageDoc struct {
	Name string            `json:"name"`
	Cfg  map[string]string `json:"cfg,omitempty"`
}

type prescriptionDoc struct {
	TimeLimitInMilliseconds *int64          `json:"timeLimitInMilliseconds,omitempty"`
	PreviousStage           string          `json:"previousStage,omitempty"`
	InitStartTimes          []int           `json:"initStartTimes,omitempty"`
	UseInitStartTimes       *bool           `json:"useInitStartTimes,omitempty"`
	SolverStage             solverStageDoc  `json:"solverStage"`
}

// Prescription is a single SolverPrescription entry, resolved into a ready
// solver.Config and the name of the solver stage it targets.
type Prescription struct {
	StageName         string
	Config            solver.Config
	UseInitStartTimes bool
}

// ReadPrescription parses a SolverPrescription JSON file. The returned
// Config's Objective is always TotalTardiness; callers building a
// multi-stage pipeline share one objective across all stages.
func ReadPrescription(path string) (Prescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Prescription{}, fmt.Errorf("jsonio: read prescription %s: %w", path, err)
	}
	var doc prescriptionDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return Prescription{}, fmt.Errorf("jsonio: parse prescription %s: %w", path, err)
	}
	if doc.SolverStage.Name == "" {
		return Prescription{}, fmt.Errorf("jsonio: prescription %s: solverStage.name is required", path)
	}

	timeLimit := time.Duration(math.MaxInt64)
	if doc.TimeLimitInMilliseconds != nil {
		timeLimit = time.Duration(*doc.TimeLimitInMilliseconds) * time.Millisecond
	}

	useInit := len(doc.InitStartTimes) > 0
	if doc.UseInitStartTimes != nil {
		useInit = *doc.UseInitStartTimes
	}

	specialised := solver.NewSpecialisedConfig()
	for k, v := range doc.SolverStage.Cfg {
		specialised.AddString(stageKey(doc.SolverStage.Name), k, v)
	}

	return Prescription{
		StageName: doc.SolverStage.Name,
		Config: solver.Config{
			TimeLimit:         timeLimit,
			Objective:         objective.TotalTardiness{},
			UseInitStartTimes: useInit,
			InitStartTimes:    model.StartTimes(doc.InitStartTimes),
			Specialised:       specialised,
		},
		UseInitStartTimes: useInit,
	}, nil
}

func stageKey(name string) string {
	switch name {
	case StageGreedyHeuristics:
		return "greedy"
	case StageTabuSearch:
		return "tabu"
	default:
		return "branchbound"
	}
}

// ResolveStage instantiates the named solver stage over ins.
func ResolveStage(name string, ins *model.Instance) (solver.Solver, error) {
	switch name {
	case StageGreedyHeuristics:
		return heuristic.New(ins), nil
	case StageTabuSearch:
		return tabu.New(ins), nil
	case StageBranchAndBoundOnOrder:
		return branchbound.New(ins), nil
	default:
		return nil, fmt.Errorf("jsonio: unknown solver stage %q", name)
	}
}
