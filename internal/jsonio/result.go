package jsonio

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"rseclp/internal/model"
	"rseclp/internal/solver"
)

type resultDoc struct {
	Status                      int               `json:"status"`
	StartTimes                  []int             `json:"startTimes"`
	ObjectiveValue              float64           `json:"objectiveValue"`
	SolverRuntimeInMilliseconds int64             `json:"solverRuntimeInMilliseconds"`
	Optional                    map[string]string `json:"optional,omitempty"`
}

// WriteResult serializes a solver.Result to the SolverResult JSON format.
func WriteResult(path string, result solver.Result) error {
	doc := resultDoc{
		Status:                      int(result.Status),
		StartTimes:                  []int(result.StartTimes),
		ObjectiveValue:              result.ObjectiveValue,
		SolverRuntimeInMilliseconds: result.Runtime.Milliseconds(),
		Optional:                    result.Optional,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonio: marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("jsonio: write result %s: %w", path, err)
	}
	return nil
}

// ReadResult parses a SolverResult JSON file.
func ReadResult(path string) (solver.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return solver.Result{}, fmt.Errorf("jsonio: read result %s: %w", path, err)
	}
	var doc resultDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return solver.Result{}, fmt.Errorf("jsonio: parse result %s: %w", path, err)
	}
	return solver.Result{
		Status:         solver.Status(doc.Status),
		StartTimes:     model.StartTimes(doc.StartTimes),
		ObjectiveValue: doc.ObjectiveValue,
		Runtime:        time.Duration(doc.SolverRuntimeInMilliseconds) * time.Millisecond,
		Optional:       doc.Optional,
	}, nil
}
