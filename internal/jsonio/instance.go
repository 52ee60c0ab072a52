// Package jsonio reads and writes the three JSON wire formats: Instance,
// SolverResult, and SolverPrescription. Every scalar-or-vector field expands
// through model.ExpandInt/ExpandFloat64 before validation.
package jsonio

import (
	"encoding/json"
	"fmt"
	"os"

	"rseclp/internal/model"
)

// scalarOrVectorInt/Float64 unmarshal either a bare number or an array of
// numbers into a slice, leaving expansion to the caller (the expected length
// isn't known until numOperations/numMeteringIntervals is parsed).
type scalarOrVectorInt []int

func (v *scalarOrVectorInt) UnmarshalJSON(data []byte) error {
	var scalar int
	if err := json.Unmarshal(data, &scalar); err == nil {
		*v = []int{scalar}
		return nil
	}
	var vec []int
	if err := json.Unmarshal(data, &vec); err != nil {
		return err
	}
	*v = vec
	return nil
}

type scalarOrVectorFloat64 []float64

func (v *scalarOrVectorFloat64) UnmarshalJSON(data []byte) error {
	var scalar float64
	if err := json.Unmarshal(data, &scalar); err == nil {
		*v = []float64{scalar}
		return nil
	}
	var vec []float64
	if err := json.Unmarshal(data, &vec); err != nil {
		return err
	}
	*v = vec
	return nil
}

type instanceDoc struct {
	NumOperations          int                   `json:"numOperations"`
	ReleaseTimes           scalarOrVectorInt     `json:"releaseTimes"`
	DueDates               scalarOrVectorInt     `json:"dueDates"`
	ProcessingTimes        scalarOrVectorInt     `json:"processingTimes"`
	PowerConsumptions      scalarOrVectorFloat64 `json:"powerConsumptions"`
	MaxDeviation           int                   `json:"maxDeviation"`
	NumMeteringIntervals   int                   `json:"numMeteringIntervals"`
	LengthMeteringInterval int                   `json:"lengthMeteringInterval"`
	MaxEnergyConsumptions  scalarOrVectorFloat64 `json:"maxEnergyConsumptions"`
	Metadata               map[string]string     `json:"metadata,omitempty"`
}

// ReadInstance parses an Instance file, expanding scalar fields to vectors.
func ReadInstance(path string) (*model.Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("jsonio: read instance %s: %w", path, err)
	}
	var doc instanceDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("jsonio: parse instance %s: %w", path, err)
	}

	releaseTimes, err := model.ExpandInt(doc.ReleaseTimes, doc.NumOperations)
	if err != nil {
		return nil, fmt.Errorf("jsonio: releaseTimes: %w", err)
	}
	dueDates, err := model.ExpandInt(doc.DueDates, doc.NumOperations)
	if err != nil {
		return nil, fmt.Errorf("jsonio: dueDates: %w", err)
	}
	processingTimes, err := model.ExpandInt(doc.ProcessingTimes, doc.NumOperations)
	if err != nil {
		return nil, fmt.Errorf("jsonio: processingTimes: %w", err)
	}
	powerConsumptions, err := model.ExpandFloat64(doc.PowerConsumptions, doc.NumOperations)
	if err != nil {
		return nil, fmt.Errorf("jsonio: powerConsumptions: %w", err)
	}
	maxEnergyConsumptions, err := model.ExpandFloat64(doc.MaxEnergyConsumptions, doc.NumMeteringIntervals)
	if err != nil {
		return nil, fmt.Errorf("jsonio: maxEnergyConsumptions: %w", err)
	}

	ins, err := model.NewInstance(
		doc.NumOperations, releaseTimes, dueDates, processingTimes, powerConsumptions,
		doc.MaxDeviation, doc.NumMeteringIntervals, doc.LengthMeteringInterval,
		maxEnergyConsumptions, doc.Metadata,
	)
	if err != nil {
		return nil, fmt.Errorf("jsonio: %s: %w", path, err)
	}
	return ins, nil
}

// WriteInstance writes ins back out bit-exact with its vectors fully
// expanded (no scalar compaction on write).
func WriteInstance(path string, ins *model.Instance) error {
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

	m := ins.NumMeteringIntervals()
	maxEnergy := make([]float64, m)
	for i, mi := range ins.MeteringIntervals() {
		maxEnergy[i] = mi.MaxEnergyConsumption
	}

	doc := struct {
		NumOperations          int               `json:"numOperations"`
		ReleaseTimes           []int             `json:"releaseTimes"`
		DueDates               []int             `json:"dueDates"`
		ProcessingTimes        []int             `json:"processingTimes"`
		PowerConsumptions      []float64         `json:"powerConsumptions"`
		MaxDeviation           int               `json:"maxDeviation"`
		NumMeteringIntervals   int               `json:"numMeteringIntervals"`
		LengthMeteringInterval int               `json:"lengthMeteringInterval"`
		MaxEnergyConsumptions  []float64         `json:"maxEnergyConsumptions"`
		Metadata               map[string]string `json:"metadata,omitempty"`
	}{
		NumOperations:          n,
		ReleaseTimes:           releaseTimes,
		DueDates:               dueDates,
		ProcessingTimes:        processingTimes,
		PowerConsumptions:      powerConsumptions,
		MaxDeviation:           ins.MaxDeviation(),
		NumMeteringIntervals:   m,
		LengthMeteringInterval: ins.LengthMeteringInterval(),
		MaxEnergyConsumptions:  maxEnergy,
		Metadata:               ins.Metadata(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonio: marshal instance: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("jsonio: write instance %s: %w", path, err)
	}
	return nil
}
