package batchrunner

import (
	"encoding/csv"
	"os"
	"strconv"
)

// WriteSummaryCSV writes one row per outcome: name, status, objective,
// runtime in milliseconds, and any error encountered.
func WriteSummaryCSV(path string, outcomes []Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"name", "status", "objective_value", "runtime_ms", "error"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, o := range outcomes {
		errText := ""
		if o.Err != nil {
			errText = o.Err.Error()
		}
		row := []string{
			o.Name,
			o.Result.Status.String(),
			strconv.FormatFloat(o.Result.ObjectiveValue, 'f', 6, 64),
			strconv.FormatInt(o.Duration.Milliseconds(), 10),
			errText,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
