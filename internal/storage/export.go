package storage

import (
	"encoding/json"
	"io"
	"os"

	"pharmsim/internal/pharma"
)

// ExportData is the JSON export shape for one run.
type ExportData struct {
	ID        string             `json:"id"`
	Drug      string             `json:"drug"`
	Model     string             `json:"model"`
	Mechanism string             `json:"mechanism"`
	Unit      string             `json:"unit"`
	Points    int                `json:"points"`
	Doses     []float64          `json:"doses"`
	Responses []float64          `json:"responses"`
	Control   []float64          `json:"control,omitempty"`
	Params    map[string]float64 `json:"params"`
	Metrics   map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run as indented JSON to w.
func ExportJSON(w io.Writer, meta *RunMetadata, samples, control pharma.Curve) error {
	data := ExportData{
		ID:        meta.ID,
		Drug:      meta.Drug,
		Model:     meta.Model,
		Mechanism: meta.Mechanism,
		Unit:      meta.Unit,
		Points:    len(samples),
		Doses:     samples.Doses(),
		Responses: samples.Responses(),
		Params:    meta.Params,
		Metrics:   meta.Metrics,
	}
	if control != nil {
		data.Control = control.Responses()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONStdout writes a run as indented JSON to standard output.
func ExportJSONStdout(meta *RunMetadata, samples, control pharma.Curve) error {
	return ExportJSON(os.Stdout, meta, samples, control)
}
