// Package assay orchestrates one virtual dose-response experiment: it
// binds a library drug (plus overrides) to a model and mechanism, samples
// the curve, and computes summary metrics.
package assay

import (
	"fmt"

	"pharmsim/internal/library"
	"pharmsim/internal/pharma"
)

// Config describes one assay run.
type Config struct {
	Drug      string
	Model     string // "hill" or "emax"
	Mechanism string // "none", "competitive", "noncompetitive"
	DoseMin   float64
	DoseMax   float64
	Points    int
	Mech      Mechanism
	Overrides map[string]float64 // baseline/emax/ec50/hill replacements
}

// Result is the outcome of one assay.
type Result struct {
	Drug    library.Drug
	Samples pharma.Curve
	Control pharma.Curve // unantagonized curve, nil when mechanism is "none"
	Metrics map[string]float64
}

// Run executes the assay described by cfg against the given library.
func Run(lib *library.Library, reg *Registry, cfg Config) (*Result, error) {
	drug, err := lib.Get(cfg.Drug)
	if err != nil {
		return nil, err
	}

	base := drug.HillModel()
	for name, v := range cfg.Overrides {
		if err := base.SetParam(name, v); err != nil {
			return nil, err
		}
	}

	doseMin, doseMax := cfg.DoseMin, cfg.DoseMax
	if doseMin == 0 && doseMax == 0 {
		doseMin, doseMax = drug.DoseMin, drug.DoseMax
	}

	mechanism := cfg.Mechanism
	if mechanism == "" {
		mechanism = "none"
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = "hill"
	}

	agonist, err := reg.GetModel(modelName, base)
	if err != nil {
		return nil, err
	}

	res := &Result{Drug: drug, Metrics: make(map[string]float64)}

	if mechanism == "none" {
		res.Samples, err = pharma.Compute(agonist, doseMin, doseMax, cfg.Points)
		if err != nil {
			return nil, err
		}
	} else {
		hill, ok := agonist.(*pharma.Hill)
		if !ok {
			return nil, fmt.Errorf("mechanism %s requires the hill model", mechanism)
		}
		wrapped, err := reg.GetMechanism(mechanism, hill, cfg.Mech)
		if err != nil {
			return nil, err
		}
		res.Samples, err = pharma.Compute(wrapped, doseMin, doseMax, cfg.Points)
		if err != nil {
			return nil, err
		}
		res.Control, err = pharma.Compute(hill, doseMin, doseMax, cfg.Points)
		if err != nil {
			return nil, err
		}
	}

	fillMetrics(res, mechanism, cfg.Mech)
	return res, nil
}

// fillMetrics computes summary metrics; curves too flat to analyze simply
// omit the affected entries.
func fillMetrics(res *Result, mechanism string, mech Mechanism) {
	if max, err := pharma.MaxResponse(res.Samples); err == nil {
		res.Metrics["emax_observed"] = max
	}
	if ec50, err := pharma.EstimateEC50(res.Samples); err == nil {
		res.Metrics["ec50_estimated"] = ec50
	}
	if slope, err := pharma.EstimateHillSlope(res.Samples); err == nil {
		res.Metrics["hill_slope"] = slope
	}

	if mechanism != "competitive" || res.Control == nil {
		return
	}
	dr, err := pharma.DoseRatio(res.Control, res.Samples)
	if err != nil {
		return
	}
	res.Metrics["dose_ratio"] = dr
	if pa2, err := pharma.SchildPA2(dr, mech.AntagonistConc); err == nil {
		res.Metrics["pa2"] = pa2
	}
}
