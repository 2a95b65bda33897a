package pharma

import "math"

// Hill is the four-parameter logistic model:
//
//	response(d) = Baseline + (Emax - Baseline) / (1 + (EC50/d)^N)
//
// EC50 is the dose producing half-maximal effect, N the Hill slope.
type Hill struct {
	Baseline float64
	Emax     float64
	EC50     float64
	N        float64
}

// NewHill returns a Hill model with textbook defaults (full agonist,
// unit slope, EC50 of 10 dose units).
func NewHill() *Hill {
	return &Hill{
		Baseline: 0.0,
		Emax:     100.0,
		EC50:     10.0,
		N:        1.0,
	}
}

// Response evaluates the model at dose d. The zero-dose response is the
// baseline, the limit of the equation as d approaches 0 for N > 0.
func (h *Hill) Response(d float64) float64 {
	if d == 0 {
		return h.Baseline
	}
	return h.Baseline + (h.Emax-h.Baseline)/(1+math.Pow(h.EC50/d, h.N))
}

func (h *Hill) Validate() error {
	if !(h.EC50 > 0) {
		return &ParameterError{Name: "ec50", Value: h.EC50, Reason: "must be > 0"}
	}
	if !(h.N > 0) {
		return &ParameterError{Name: "hill", Value: h.N, Reason: "must be > 0"}
	}
	if math.IsNaN(h.Baseline) || math.IsInf(h.Baseline, 0) {
		return &ParameterError{Name: "baseline", Value: h.Baseline, Reason: "must be finite"}
	}
	if math.IsNaN(h.Emax) || math.IsInf(h.Emax, 0) {
		return &ParameterError{Name: "emax", Value: h.Emax, Reason: "must be finite"}
	}
	return nil
}

func (h *Hill) Params() map[string]float64 {
	return map[string]float64{
		"baseline": h.Baseline,
		"emax":     h.Emax,
		"ec50":     h.EC50,
		"hill":     h.N,
	}
}

func (h *Hill) SetParam(name string, value float64) error {
	switch name {
	case "baseline":
		h.Baseline = value
	case "emax":
		h.Emax = value
	case "ec50":
		h.EC50 = value
	case "hill":
		h.N = value
	default:
		return &ParameterError{Name: name, Value: value, Reason: "unknown parameter"}
	}
	return nil
}
