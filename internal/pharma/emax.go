package pharma

import "math"

// Emax is the hyperbolic Emax model:
//
//	response(d) = Emax * d / (EC50 + d)
//
// equivalent to a Hill model with zero baseline and unit slope.
type Emax struct {
	Emax float64
	EC50 float64
}

// NewEmax returns an Emax model with the reference parameters of the
// classic teaching curve (100% effect, EC50 of 200 mg).
func NewEmax() *Emax {
	return &Emax{Emax: 100.0, EC50: 200.0}
}

func (e *Emax) Response(d float64) float64 {
	if d == 0 {
		return 0
	}
	return e.Emax * d / (e.EC50 + d)
}

func (e *Emax) Validate() error {
	if !(e.EC50 > 0) {
		return &ParameterError{Name: "ec50", Value: e.EC50, Reason: "must be > 0"}
	}
	if math.IsNaN(e.Emax) || math.IsInf(e.Emax, 0) {
		return &ParameterError{Name: "emax", Value: e.Emax, Reason: "must be finite"}
	}
	return nil
}

func (e *Emax) Params() map[string]float64 {
	return map[string]float64{
		"emax": e.Emax,
		"ec50": e.EC50,
	}
}

func (e *Emax) SetParam(name string, value float64) error {
	switch name {
	case "emax":
		e.Emax = value
	case "ec50":
		e.EC50 = value
	default:
		return &ParameterError{Name: name, Value: value, Reason: "unknown parameter"}
	}
	return nil
}
