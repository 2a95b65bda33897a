package pharma

import "math"

// zeroDoseDecades sets how far below doseMax the log grid starts when the
// requested range begins at zero dose (which has no logarithm).
const zeroDoseDecades = 3.0

// Compute samples a model over [doseMin, doseMax] with points doses spaced
// evenly on a logarithmic scale, the standard presentation for ranges
// spanning orders of magnitude. It returns exactly points samples with
// strictly increasing doses.
//
// A doseMin of zero is allowed: the first sample is the model's zero-dose
// response and the remaining points are log-spaced up to doseMax, starting
// zeroDoseDecades below it.
func Compute(m Model, doseMin, doseMax float64, points int) (Curve, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if doseMin < 0 || math.IsNaN(doseMin) {
		return nil, &ParameterError{Name: "dose_min", Value: doseMin, Reason: "must be >= 0"}
	}
	if !(doseMax > doseMin) || math.IsInf(doseMax, 0) {
		return nil, &ParameterError{Name: "dose_max", Value: doseMax, Reason: "must be > dose_min and finite"}
	}
	if points < 2 {
		return nil, &ParameterError{Name: "points", Value: float64(points), Reason: "must be >= 2"}
	}

	var doses []float64
	if doseMin == 0 {
		doses = append([]float64{0}, logSpace(doseMax*math.Pow(10, -zeroDoseDecades), doseMax, points-1)...)
	} else {
		doses = logSpace(doseMin, doseMax, points)
	}

	curve := make(Curve, len(doses))
	for i, d := range doses {
		curve[i] = Sample{Dose: d, Response: m.Response(d)}
	}
	return curve, nil
}

// logSpace returns n doses evenly spaced in log10 between min and max,
// with both endpoints exact. min must be > 0 and n >= 1.
func logSpace(min, max float64, n int) []float64 {
	if n == 1 {
		return []float64{max}
	}
	lo := math.Log10(min)
	step := (math.Log10(max) - lo) / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Pow(10, lo+float64(i)*step)
	}
	out[0] = min
	out[n-1] = max
	return out
}
