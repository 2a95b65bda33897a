package pharma

import "math"

// flatTolerance is the minimum response span a curve must cover before
// EC50 or slope estimation is meaningful.
const flatTolerance = 1e-9

// EstimateEC50 returns the dose producing half the observed response span,
// interpolated linearly in log-dose between the bracketing samples.
func EstimateEC50(c Curve) (float64, error) {
	return doseAtFraction(c, 0.5)
}

// EstimateHillSlope estimates the Hill coefficient from the EC20/EC80 dose
// ratio. For a Hill curve EC80/EC20 = 16^(1/n), so
// n_H = log10(16) / log10(EC80/EC20).
func EstimateHillSlope(c Curve) (float64, error) {
	d20, err := doseAtFraction(c, 0.2)
	if err != nil {
		return 0, err
	}
	d80, err := doseAtFraction(c, 0.8)
	if err != nil {
		return 0, err
	}
	if !(d80 > d20) {
		return 0, ErrFlatCurve
	}
	return math.Log10(16) / math.Log10(d80/d20), nil
}

// DoseRatio returns the ratio of estimated EC50s of a shifted curve over
// its control, the quantity a Schild analysis works with.
func DoseRatio(control, shifted Curve) (float64, error) {
	ecControl, err := EstimateEC50(control)
	if err != nil {
		return 0, err
	}
	ecShifted, err := EstimateEC50(shifted)
	if err != nil {
		return 0, err
	}
	return ecShifted / ecControl, nil
}

// SchildPA2 converts a dose ratio observed at antagonist concentration b
// into pA2 = log10(dr - 1) - log10(b). With b equal to Ki the dose ratio
// is 2 and pA2 equals -log10(Ki).
func SchildPA2(doseRatio, b float64) (float64, error) {
	if !(doseRatio > 1) {
		return 0, &ParameterError{Name: "dose_ratio", Value: doseRatio, Reason: "must be > 1"}
	}
	if !(b > 0) {
		return 0, &ParameterError{Name: "antagonist_conc", Value: b, Reason: "must be > 0"}
	}
	return math.Log10(doseRatio-1) - math.Log10(b), nil
}

// MaxResponse returns the largest response on the curve.
func MaxResponse(c Curve) (float64, error) {
	if len(c) == 0 {
		return 0, ErrEmptyCurve
	}
	max := c[0].Response
	for _, s := range c[1:] {
		if s.Response > max {
			max = s.Response
		}
	}
	return max, nil
}

// doseAtFraction finds the dose where the response crosses
// min + frac*(max-min), interpolating in log-dose space.
func doseAtFraction(c Curve, frac float64) (float64, error) {
	if len(c) == 0 {
		return 0, ErrEmptyCurve
	}
	lo, hi := c[0].Response, c[0].Response
	for _, s := range c[1:] {
		if s.Response < lo {
			lo = s.Response
		}
		if s.Response > hi {
			hi = s.Response
		}
	}
	if hi-lo < flatTolerance {
		return 0, ErrFlatCurve
	}
	target := lo + frac*(hi-lo)

	for i := 1; i < len(c); i++ {
		a, b := c[i-1], c[i]
		if (a.Response-target)*(b.Response-target) > 0 {
			continue
		}
		if b.Response == a.Response {
			return b.Dose, nil
		}
		t := (target - a.Response) / (b.Response - a.Response)
		if a.Dose <= 0 {
			// Cannot interpolate in log space from a zero dose.
			return a.Dose + t*(b.Dose-a.Dose), nil
		}
		logD := math.Log10(a.Dose) + t*(math.Log10(b.Dose)-math.Log10(a.Dose))
		return math.Pow(10, logD), nil
	}
	return 0, ErrFlatCurve
}
