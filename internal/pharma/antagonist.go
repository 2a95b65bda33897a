package pharma

import "math"

// Competitive models a surmountable antagonist at fixed concentration Conc
// with dissociation constant Ki. The agonist curve shifts right by the
// dose ratio (1 + Conc/Ki); the maximal response is preserved.
type Competitive struct {
	Agonist *Hill
	Ki      float64
	Conc    float64
}

func (c *Competitive) Response(d float64) float64 {
	if d == 0 {
		return c.Agonist.Baseline
	}
	shifted := c.Agonist.EC50 * c.DoseRatio()
	return c.Agonist.Baseline + (c.Agonist.Emax-c.Agonist.Baseline)/(1+math.Pow(shifted/d, c.Agonist.N))
}

// DoseRatio returns the Schild dose ratio 1 + [B]/Ki.
func (c *Competitive) DoseRatio() float64 {
	return 1 + c.Conc/c.Ki
}

func (c *Competitive) Validate() error {
	if err := c.Agonist.Validate(); err != nil {
		return err
	}
	if !(c.Ki > 0) {
		return &ParameterError{Name: "ki", Value: c.Ki, Reason: "must be > 0"}
	}
	if c.Conc < 0 || math.IsNaN(c.Conc) || math.IsInf(c.Conc, 0) {
		return &ParameterError{Name: "antagonist_conc", Value: c.Conc, Reason: "must be finite and >= 0"}
	}
	return nil
}

// NonCompetitive models an insurmountable antagonist that removes a
// fixed fraction of receptors: the plateau scales by (1 - FractionBlocked),
// EC50 is unchanged.
type NonCompetitive struct {
	Agonist         *Hill
	FractionBlocked float64
}

func (n *NonCompetitive) Response(d float64) float64 {
	if d == 0 {
		return n.Agonist.Baseline
	}
	span := (n.Agonist.Emax - n.Agonist.Baseline) * (1 - n.FractionBlocked)
	return n.Agonist.Baseline + span/(1+math.Pow(n.Agonist.EC50/d, n.Agonist.N))
}

func (n *NonCompetitive) Validate() error {
	if err := n.Agonist.Validate(); err != nil {
		return err
	}
	if n.FractionBlocked < 0 || n.FractionBlocked > 1 || math.IsNaN(n.FractionBlocked) {
		return &ParameterError{Name: "fraction_blocked", Value: n.FractionBlocked, Reason: "must be in [0, 1]"}
	}
	return nil
}
