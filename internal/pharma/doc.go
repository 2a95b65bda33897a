// Package pharma provides the core dose-response primitives.
//
// The package defines the pharmacological models and the curve engine
// that samples them over a dose range:
//
//   - [Hill]: four-parameter logistic (baseline, Emax, EC50, Hill slope)
//   - [Emax]: hyperbolic Emax model (Hill with slope 1, zero baseline)
//   - [Competitive], [NonCompetitive]: receptor antagonism wrappers
//   - [Compute]: samples a model over a log-spaced dose grid
//
// # Example
//
//	h := pharma.Hill{Baseline: 0, Emax: 100, EC50: 10, N: 1}
//	curve, err := pharma.Compute(&h, 0.1, 1000, 50)
//
// All models are pure: a response depends only on the dose and the
// model parameters. Curves are created fresh per computation and are
// never mutated afterwards.
package pharma
