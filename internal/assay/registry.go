package assay

import (
	"fmt"
	"sort"

	"pharmsim/internal/pharma"
)

// Registry maps model and mechanism names to constructors.
type Registry struct {
	models     map[string]func(base *pharma.Hill) pharma.Model
	mechanisms map[string]func(agonist *pharma.Hill, p Mechanism) pharma.Model
}

// Mechanism carries the antagonist parameters for a wrapped model.
type Mechanism struct {
	AntagonistConc  float64
	Ki              float64
	FractionBlocked float64
}

func NewRegistry() *Registry {
	r := &Registry{
		models:     make(map[string]func(*pharma.Hill) pharma.Model),
		mechanisms: make(map[string]func(*pharma.Hill, Mechanism) pharma.Model),
	}

	r.models["hill"] = func(base *pharma.Hill) pharma.Model { return base }
	r.models["emax"] = func(base *pharma.Hill) pharma.Model {
		return &pharma.Emax{Emax: base.Emax, EC50: base.EC50}
	}

	r.mechanisms["none"] = func(agonist *pharma.Hill, p Mechanism) pharma.Model {
		return agonist
	}
	r.mechanisms["competitive"] = func(agonist *pharma.Hill, p Mechanism) pharma.Model {
		return &pharma.Competitive{Agonist: agonist, Ki: p.Ki, Conc: p.AntagonistConc}
	}
	r.mechanisms["noncompetitive"] = func(agonist *pharma.Hill, p Mechanism) pharma.Model {
		return &pharma.NonCompetitive{Agonist: agonist, FractionBlocked: p.FractionBlocked}
	}

	return r
}

// GetModel builds a named model around the drug's Hill parameters.
func (r *Registry) GetModel(name string, base *pharma.Hill) (pharma.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s (available: %v)", name, keys(r.models))
	}
	return fn(base), nil
}

// GetMechanism wraps an agonist with a named antagonism mechanism.
func (r *Registry) GetMechanism(name string, agonist *pharma.Hill, p Mechanism) (pharma.Model, error) {
	fn, ok := r.mechanisms[name]
	if !ok {
		return nil, fmt.Errorf("unknown mechanism: %s (available: %v)", name, keys(r.mechanisms))
	}
	return fn(agonist, p), nil
}

// ListModels returns the registered model names sorted.
func (r *Registry) ListModels() []string {
	return keys(r.models)
}

// ListMechanisms returns the registered mechanism names sorted.
func (r *Registry) ListMechanisms() []string {
	return keys(r.mechanisms)
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
