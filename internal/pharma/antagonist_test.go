package pharma

import (
	"errors"
	"math"
	"testing"
)

func TestCompetitiveShiftsRight(t *testing.T) {
	agonist := &Hill{Baseline: 0, Emax: 100, EC50: 10, N: 1}
	blocked := &Competitive{Agonist: agonist, Ki: 2, Conc: 2}

	// At the control EC50 the antagonized response must fall below half-maximal.
	if got := blocked.Response(agonist.EC50); got >= 50 {
		t.Errorf("expected response below 50 at control EC50, got %f", got)
	}

	// Half-maximal moves to EC50 * (1 + Conc/Ki).
	shifted := agonist.EC50 * blocked.DoseRatio()
	if got := blocked.Response(shifted); math.Abs(got-50) > 1e-9 {
		t.Errorf("expected 50 at shifted EC50 %f, got %f", shifted, got)
	}
}

func TestCompetitivePreservesMax(t *testing.T) {
	agonist := &Hill{Baseline: 0, Emax: 80, EC50: 5, N: 2}
	blocked := &Competitive{Agonist: agonist, Ki: 1, Conc: 10}

	got := blocked.Response(1e9)
	if math.Abs(got-agonist.Emax) > 0.01 {
		t.Errorf("expected max preserved near %f, got %f", agonist.Emax, got)
	}
}

func TestCompetitiveZeroConc(t *testing.T) {
	agonist := NewHill()
	blocked := &Competitive{Agonist: agonist, Ki: 2, Conc: 0}

	for _, d := range []float64{0, 1, 10, 100} {
		if math.Abs(blocked.Response(d)-agonist.Response(d)) > 1e-12 {
			t.Errorf("dose %f: zero antagonist should match agonist", d)
		}
	}
}

func TestNonCompetitiveReducesMax(t *testing.T) {
	agonist := &Hill{Baseline: 0, Emax: 100, EC50: 10, N: 1}
	blocked := &NonCompetitive{Agonist: agonist, FractionBlocked: 0.4}

	got := blocked.Response(1e9)
	want := 60.0
	if math.Abs(got-want) > 0.01 {
		t.Errorf("expected plateau %f with 40%% blocked, got %f", want, got)
	}

	// EC50 position is unchanged: half of the reduced span.
	if got := blocked.Response(agonist.EC50); math.Abs(got-30) > 1e-9 {
		t.Errorf("expected 30 at EC50, got %f", got)
	}
}

func TestAntagonistValidate(t *testing.T) {
	agonist := NewHill()

	tests := []struct {
		name  string
		model Model
	}{
		{"zero ki", &Competitive{Agonist: agonist, Ki: 0, Conc: 1}},
		{"negative conc", &Competitive{Agonist: agonist, Ki: 1, Conc: -1}},
		{"fraction above one", &NonCompetitive{Agonist: agonist, FractionBlocked: 1.5}},
		{"negative fraction", &NonCompetitive{Agonist: agonist, FractionBlocked: -0.1}},
		{"bad agonist", &Competitive{Agonist: &Hill{EC50: -1, N: 1}, Ki: 1, Conc: 1}},
	}

	for _, tt := range tests {
		err := tt.model.Validate()
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%s: expected ErrInvalidParameter, got %v", tt.name, err)
		}
	}
}
