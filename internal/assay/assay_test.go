package assay

import (
	"math"
	"testing"

	"pharmsim/internal/library"
	"pharmsim/internal/pharma"
)

func testLib(t *testing.T) *library.Library {
	t.Helper()
	lib, err := library.Load()
	if err != nil {
		t.Fatalf("failed to load library: %v", err)
	}
	return lib
}

func TestRegistryModels(t *testing.T) {
	reg := NewRegistry()
	base := pharma.NewHill()

	for _, name := range []string{"hill", "emax"} {
		m, err := reg.GetModel(name, base)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
		}
		if m == nil {
			t.Errorf("%s: expected model", name)
		}
	}

	if _, err := reg.GetModel("compartment", base); err == nil {
		t.Error("expected error for unknown model")
	}
}

func TestRegistryMechanisms(t *testing.T) {
	reg := NewRegistry()
	base := pharma.NewHill()

	if _, err := reg.GetMechanism("irreversible", base, Mechanism{}); err == nil {
		t.Error("expected error for unknown mechanism")
	}

	m, err := reg.GetMechanism("competitive", base, Mechanism{Ki: 2, AntagonistConc: 2})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := m.(*pharma.Competitive); !ok {
		t.Errorf("expected competitive wrapper, got %T", m)
	}
}

func TestRunBasic(t *testing.T) {
	res, err := Run(testLib(t), NewRegistry(), Config{
		Drug:   "acetylcholine",
		Points: 50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Samples) != 50 {
		t.Errorf("expected 50 samples, got %d", len(res.Samples))
	}
	if res.Control != nil {
		t.Error("expected no control curve without a mechanism")
	}
	if _, ok := res.Metrics["ec50_estimated"]; !ok {
		t.Error("expected ec50_estimated metric")
	}

	// Default dose range comes from the library entry.
	if res.Samples[0].Dose != res.Drug.DoseMin {
		t.Errorf("expected first dose %f, got %f", res.Drug.DoseMin, res.Samples[0].Dose)
	}
}

func TestRunOverrides(t *testing.T) {
	res, err := Run(testLib(t), NewRegistry(), Config{
		Drug:      "acetylcholine",
		Points:    100,
		DoseMin:   0.01,
		DoseMax:   1000,
		Overrides: map[string]float64{"ec50": 5},
	})
	if err != nil {
		t.Fatal(err)
	}

	ec50 := res.Metrics["ec50_estimated"]
	if math.Abs(ec50-5)/5 > 0.1 {
		t.Errorf("expected estimated EC50 near 5, got %f", ec50)
	}
}

func TestRunCompetitive(t *testing.T) {
	res, err := Run(testLib(t), NewRegistry(), Config{
		Drug:      "acetylcholine",
		Mechanism: "competitive",
		DoseMin:   0.001,
		DoseMax:   10000,
		Points:    200,
		Mech:      Mechanism{Ki: 2, AntagonistConc: 2},
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.Control == nil {
		t.Fatal("expected a control curve")
	}
	dr, ok := res.Metrics["dose_ratio"]
	if !ok {
		t.Fatal("expected dose_ratio metric")
	}
	if math.Abs(dr-2) > 0.2 {
		t.Errorf("expected dose ratio near 2, got %f", dr)
	}
	if _, ok := res.Metrics["pa2"]; !ok {
		t.Error("expected pa2 metric")
	}
}

func TestRunNonCompetitive(t *testing.T) {
	res, err := Run(testLib(t), NewRegistry(), Config{
		Drug:      "acetylcholine",
		Mechanism: "noncompetitive",
		Points:    100,
		DoseMin:   0.01,
		DoseMax:   1000,
		Mech:      Mechanism{FractionBlocked: 0.4},
	})
	if err != nil {
		t.Fatal(err)
	}

	maxBlocked := res.Metrics["emax_observed"]
	maxControl, err := pharma.MaxResponse(res.Control)
	if err != nil {
		t.Fatal(err)
	}
	if maxBlocked >= maxControl {
		t.Errorf("expected reduced max, got %f >= %f", maxBlocked, maxControl)
	}
}

func TestRunInvalid(t *testing.T) {
	lib, reg := testLib(t), NewRegistry()

	if _, err := Run(lib, reg, Config{Drug: "placebo", Points: 10}); err == nil {
		t.Error("expected error for unknown drug")
	}
	if _, err := Run(lib, reg, Config{Drug: "aspirin", Points: 1}); err == nil {
		t.Error("expected error for a single point")
	}
	if _, err := Run(lib, reg, Config{Drug: "aspirin", Model: "emax", Mechanism: "competitive", Points: 10}); err == nil {
		t.Error("expected error combining emax with a mechanism")
	}
}
