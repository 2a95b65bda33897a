package pharma

import (
	"errors"
	"math"
	"testing"
)

func TestComputePointCount(t *testing.T) {
	h := NewHill()

	for _, n := range []int{2, 5, 50, 201} {
		curve, err := Compute(h, 0.1, 1000, n)
		if err != nil {
			t.Fatalf("points=%d: unexpected error: %v", n, err)
		}
		if len(curve) != n {
			t.Errorf("points=%d: expected %d samples, got %d", n, n, len(curve))
		}
	}
}

func TestComputeStrictlyIncreasing(t *testing.T) {
	h := NewHill()

	curve, err := Compute(h, 0.5, 5000, 40)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(curve); i++ {
		if curve[i].Dose <= curve[i-1].Dose {
			t.Fatalf("doses not strictly increasing at index %d: %f <= %f",
				i, curve[i].Dose, curve[i-1].Dose)
		}
	}
}

func TestComputeLogSpacing(t *testing.T) {
	h := &Hill{Baseline: 0, Emax: 100, EC50: 10, N: 1}

	curve, err := Compute(h, 0.1, 1000, 5)
	if err != nil {
		t.Fatal(err)
	}

	// Four decades covered by four steps: one decade per step.
	want := []float64{0.1, 1, 10, 100, 1000}
	for i, w := range want {
		if math.Abs(curve[i].Dose-w)/w > 1e-9 {
			t.Errorf("dose %d: expected %f, got %f", i, w, curve[i].Dose)
		}
	}

	// The defining property of EC50.
	if math.Abs(curve[2].Response-50) > 1e-9 {
		t.Errorf("expected response 50 at dose 10, got %f", curve[2].Response)
	}
}

func TestComputeEndpointsExact(t *testing.T) {
	h := NewHill()

	curve, err := Compute(h, 0.3, 700, 17)
	if err != nil {
		t.Fatal(err)
	}
	if curve[0].Dose != 0.3 {
		t.Errorf("expected first dose 0.3, got %g", curve[0].Dose)
	}
	if curve[len(curve)-1].Dose != 700 {
		t.Errorf("expected last dose 700, got %g", curve[len(curve)-1].Dose)
	}
}

func TestComputeZeroDoseMin(t *testing.T) {
	h := &Hill{Baseline: 7, Emax: 100, EC50: 10, N: 1}

	curve, err := Compute(h, 0, 1000, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(curve) != 6 {
		t.Fatalf("expected 6 samples, got %d", len(curve))
	}
	if curve[0].Dose != 0 {
		t.Errorf("expected first dose 0, got %g", curve[0].Dose)
	}
	if curve[0].Response != h.Baseline {
		t.Errorf("expected baseline response %f at zero dose, got %f", h.Baseline, curve[0].Response)
	}
	for i := 1; i < len(curve); i++ {
		if curve[i].Dose <= curve[i-1].Dose {
			t.Fatalf("doses not strictly increasing at index %d", i)
		}
	}
	if curve[len(curve)-1].Dose != 1000 {
		t.Errorf("expected last dose 1000, got %g", curve[len(curve)-1].Dose)
	}
}

func TestComputeSaturation(t *testing.T) {
	h := &Hill{Baseline: 0, Emax: 100, EC50: 1, N: 2}

	curve, err := Compute(h, 0.01, 1e6, 80)
	if err != nil {
		t.Fatal(err)
	}
	last := curve[len(curve)-1].Response
	if math.Abs(last-h.Emax) > 0.001 {
		t.Errorf("expected saturation near %f, got %f", h.Emax, last)
	}
}

func TestComputeInvalid(t *testing.T) {
	tests := []struct {
		name    string
		model   Model
		min     float64
		max     float64
		points  int
	}{
		{"equal range", NewHill(), 0, 0, 10},
		{"inverted range", NewHill(), 10, 1, 10},
		{"negative min", NewHill(), -1, 10, 10},
		{"one point", NewHill(), 0.1, 10, 1},
		{"zero ec50", &Hill{Baseline: 0, Emax: 100, EC50: 0, N: 1}, 0.1, 10, 10},
		{"negative hill", &Hill{Baseline: 0, Emax: 100, EC50: 10, N: -1}, 0.1, 10, 10},
	}

	for _, tt := range tests {
		_, err := Compute(tt.model, tt.min, tt.max, tt.points)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%s: expected ErrInvalidParameter, got %v", tt.name, err)
		}
	}
}

func TestCurveAccessors(t *testing.T) {
	c := Curve{{Dose: 1, Response: 10}, {Dose: 2, Response: 20}}

	doses := c.Doses()
	responses := c.Responses()

	if len(doses) != 2 || doses[1] != 2 {
		t.Errorf("unexpected doses: %v", doses)
	}
	if len(responses) != 2 || responses[0] != 10 {
		t.Errorf("unexpected responses: %v", responses)
	}
}
