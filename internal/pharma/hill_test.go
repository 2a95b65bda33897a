package pharma

import (
	"errors"
	"math"
	"testing"
)

func TestHillMidpoint(t *testing.T) {
	h := &Hill{Baseline: 10, Emax: 90, EC50: 25, N: 1.5}

	got := h.Response(h.EC50)
	want := h.Baseline + (h.Emax-h.Baseline)/2

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("response at EC50: expected %f, got %f", want, got)
	}
}

func TestHillZeroDose(t *testing.T) {
	h := &Hill{Baseline: 5, Emax: 100, EC50: 10, N: 2}

	if got := h.Response(0); got != h.Baseline {
		t.Errorf("expected baseline %f at zero dose, got %f", h.Baseline, got)
	}
}

func TestHillSaturation(t *testing.T) {
	h := NewHill()

	got := h.Response(h.EC50 * 1e6)
	if math.Abs(got-h.Emax) > 0.01 {
		t.Errorf("expected response near Emax %f at saturating dose, got %f", h.Emax, got)
	}
}

func TestHillMonotonic(t *testing.T) {
	h := &Hill{Baseline: 0, Emax: 100, EC50: 10, N: 1}

	prev := h.Response(0.01)
	for d := 0.1; d < 1e4; d *= 2 {
		r := h.Response(d)
		if r < prev {
			t.Fatalf("response decreased at dose %f: %f < %f", d, r, prev)
		}
		prev = r
	}
}

func TestHillValidate(t *testing.T) {
	tests := []struct {
		name string
		h    Hill
		ok   bool
	}{
		{"valid", Hill{Baseline: 0, Emax: 100, EC50: 10, N: 1}, true},
		{"zero ec50", Hill{Baseline: 0, Emax: 100, EC50: 0, N: 1}, false},
		{"negative ec50", Hill{Baseline: 0, Emax: 100, EC50: -5, N: 1}, false},
		{"zero hill", Hill{Baseline: 0, Emax: 100, EC50: 10, N: 0}, false},
		{"nan emax", Hill{Baseline: 0, Emax: math.NaN(), EC50: 10, N: 1}, false},
		{"inf baseline", Hill{Baseline: math.Inf(1), Emax: 100, EC50: 10, N: 1}, false},
	}

	for _, tt := range tests {
		err := tt.h.Validate()
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
		}
		if !tt.ok {
			if err == nil {
				t.Errorf("%s: expected error", tt.name)
			} else if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("%s: expected ErrInvalidParameter, got %v", tt.name, err)
			}
		}
	}
}

func TestHillSetParam(t *testing.T) {
	h := NewHill()

	if err := h.SetParam("ec50", 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.EC50 != 42 {
		t.Errorf("expected ec50 42, got %f", h.EC50)
	}

	if err := h.SetParam("bogus", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}

	params := h.Params()
	if params["ec50"] != 42 {
		t.Errorf("expected params to reflect update, got %f", params["ec50"])
	}
}

func TestEmaxMatchesHill(t *testing.T) {
	e := &Emax{Emax: 100, EC50: 200}
	h := &Hill{Baseline: 0, Emax: 100, EC50: 200, N: 1}

	for _, d := range []float64{0, 1, 50, 200, 500, 1000} {
		if math.Abs(e.Response(d)-h.Response(d)) > 1e-9 {
			t.Errorf("dose %f: Emax %f != Hill %f", d, e.Response(d), h.Response(d))
		}
	}
}

func TestEmaxHalfMaximal(t *testing.T) {
	e := NewEmax()

	got := e.Response(e.EC50)
	if math.Abs(got-e.Emax/2) > 1e-9 {
		t.Errorf("expected half-maximal %f at EC50, got %f", e.Emax/2, got)
	}
}
