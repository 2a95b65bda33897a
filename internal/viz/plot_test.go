package viz

import (
	"strings"
	"testing"

	"pharmsim/internal/pharma"
)

func testCurve(t *testing.T) pharma.Curve {
	t.Helper()
	c, err := pharma.Compute(pharma.NewHill(), 0.1, 1000, 20)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return c
}

func TestRenderCurve(t *testing.T) {
	out := RenderCurve(testCurve(t), 60, 10, "response vs log dose")
	if out == "" {
		t.Fatal("expected non-empty plot")
	}
	if !strings.Contains(out, "response vs log dose") {
		t.Error("caption missing from plot")
	}
	if !strings.Contains(out, "log dose") {
		t.Error("dose axis missing from plot")
	}
}

func TestRenderCurveEmpty(t *testing.T) {
	if out := RenderCurve(nil, 60, 10, "x"); out != "" {
		t.Errorf("expected empty output for empty curve, got %q", out)
	}
}

func TestRenderOverlay(t *testing.T) {
	control := testCurve(t)
	blocked, err := pharma.Compute(
		&pharma.Competitive{Agonist: pharma.NewHill(), Ki: 1, Conc: 3},
		0.1, 1000, 20)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	out := RenderOverlay(control, blocked, 60, 10, "shift")
	if out == "" {
		t.Fatal("expected non-empty overlay plot")
	}
}

func TestDoseAxis(t *testing.T) {
	axis := DoseAxis(testCurve(t), 60)
	if !strings.HasPrefix(axis, "0.1") {
		t.Errorf("axis should start at low dose, got %q", axis)
	}
	if !strings.HasSuffix(axis, "1000") {
		t.Errorf("axis should end at high dose, got %q", axis)
	}
}

func TestSeparator(t *testing.T) {
	sep := Separator(24)
	if !strings.Contains(sep, "◆") {
		t.Errorf("separator missing center marker: %q", sep)
	}
	if !strings.Contains(sep, "───") {
		t.Errorf("separator missing rule: %q", sep)
	}
}

func TestToxicityBar(t *testing.T) {
	full := ToxicityBar(100, 10)
	if !strings.Contains(full, strings.Repeat("█", 10)) {
		t.Error("score 100 should fill the bar")
	}
	empty := ToxicityBar(0, 10)
	if !strings.Contains(empty, strings.Repeat("░", 10)) {
		t.Error("score 0 should leave the bar empty")
	}
	// Out-of-range scores clamp instead of panicking.
	ToxicityBar(-5, 10)
	ToxicityBar(250, 10)
}
