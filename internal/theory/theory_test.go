package theory

import (
	"sort"
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	topics := Topics()
	if len(topics) == 0 {
		t.Fatal("expected embedded topics")
	}
	if !sort.StringsAreSorted(topics) {
		t.Errorf("topics not sorted: %v", topics)
	}
	for _, want := range []string{"dose-response", "ec50", "antagonism", "interactions"} {
		found := false
		for _, got := range topics {
			if got == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing topic %q in %v", want, topics)
		}
	}
}

func TestSource(t *testing.T) {
	src, err := Source("antagonism")
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if !strings.Contains(src, "Schild") {
		t.Error("antagonism topic should cover Schild analysis")
	}

	// Lookup is forgiving about case and whitespace.
	if _, err := Source("  EC50 "); err != nil {
		t.Errorf("case-insensitive lookup failed: %v", err)
	}

	if _, err := Source("nope"); err == nil {
		t.Error("expected error for unknown topic")
	}
}

func TestRender(t *testing.T) {
	out, err := Render("dose-response", 80)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "Hill") {
		t.Error("rendered topic should mention the Hill equation")
	}
}
