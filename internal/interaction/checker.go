// Package interaction implements the drug-drug interaction checker: a
// pairwise rule table with wildcard per-drug rules and patient modifiers.
package interaction

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var embeddedRules []byte

// Severity grades an interaction.
type Severity int

const (
	SeverityMinor Severity = iota
	SeverityModerate
	SeveritySevere
)

func (s Severity) String() string {
	switch s {
	case SeverityMinor:
		return "minor"
	case SeverityModerate:
		return "moderate"
	case SeveritySevere:
		return "severe"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a rule-file severity string.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minor":
		return SeverityMinor, nil
	case "moderate":
		return SeverityModerate, nil
	case "severe":
		return SeveritySevere, nil
	default:
		return SeverityMinor, fmt.Errorf("interaction: unknown severity: %q", s)
	}
}

// Patient carries the factors that modify an interaction result.
type Patient struct {
	Age            int
	KidneyImpaired bool
	LiverImpaired  bool
}

// Result is the outcome of one check.
type Result struct {
	DrugA         string
	DrugB         string
	Severity      Severity
	Effect        string
	ToxicityScore int
	Notes         []string
}

// Rule matches a drug pair. DrugB may be "*" to match any partner.
type Rule struct {
	DrugA    string `yaml:"drug_a"`
	DrugB    string `yaml:"drug_b"`
	Severity string `yaml:"severity"`
	Effect   string `yaml:"effect"`
	Score    int    `yaml:"score"`
}

type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// Checker evaluates drug pairs against the rule table.
type Checker struct {
	rules []Rule
}

// NewChecker loads the embedded rule table.
func NewChecker() (*Checker, error) {
	var f ruleFile
	if err := yaml.Unmarshal(embeddedRules, &f); err != nil {
		return nil, fmt.Errorf("interaction: %w", err)
	}
	for i := range f.Rules {
		f.Rules[i].DrugA = strings.ToLower(f.Rules[i].DrugA)
		f.Rules[i].DrugB = strings.ToLower(f.Rules[i].DrugB)
		if _, err := ParseSeverity(f.Rules[i].Severity); err != nil {
			return nil, err
		}
	}
	return &Checker{rules: f.Rules}, nil
}

const (
	baseScore     = 20
	impairedScore = 50
	elderlyAge    = 65
	modifierBump  = 10
)

// Check evaluates the interaction between two drugs for a patient.
// Exact pair rules win over wildcard rules; the pair is order-insensitive.
// The same drug twice is graded minor. The score is clamped to [0, 100].
func (c *Checker) Check(drugA, drugB string, p Patient) Result {
	a := strings.ToLower(strings.TrimSpace(drugA))
	b := strings.ToLower(strings.TrimSpace(drugB))

	res := Result{
		DrugA:         drugA,
		DrugB:         drugB,
		Severity:      SeverityMinor,
		Effect:        "no significant effect",
		ToxicityScore: baseScore,
	}

	if a != b {
		if r, ok := c.match(a, b); ok {
			sev, _ := ParseSeverity(r.Severity)
			res.Severity = sev
			res.Effect = r.Effect
			res.ToxicityScore = r.Score
		}
	} else {
		res.Notes = append(res.Notes, "same drug selected twice")
	}

	if p.KidneyImpaired || p.LiverImpaired {
		if res.Severity < SeverityModerate {
			res.Severity = SeverityModerate
			res.Effect = "reduced clearance"
			if res.ToxicityScore < impairedScore {
				res.ToxicityScore = impairedScore
			}
		} else {
			res.ToxicityScore += modifierBump
		}
		res.Notes = append(res.Notes, "impaired organ function reduces clearance")
	}

	if p.Age >= elderlyAge {
		res.ToxicityScore += modifierBump
		res.Notes = append(res.Notes, "advanced age increases sensitivity")
	}

	if res.ToxicityScore > 100 {
		res.ToxicityScore = 100
	}
	if res.ToxicityScore < 0 {
		res.ToxicityScore = 0
	}
	return res
}

// match finds the first applicable rule: exact pairs in either order first,
// then wildcard rules for either drug.
func (c *Checker) match(a, b string) (Rule, bool) {
	for _, r := range c.rules {
		if r.DrugB == "*" {
			continue
		}
		if (r.DrugA == a && r.DrugB == b) || (r.DrugA == b && r.DrugB == a) {
			return r, true
		}
	}
	for _, r := range c.rules {
		if r.DrugB != "*" {
			continue
		}
		if r.DrugA == a || r.DrugA == b {
			return r, true
		}
	}
	return Rule{}, false
}
