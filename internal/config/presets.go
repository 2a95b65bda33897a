package config

import (
	"sort"
	"strings"
)

// Preset is a named assay setup for a library drug.
type Preset struct {
	Drug            string
	Model           string
	Mechanism       string
	DoseMin         float64
	DoseMax         float64
	Points          int
	AntagonistConc  float64
	Ki              float64
	FractionBlocked float64
}

var Presets = map[string]map[string]*Preset{
	"acetylcholine": {
		"standard": {
			Drug: "acetylcholine", Model: "hill", Mechanism: "none",
			DoseMin: 0.1, DoseMax: 100, Points: 50,
		},
		"wide": {
			Drug: "acetylcholine", Model: "hill", Mechanism: "none",
			DoseMin: 0.001, DoseMax: 1000, Points: 80,
		},
		"atropine-block": {
			Drug: "acetylcholine", Model: "hill", Mechanism: "competitive",
			DoseMin: 0.01, DoseMax: 1000, Points: 80,
			AntagonistConc: 2.0, Ki: 2.0,
		},
		"irreversible-block": {
			Drug: "acetylcholine", Model: "hill", Mechanism: "noncompetitive",
			DoseMin: 0.1, DoseMax: 100, Points: 50,
			FractionBlocked: 0.4,
		},
	},
	"histamine": {
		"standard": {
			Drug: "histamine", Model: "hill", Mechanism: "none",
			DoseMin: 0.1, DoseMax: 100, Points: 50,
		},
	},
	"aspirin": {
		"standard": {
			Drug: "aspirin", Model: "hill", Mechanism: "none",
			DoseMin: 50, DoseMax: 1000, Points: 50,
		},
		"classic": {
			// The linear-dose classroom curve: Emax model over 0-1000 mg.
			Drug: "aspirin", Model: "emax", Mechanism: "none",
			DoseMin: 0, DoseMax: 1000, Points: 50,
		},
	},
	"warfarin": {
		"titration": {
			Drug: "warfarin", Model: "hill", Mechanism: "none",
			DoseMin: 0.5, DoseMax: 20, Points: 40,
		},
	},
}

// GetPreset looks up a preset for a drug. Lookup is case-insensitive, like
// the drug library's. Returns nil when absent.
func GetPreset(drug, name string) *Preset {
	drugPresets, ok := Presets[strings.ToLower(strings.TrimSpace(drug))]
	if !ok {
		return nil
	}
	p, ok := drugPresets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil
	}
	return p
}

// ListPresets returns the preset names for a drug, sorted.
func ListPresets(drug string) []string {
	drugPresets, ok := Presets[strings.ToLower(strings.TrimSpace(drug))]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(drugPresets))
	for name := range drugPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
