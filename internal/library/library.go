// Package library holds the educational drug reference table: default
// dose-response parameters, typical assay ranges, and antagonist constants.
package library

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"pharmsim/internal/pharma"
)

//go:embed drugs.yaml
var embeddedDrugs []byte

// Drug describes one library entry.
type Drug struct {
	Name        string  `yaml:"name"`
	Class       string  `yaml:"class"`
	Unit        string  `yaml:"unit"`
	Baseline    float64 `yaml:"baseline"`
	Emax        float64 `yaml:"emax"`
	EC50        float64 `yaml:"ec50"`
	Hill        float64 `yaml:"hill"`
	Ki          float64 `yaml:"ki,omitempty"`
	DoseMin     float64 `yaml:"dose_min"`
	DoseMax     float64 `yaml:"dose_max"`
	Description string  `yaml:"description,omitempty"`
}

// IsAntagonist reports whether the entry carries a dissociation constant.
func (d Drug) IsAntagonist() bool {
	return d.Ki > 0
}

// HillModel builds the drug's four-parameter logistic model.
func (d Drug) HillModel() *pharma.Hill {
	return &pharma.Hill{
		Baseline: d.Baseline,
		Emax:     d.Emax,
		EC50:     d.EC50,
		N:        d.Hill,
	}
}

type libraryFile struct {
	Drugs []Drug `yaml:"drugs"`
}

// Library is a name-indexed set of drugs. Lookup is case-insensitive.
type Library struct {
	drugs map[string]Drug
}

// Load parses the embedded reference library.
func Load() (*Library, error) {
	return parse(embeddedDrugs)
}

// LoadWithFile layers a user YAML file over the embedded library.
// Entries with the same name replace the embedded ones.
func LoadWithFile(path string) (*Library, error) {
	lib, err := Load()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	extra, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("library: parse %s: %w", path, err)
	}
	for name, d := range extra.drugs {
		lib.drugs[name] = d
	}
	return lib, nil
}

func parse(data []byte) (*Library, error) {
	var f libraryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("library: %w", err)
	}
	lib := &Library{drugs: make(map[string]Drug, len(f.Drugs))}
	for _, d := range f.Drugs {
		if d.Name == "" {
			return nil, fmt.Errorf("library: drug entry without a name")
		}
		lib.drugs[strings.ToLower(d.Name)] = d
	}
	return lib, nil
}

// Get looks up a drug by name.
func (l *Library) Get(name string) (Drug, error) {
	d, ok := l.drugs[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Drug{}, fmt.Errorf("library: unknown drug: %s", name)
	}
	return d, nil
}

// Has reports whether a drug is in the library.
func (l *Library) Has(name string) bool {
	_, ok := l.drugs[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// List returns all drugs sorted by name.
func (l *Library) List() []Drug {
	out := make([]Drug, 0, len(l.drugs))
	for _, d := range l.drugs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns all drug names sorted.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.drugs))
	for _, d := range l.drugs {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}
