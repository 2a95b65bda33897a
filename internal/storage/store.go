// Package storage persists assay runs under a data directory: one folder
// per run with metadata.json and samples.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pharmsim/internal/pharma"
)

type Store struct {
	baseDir string
	log     *zap.Logger
}

func New(baseDir string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{baseDir: baseDir, log: log}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one saved assay run.
type RunMetadata struct {
	ID        string             `json:"id"`
	Drug      string             `json:"drug"`
	Model     string             `json:"model"`
	Mechanism string             `json:"mechanism"`
	Timestamp time.Time          `json:"timestamp"`
	DoseMin   float64            `json:"dose_min"`
	DoseMax   float64            `json:"dose_max"`
	Points    int                `json:"points"`
	Unit      string             `json:"unit"`
	Params    map[string]float64 `json:"params"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run folder and returns its ID.
func (s *Store) Save(meta RunMetadata, samples, control pharma.Curve) (string, error) {
	runID := fmt.Sprintf("%s_%s", meta.Drug, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"dose", "response"}
	if control != nil {
		header = append(header, "control")
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, sample := range samples {
		row := []string{
			strconv.FormatFloat(sample.Dose, 'f', 6, 64),
			strconv.FormatFloat(sample.Response, 'f', 6, 64),
		}
		if control != nil && i < len(control) {
			row = append(row, strconv.FormatFloat(control[i].Response, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	s.log.Debug("run saved",
		zap.String("id", runID),
		zap.String("drug", meta.Drug),
		zap.Int("samples", len(samples)))

	return runID, nil
}

// List returns metadata for all saved runs.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			s.log.Debug("skipping run dir without metadata", zap.String("dir", entry.Name()))
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			s.log.Warn("corrupt run metadata", zap.String("dir", entry.Name()), zap.Error(err))
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

// Load returns the metadata for one run.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSamples reads the sampled curve (and control curve, when present).
func (s *Store) LoadSamples(runID string) (samples, control pharma.Curve, err error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return pharma.Curve{}, nil, nil
	}

	hasControl := len(records[0]) > 2

	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		dose, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		resp, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		samples = append(samples, pharma.Sample{Dose: dose, Response: resp})

		if hasControl && len(record) > 2 {
			ctrl, err := strconv.ParseFloat(record[2], 64)
			if err == nil {
				control = append(control, pharma.Sample{Dose: dose, Response: ctrl})
			}
		}
	}

	return samples, control, nil
}
