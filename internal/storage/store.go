// Package storage persists completed runs: metadata as JSON and the yearly
// period series as CSV, one directory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/trojansim/internal/resonance"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string    `json:"id"`
	System     string    `json:"system"`
	Timestamp  time.Time `json:"timestamp"`
	Step       float64   `json:"step"`
	Margin     float64   `json:"margin"`
	MaxYears   int       `json:"max_years"`
	Propagator string    `json:"propagator"`
	Years      int       `json:"years"`
	Reason     string    `json:"reason"`
	Steps      int       `json:"steps"`
}

// Save writes one run to disk and returns its ID.
func (s *Store) Save(systemName string, cfg resonance.Config, propagator string, result *resonance.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", systemName, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		System:     systemName,
		Timestamp:  time.Now(),
		Step:       cfg.Step,
		Margin:     cfg.Margin,
		MaxYears:   cfg.MaxYears,
		Propagator: propagator,
		Years:      result.Years,
		Reason:     string(result.Reason),
		Steps:      result.StepsTaken,
	}

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

	csvFile, err := os.Create(filepath.Join(runDir, "periods.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"year", "p1_days", "p2_days"}); err != nil {
		return "", err
	}
	for _, sample := range result.Series {
		row := []string{
			strconv.Itoa(sample.Year),
			strconv.FormatFloat(sample.P1, 'f', 6, 64),
			strconv.FormatFloat(sample.P2, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

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

// LoadSeries reads the yearly period samples of a stored run.
func (s *Store) LoadSeries(runID string) ([]resonance.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "periods.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []resonance.Sample{}, nil
	}

	series := make([]resonance.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != 3 {
			continue
		}
		year, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		p1, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		p2, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		series = append(series, resonance.Sample{Year: year, P1: p1, P2: p2})
	}

	return series, nil
}
