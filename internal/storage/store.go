package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/objtrack/objtrack/internal/tracking"
)

// Store persists tracking runs: one directory per run holding
// metadata.json and the pose trace as trace.csv.
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
	ID              string    `json:"id"`
	Object          string    `json:"object"`
	Timestamp       time.Time `json:"timestamp"`
	UseGPU          bool      `json:"use_gpu"`
	Bodies          int       `json:"bodies"`
	Frames          int       `json:"frames"`
	EvaluationCount int       `json:"evaluation_count"`
	MaxSampleCount  int       `json:"max_sample_count"`
	UpdateRate      float64   `json:"update_rate"`
	MaxKLDivergence float64   `json:"max_kl_divergence"`
}

// Save writes metadata plus the per-frame estimates and returns the run ID.
func (s *Store) Save(meta RunMetadata, times []float64, estimates []tracking.State) (string, error) {
	runID := fmt.Sprintf("%s_%d", filepath.Base(meta.Object), time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Frames = len(estimates)

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

	traceFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer traceFile.Close()

	w := csv.NewWriter(traceFile)
	defer w.Flush()

	if len(estimates) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := range estimates[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, est := range estimates {
		row := make([]string, 0, len(est)+1)
		t := 0.0
		if i < len(times) {
			t = times[i]
		}
		row = append(row, strconv.FormatFloat(t, 'f', 6, 64))
		for _, val := range est {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
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

// LoadTrace reads back the per-frame estimates of a saved run.
func (s *Store) LoadTrace(runID string) ([]float64, []tracking.State, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, []tracking.State{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([]tracking.State, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, err
		}
		state := make(tracking.State, len(record)-1)
		for j, field := range record[1:] {
			state[j], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, err
			}
		}
		times = append(times, t)
		states = append(states, state)
	}
	return times, states, nil
}
