// Package storage persists simulation runs under a data directory: one
// subdirectory per run with metadata.json, states.csv, and (after detection)
// events.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/m-kovac/shcsim/internal/dynamo"
	"github.com/m-kovac/shcsim/internal/ripple"
	"github.com/m-kovac/shcsim/internal/shc"
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
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Integrator string             `json:"integrator"`
	Drive      string             `json:"drive"`
	Preset     string             `json:"preset,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
}

func (s *Store) Save(meta RunMetadata, result *dynamo.Result) (string, error) {
	runID := fmt.Sprintf("shc_%d", time.Now().Unix())
	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Steps = len(result.States)
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
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

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.States) == 0 {
		return runID, nil
	}

	header := []string{"time_ms"}
	header = append(header, shc.StateNames[:]...)

	numDrives := 0
	if len(result.Drives) > 0 && len(result.Drives[0]) > 0 {
		numDrives = len(result.Drives[0])
		driveNames := []string{"u_ca3", "u_ca1", "u_ach"}
		for i := 0; i < numDrives && i < len(driveNames); i++ {
			header = append(header, driveNames[i])
		}
	}

	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, val := range result.States[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if numDrives > 0 {
			if i < len(result.Drives) && len(result.Drives[i]) == numDrives {
				for _, val := range result.Drives[i] {
					row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
				}
			} else {
				for j := 0; j < numDrives; j++ {
					row = append(row, "0")
				}
			}
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// SaveEvents writes detected ripples next to the run's trajectory.
func (s *Store) SaveEvents(runID string, events []ripple.Event, dt float64) error {
	file, err := os.Create(filepath.Join(s.baseDir, runID, "events.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"start_index", "duration_samples", "start_ms", "duration_ms"}); err != nil {
		return err
	}
	for _, e := range events {
		row := []string{
			strconv.Itoa(e.Start),
			strconv.Itoa(e.Duration),
			strconv.FormatFloat(e.StartMs(dt), 'f', 3, 64),
			strconv.FormatFloat(e.DurationMs(dt), 'f', 3, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
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

// LoadStates reads a stored trajectory back as columns of state values plus
// the time axis.
func (s *Store) LoadStates(runID string) ([][]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		state := make([]float64, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			state = append(state, val)
		}
		states = append(states, state)
	}

	return states, times, nil
}
