package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/m-kovac/shcsim/internal/dynamo"
	"github.com/m-kovac/shcsim/internal/ripple"
)

type ExportData struct {
	Meta   RunMetadata    `json:"meta"`
	Times  []float64      `json:"times"`
	States [][]float64    `json:"states"`
	Events []ripple.Event `json:"events,omitempty"`
}

// ExportJSON writes a run (and optionally its events) as a single JSON
// document to w.
func ExportJSON(w io.Writer, meta RunMetadata, result *dynamo.Result, events []ripple.Event) error {
	data := ExportData{
		Meta:   meta,
		Times:  result.Times,
		States: make([][]float64, len(result.States)),
		Events: events,
	}
	for i, s := range result.States {
		data.States[i] = s
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportStoredJSON re-exports a stored run by ID to the given path, or to
// stdout when path is empty.
func (s *Store) ExportStoredJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := s.LoadStates(runID)
	if err != nil {
		return err
	}

	data := ExportData{Meta: *meta, Times: times, States: states}

	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
