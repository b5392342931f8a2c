package analysis

import (
	"encoding/json"
	"fmt"
	"os"
)

// Record is the read-only output of audio analysis: everything the show
// generator needs to know about one track.
type Record struct {
	Filepath          string    `json:"filepath,omitempty"`
	Duration          float64   `json:"duration"`
	BPM               float64   `json:"bpm"`
	BeatTimes         []float64 `json:"beat_times"`
	OnsetTimes        []float64 `json:"onset_times"`
	SegmentBoundaries []float64 `json:"segment_boundaries"`
	BeatEnergy        []float64 `json:"beat_energy,omitempty"`
}

// requiredFields must be present in an analysis JSON. beat_energy is
// optional; the generator derives it from onset density when absent.
var requiredFields = []string{
	"duration", "bpm", "beat_times", "onset_times", "segment_boundaries",
}

// Load reads an analysis JSON and checks the required fields are present.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes analysis JSON, failing fast on a missing required field.
func Parse(data []byte) (*Record, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse analysis JSON: %w", err)
	}
	for _, field := range requiredFields {
		if _, ok := raw[field]; !ok {
			return nil, fmt.Errorf("analysis JSON missing field %q", field)
		}
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse analysis JSON: %w", err)
	}
	return &rec, nil
}

// Save writes the record next to its audio file as <stem>_analysis.json.
func (r *Record) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
