// Package manifest defines the persisted descriptor of a recorded workflow
// and the result shape shared by every workflow run.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// DefaultVersion is assigned to manifests recorded without an explicit version.
const DefaultVersion = "1.0.0"

// FileName is the manifest file name inside a recording directory.
const FileName = "manifest.json"

// Manifest describes a recorded workflow: its identity, the parameters an
// executor must supply before replay, and the artifacts a replay is expected
// to produce. Once persisted a manifest is immutable; Save overwrites, there
// is no in-place update.
type Manifest struct {
	WorkflowName string `json:"workflow_name"`
	Description  string `json:"description"`
	Version      string `json:"version"`
	RecordedAt   string `json:"recorded_at"`
	RecordedBy   string `json:"recorded_by"`
	// InputParameters maps parameter name to a type tag ("string", "path", ...).
	// The key set is the complete and exact set of required parameters.
	InputParameters map[string]string `json:"input_parameters"`
	OutputArtifacts []string          `json:"output_artifacts"`
	Dependencies    []string          `json:"dependencies"`
	RecordingPath   string            `json:"recording_path"`
}

// New returns a manifest with version and timestamp defaults filled in.
func New(name, description string) *Manifest {
	return &Manifest{
		WorkflowName:    name,
		Description:     description,
		Version:         DefaultVersion,
		RecordedAt:      time.Now().UTC().Format(time.RFC3339),
		InputParameters: map[string]string{},
	}
}

// Save serializes the manifest as indented JSON at path, overwriting any
// existing file. Fails if the parent directory does not exist.
func (m *Manifest) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Load reads and parses a manifest from path. A syntactically valid document
// missing workflow_name is rejected as malformed.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.WorkflowName == "" {
		return nil, fmt.Errorf("parse manifest %s: missing workflow_name", path)
	}
	return &m, nil
}
