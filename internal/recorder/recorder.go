// Package recorder provides the scoped-acquisition helper for capturing a
// manually-performed workflow. It guarantees the recording directory exists
// for the duration of the scope and persists the manifest on Close, on every
// exit path. The actual action capture is delegated to a Capturer.
package recorder

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"flowcap/internal/logging"
	"flowcap/internal/manifest"
)

// DefaultRoot is the default recordings directory, relative to the
// working directory. Thread an explicit root through Options to override.
const DefaultRoot = "recordings"

// Capturer is the external capture collaborator. The recorder only brackets
// its lifetime; what (if anything) gets captured is the capturer's business.
type Capturer interface {
	Start(dir string) error
	Stop() error
}

// NopCapturer is the placeholder capturer: recording is performed manually
// by the operator while the scope is open.
type NopCapturer struct{}

func (NopCapturer) Start(string) error { return nil }
func (NopCapturer) Stop() error        { return nil }

// Options configures one recording scope.
type Options struct {
	Name            string
	Description     string
	RecordedBy      string
	OutputArtifacts []string
	RequiredInputs  map[string]string
	Root            string   // recordings root; DefaultRoot if empty
	Capturer        Capturer // NopCapturer if nil
}

// Recording is an open recording scope. The caller performs the workflow
// while the scope is open, then calls Close, which persists the manifest.
type Recording struct {
	Dir      string
	Manifest *manifest.Manifest

	capturer Capturer
	log      *slog.Logger
}

// Begin opens a recording scope: creates root/name (recursively, idempotent),
// builds the in-memory manifest, and starts the capturer. Callers must
// `defer rec.Close()` so the manifest is written even on error paths.
func Begin(opts Options) (*Recording, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("recording name is required")
	}
	root := opts.Root
	if root == "" {
		root = DefaultRoot
	}
	capturer := opts.Capturer
	if capturer == nil {
		capturer = NopCapturer{}
	}

	dir := filepath.Join(root, opts.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create recording dir: %w", err)
	}

	m := manifest.New(opts.Name, opts.Description)
	m.RecordedBy = opts.RecordedBy
	m.OutputArtifacts = opts.OutputArtifacts
	if opts.RequiredInputs != nil {
		m.InputParameters = opts.RequiredInputs
	}
	m.RecordingPath = dir

	if err := capturer.Start(dir); err != nil {
		return nil, fmt.Errorf("start capture: %w", err)
	}

	log := logging.New("recorder")
	log.Info("recording workflow", slog.String("name", opts.Name), slog.String("dir", dir))

	return &Recording{Dir: dir, Manifest: m, capturer: capturer, log: log}, nil
}

// Close stops the capturer and persists the manifest as dir/manifest.json.
// The manifest write happens even when the capturer fails to stop.
func (r *Recording) Close() error {
	stopErr := r.capturer.Stop()

	path := filepath.Join(r.Dir, manifest.FileName)
	if err := r.Manifest.Save(path); err != nil {
		return fmt.Errorf("persist manifest: %w", err)
	}
	r.log.Info("recording saved", slog.String("manifest", path))

	if stopErr != nil {
		return fmt.Errorf("stop capture: %w", stopErr)
	}
	return nil
}
