package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"flowcap/internal/logging"
	"flowcap/internal/manifest"
)

// ScreenshotWorkflowName identifies screenshot runs in Results.
const ScreenshotWorkflowName = "screenshot_workflow"

// RenderJob is one screenshot run: which page, where to write, and the
// viewport × state grid to capture.
type RenderJob struct {
	HTMLPath  string
	OutputDir string
	Viewports []Viewport
	States    []string
}

// Renderer is the capture seam for the screenshot workflow: the stub
// renderer touches placeholder files, the Chrome renderer drives a headless
// browser. Returned paths are the artifacts actually written, in
// viewport-then-state order.
type Renderer interface {
	Render(ctx context.Context, job RenderJob, logf func(format string, args ...any)) ([]string, error)
}

// Screenshot captures an HTML page across a viewport × state grid.
type Screenshot struct {
	HTMLPath  string
	OutputDir string
	Viewports []string // subset of the preset names; DefaultViewports if empty
	States    []string // DefaultStates if empty
	Renderer  Renderer // StubRenderer if nil

	log *slog.Logger
}

// ArtifactName is the file-name contract shared by all renderers.
func ArtifactName(viewport, state string) string {
	return fmt.Sprintf("%s_%s.png", viewport, state)
}

// Execute validates inputs, creates the output directory, and delegates
// capture to the renderer. Like every workflow, it reports failures through
// the Result instead of returning an error.
func (s *Screenshot) Execute(ctx context.Context) manifest.Result {
	start := time.Now()
	var logs []string
	logf := func(format string, args ...any) {
		logs = append(logs, fmt.Sprintf(format, args...))
	}

	if s.log == nil {
		s.log = logging.New("screenshot")
	}

	if _, err := os.Stat(s.HTMLPath); err != nil {
		return manifest.Failure(ScreenshotWorkflowName, logs,
			"HTML file not found: %s", s.HTMLPath).WithElapsed(start)
	}

	viewportNames := s.Viewports
	if len(viewportNames) == 0 {
		viewportNames = DefaultViewports
	}
	vps, err := LookupViewports(viewportNames)
	if err != nil {
		return manifest.Failure(ScreenshotWorkflowName, logs, "%v", err).WithElapsed(start)
	}

	states := s.States
	if len(states) == 0 {
		states = DefaultStates
	}

	if err := os.MkdirAll(s.OutputDir, 0755); err != nil {
		return manifest.Failure(ScreenshotWorkflowName, logs,
			"create output directory: %v", err).WithElapsed(start)
	}
	logf("created output directory: %s", s.OutputDir)

	renderer := s.Renderer
	if renderer == nil {
		renderer = &StubRenderer{}
	}

	s.log.Info("capturing screenshots",
		slog.String("html", s.HTMLPath),
		slog.Int("viewports", len(vps)),
		slog.Int("states", len(states)))

	artifacts, err := renderer.Render(ctx, RenderJob{
		HTMLPath:  s.HTMLPath,
		OutputDir: s.OutputDir,
		Viewports: vps,
		States:    states,
	}, logf)
	if err != nil {
		return manifest.Failure(ScreenshotWorkflowName, logs, "%v", err).WithElapsed(start)
	}

	return manifest.Result{
		Success:      true,
		WorkflowName: ScreenshotWorkflowName,
		Artifacts:    artifacts,
		Logs:         logs,
	}.WithElapsed(start)
}

// StubRenderer writes an empty placeholder file per (viewport, state) pair
// with a small fixed delay standing in for real capture latency.
type StubRenderer struct {
	Delay time.Duration // per-pair delay; DefaultStubCaptureDelay if zero
}

// DefaultStubCaptureDelay approximates one real capture.
const DefaultStubCaptureDelay = 100 * time.Millisecond

func (r *StubRenderer) Render(ctx context.Context, job RenderJob, logf func(string, ...any)) ([]string, error) {
	delay := r.Delay
	if delay == 0 {
		delay = DefaultStubCaptureDelay
	}

	var artifacts []string
	for _, vp := range job.Viewports {
		logf("setting viewport: %s (%dx%d)", vp.Name, vp.Width, vp.Height)
		for _, state := range job.States {
			name := ArtifactName(vp.Name, state)
			logf("capturing: %s", name)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}

			path := filepath.Join(job.OutputDir, name)
			f, err := os.Create(path)
			if err != nil {
				return nil, fmt.Errorf("touch %s: %w", name, err)
			}
			if err := f.Close(); err != nil {
				return nil, fmt.Errorf("touch %s: %w", name, err)
			}
			artifacts = append(artifacts, path)
		}
	}
	return artifacts, nil
}
