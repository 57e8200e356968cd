// Package executor replays a recorded workflow by name: it loads the
// persisted manifest, validates caller-supplied parameters against the
// manifest's required set, runs the replay seam, and collects the files
// matching the manifest's output-artifact patterns.
package executor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"flowcap/internal/logging"
	"flowcap/internal/manifest"
	"flowcap/internal/recorder"
)

// Replayer is the replay seam. A real implementation would load the
// recording at m.RecordingPath and replay the captured actions with the
// given parameter substitutions, writing output files into workDir.
type Replayer interface {
	Replay(ctx context.Context, m *manifest.Manifest, params map[string]string, logf func(format string, args ...any)) error
}

// Executor runs one named workflow per Execute call. It carries no state
// across calls; each call owns its own log accumulator and Result.
type Executor struct {
	WorkflowName string
	Parameters   map[string]string
	Root         string   // recordings root; recorder.DefaultRoot if empty
	WorkDir      string   // artifact collection base; "." if empty
	Replayer     Replayer // StubReplayer if nil

	log *slog.Logger
}

// New returns an executor for the named workflow with stub replay defaults.
func New(name string, params map[string]string) *Executor {
	return &Executor{WorkflowName: name, Parameters: params}
}

// Execute is total from the caller's perspective: every failure, including
// a panicking replayer, is converted into a Result with Success=false and
// the logs accumulated up to that point.
func (e *Executor) Execute(ctx context.Context) (res manifest.Result) {
	start := time.Now()
	var logs []string
	logf := func(format string, args ...any) {
		logs = append(logs, fmt.Sprintf(format, args...))
	}

	defer func() {
		if r := recover(); r != nil {
			res = manifest.Failure(e.WorkflowName, logs, "replay panic: %v", r).WithElapsed(start)
		}
	}()

	if e.log == nil {
		e.log = logging.New("executor")
	}

	root := e.Root
	if root == "" {
		root = recorder.DefaultRoot
	}

	manifestPath := filepath.Join(root, e.WorkflowName, manifest.FileName)
	if _, err := os.Stat(manifestPath); err != nil {
		return manifest.Failure(e.WorkflowName, logs, "workflow not found: %s", e.WorkflowName).WithElapsed(start)
	}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return manifest.Failure(e.WorkflowName, logs, "%v", err).WithElapsed(start)
	}
	logf("loaded workflow: %s", m.WorkflowName)

	if missing := missingParams(m.InputParameters, e.Parameters); len(missing) > 0 {
		return manifest.Failure(e.WorkflowName, logs,
			"missing required parameters: %s", strings.Join(missing, ", ")).WithElapsed(start)
	}
	logf("parameters validated: %s", formatParams(e.Parameters))

	replayer := e.Replayer
	if replayer == nil {
		replayer = &StubReplayer{}
	}

	e.log.Info("replaying workflow",
		slog.String("workflow", m.WorkflowName),
		slog.Int("artifact_patterns", len(m.OutputArtifacts)))

	if err := replayer.Replay(ctx, m, e.Parameters, logf); err != nil {
		return manifest.Failure(e.WorkflowName, logs, "replay: %v", err).WithElapsed(start)
	}

	artifacts, err := e.collectArtifacts(m.OutputArtifacts, logf)
	if err != nil {
		return manifest.Failure(e.WorkflowName, logs, "collect artifacts: %v", err).WithElapsed(start)
	}

	return manifest.Result{
		Success:      true,
		WorkflowName: e.WorkflowName,
		Artifacts:    artifacts,
		Logs:         logs,
	}.WithElapsed(start)
}

// collectArtifacts globs each declared pattern against WorkDir and returns
// the matches in pattern order, lexically sorted within a pattern.
func (e *Executor) collectArtifacts(patterns []string, logf func(string, ...any)) ([]string, error) {
	workDir := e.WorkDir
	if workDir == "" {
		workDir = "."
	}

	var artifacts []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(os.DirFS(workDir), pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, match := range matches {
			full := filepath.Join(workDir, filepath.FromSlash(match))
			if info, err := os.Stat(full); err != nil || info.IsDir() {
				continue
			}
			artifacts = append(artifacts, full)
		}
		logf("collected %d artifact(s) for pattern: %s", len(matches), pattern)
	}
	return artifacts, nil
}

func missingParams(required map[string]string, supplied map[string]string) []string {
	var missing []string
	for name := range required {
		if _, ok := supplied[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

func formatParams(params map[string]string) string {
	if len(params) == 0 {
		return "(none)"
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	return strings.Join(pairs, " ")
}
