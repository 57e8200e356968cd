package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"flowcap/internal/logging"
	"flowcap/internal/manifest"
)

// DemoWorkflowName identifies demo-generation runs in Results.
const DemoWorkflowName = "demo_generation"

// demoFormats is the closed set of supported output formats.
var demoFormats = map[string]bool{"gif": true, "mp4": true, "webm": true}

// Demo generates an animated demo from a demo script. The full pipeline
// (start recording, run the script, stop after the duration, transcode,
// compress) is not implemented yet; Execute validates inputs, logs the
// intended run, and succeeds with zero artifacts.
type Demo struct {
	ScriptPath      string
	Format          string // gif, mp4, or webm; gif if empty
	DurationSeconds int    // 15 if zero
	FPS             int    // 10 if zero
	OutputPath      string // "demo.<format>" if empty

	log *slog.Logger
}

func (d *Demo) Execute(ctx context.Context) manifest.Result {
	start := time.Now()
	var logs []string
	logf := func(format string, args ...any) {
		logs = append(logs, fmt.Sprintf(format, args...))
	}

	if d.log == nil {
		d.log = logging.New("demo")
	}

	format := d.Format
	if format == "" {
		format = "gif"
	}
	if !demoFormats[format] {
		return manifest.Failure(DemoWorkflowName, logs,
			"unsupported output format %q (valid: gif, mp4, webm)", format).WithElapsed(start)
	}

	if _, err := os.Stat(d.ScriptPath); err != nil {
		return manifest.Failure(DemoWorkflowName, logs,
			"demo script not found: %s", d.ScriptPath).WithElapsed(start)
	}

	duration := d.DurationSeconds
	if duration == 0 {
		duration = 15
	}
	fps := d.FPS
	if fps == 0 {
		fps = 10
	}
	output := d.OutputPath
	if output == "" {
		output = "demo." + format
	}

	logf("demo script: %s", d.ScriptPath)
	logf("output format: %s", format)
	logf("duration: %ds @ %d fps", duration, fps)
	logf("output path: %s", output)
	logf("demo generation not yet implemented (stub)")

	d.log.Info("demo generation requested",
		slog.String("script", d.ScriptPath),
		slog.String("format", format),
		slog.Int("duration_s", duration),
		slog.Int("fps", fps))

	return manifest.Result{
		Success:      true,
		WorkflowName: DemoWorkflowName,
		Artifacts:    []string{}, // would be []string{output} once the pipeline exists
		Logs:         logs,
	}.WithElapsed(start)
}
