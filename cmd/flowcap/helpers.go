package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"flowcap/internal/history"
	"flowcap/internal/logging"
	"flowcap/internal/manifest"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
)

// parseParams converts repeated key=value flags into a parameter map.
func parseParams(pairs []string) (map[string]string, error) {
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid parameter %q (want key=value)", pair)
		}
		params[key] = value
	}
	return params, nil
}

// printResult renders one execution result for humans.
func printResult(w io.Writer, res manifest.Result, verbose bool) {
	if res.Success {
		fmt.Fprintf(w, "%s %s (%.2fs)\n", okColor.Sprint("OK"), res.WorkflowName, res.ExecutionTime)
	} else {
		fmt.Fprintf(w, "%s %s (%.2fs): %s\n", failColor.Sprint("FAILED"), res.WorkflowName, res.ExecutionTime, res.Error)
	}

	if len(res.Artifacts) > 0 {
		fmt.Fprintf(w, "Artifacts (%d):\n", len(res.Artifacts))
		for _, artifact := range res.Artifacts {
			fmt.Fprintf(w, "  - %s\n", artifact)
		}
	}

	if verbose && len(res.Logs) > 0 {
		fmt.Fprintln(w, "Logs:")
		for _, line := range res.Logs {
			fmt.Fprintf(w, "  %s\n", dimColor.Sprint(line))
		}
	}
}

// recordHistory appends the result to the run-history DB. History is
// bookkeeping, not part of the run: failures are logged and swallowed.
func recordHistory(dbPath string, res manifest.Result) {
	if dbPath == "" {
		dbPath = history.DefaultDBPath
	}
	store, err := history.Open(dbPath)
	if err != nil {
		logging.New("history").Warn("history disabled", "err", err)
		return
	}
	defer store.Close()
	if _, err := store.RecordRun(res); err != nil {
		logging.New("history").Warn("record run", "err", err)
	}
}
