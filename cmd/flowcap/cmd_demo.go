package main

import (
	"errors"

	"github.com/spf13/cobra"

	"flowcap/internal/workflow"
)

var demoFlags struct {
	scriptPath string
	format     string
	duration   int
	fps        int
	outputPath string
	dbPath     string
	noHistory  bool
	verbose    bool
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Generate an animated demo from a demo script",
	Long: `Validates the demo script and output format and logs the intended
recording pipeline. The record/transcode pipeline itself is not implemented
yet; the command succeeds with zero artifacts.`,
	RunE: runDemoCmd,
}

func init() {
	f := demoCmd.Flags()
	f.StringVar(&demoFlags.scriptPath, "script", "", "demo script path (required)")
	f.StringVar(&demoFlags.format, "format", "gif", "output format: gif, mp4, webm")
	f.IntVar(&demoFlags.duration, "duration", 15, "recording duration in seconds")
	f.IntVar(&demoFlags.fps, "fps", 10, "frame rate")
	f.StringVar(&demoFlags.outputPath, "out", "", "output path (default demo.<format>)")
	f.StringVar(&demoFlags.dbPath, "db", "", "run-history DB path (default "+historyDefaultHint+")")
	f.BoolVar(&demoFlags.noHistory, "no-history", false, "do not record this run in the history DB")
	f.BoolVarP(&demoFlags.verbose, "verbose", "v", false, "print execution logs")

	_ = demoCmd.MarkFlagRequired("script")
}

func runDemoCmd(cmd *cobra.Command, _ []string) error {
	wf := &workflow.Demo{
		ScriptPath:      demoFlags.scriptPath,
		Format:          demoFlags.format,
		DurationSeconds: demoFlags.duration,
		FPS:             demoFlags.fps,
		OutputPath:      demoFlags.outputPath,
	}

	res := wf.Execute(cmd.Context())

	if !demoFlags.noHistory {
		recordHistory(demoFlags.dbPath, res)
	}

	printResult(cmd.OutOrStdout(), res, demoFlags.verbose)
	if !res.Success {
		return errors.New("workflow failed")
	}
	return nil
}
