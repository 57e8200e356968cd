package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"flowcap/internal/logging"
	"flowcap/internal/publish"
	"flowcap/internal/workflow"
)

var screenshotFlags struct {
	htmlPath   string
	outputDir  string
	viewports  []string
	states     []string
	browser    string
	commitToPR bool
	branch     string
	dbPath     string
	noHistory  bool
	verbose    bool
}

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture screenshots of an HTML page across viewports and states",
	Long: `Captures one {viewport}_{state}.png per viewport/state pair. The stub
renderer touches placeholder files; --browser chrome drives a headless
Chrome for real captures.`,
	RunE: runScreenshot,
}

func init() {
	f := screenshotCmd.Flags()
	f.StringVar(&screenshotFlags.htmlPath, "html", "", "path to the HTML page (required)")
	f.StringVar(&screenshotFlags.outputDir, "out", "", "output directory (default from config)")
	f.StringSliceVar(&screenshotFlags.viewports, "viewports", nil, "viewports to capture: desktop, tablet, mobile")
	f.StringSliceVar(&screenshotFlags.states, "states", nil, "UI states to capture")
	f.StringVar(&screenshotFlags.browser, "browser", "stub", "renderer: stub or chrome")
	f.BoolVar(&screenshotFlags.commitToPR, "commit-to-pr", false, "commit artifacts and push to a PR branch")
	f.StringVar(&screenshotFlags.branch, "branch", publish.DefaultBranch, "branch for --commit-to-pr")
	f.StringVar(&screenshotFlags.dbPath, "db", "", "run-history DB path (default "+historyDefaultHint+")")
	f.BoolVar(&screenshotFlags.noHistory, "no-history", false, "do not record this run in the history DB")
	f.BoolVarP(&screenshotFlags.verbose, "verbose", "v", false, "print execution logs")

	_ = screenshotCmd.MarkFlagRequired("html")
}

func runScreenshot(cmd *cobra.Command, _ []string) error {
	var renderer workflow.Renderer
	switch screenshotFlags.browser {
	case "stub":
		renderer = &workflow.StubRenderer{}
	case "chrome":
		renderer = &workflow.ChromeRenderer{}
	default:
		return fmt.Errorf("unknown browser %q (valid: stub, chrome)", screenshotFlags.browser)
	}

	outputDir := screenshotFlags.outputDir
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	viewports := screenshotFlags.viewports
	if len(viewports) == 0 {
		viewports = cfg.Viewports
	}
	states := screenshotFlags.states
	if len(states) == 0 {
		states = cfg.States
	}

	wf := &workflow.Screenshot{
		HTMLPath:  screenshotFlags.htmlPath,
		OutputDir: outputDir,
		Viewports: viewports,
		States:    states,
		Renderer:  renderer,
	}

	res := wf.Execute(cmd.Context())

	if !screenshotFlags.noHistory {
		recordHistory(screenshotFlags.dbPath, res)
	}

	printResult(cmd.OutOrStdout(), res, screenshotFlags.verbose)
	if !res.Success {
		return errors.New("workflow failed")
	}

	// Publishing is fire-and-forget: a git failure is logged, not fatal.
	if screenshotFlags.commitToPR {
		if err := publish.CommitAndPush(res.Artifacts, publish.Options{Branch: screenshotFlags.branch}); err != nil {
			logging.New("publish").Error("git publish failed", slog.Any("err", err))
		}
	}
	return nil
}
