package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"flowcap/internal/logging"
	"flowcap/internal/workflow"
)

var watchFlags struct {
	htmlPath  string
	outputDir string
	viewports []string
	states    []string
	browser   string
	settle    time.Duration
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-capture screenshots whenever the HTML source changes",
	Long: `Watches the HTML file and re-runs the screenshot workflow on every
write. Useful while iterating on a page. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.StringVar(&watchFlags.htmlPath, "html", "", "path to the HTML page (required)")
	f.StringVar(&watchFlags.outputDir, "out", "", "output directory (default from config)")
	f.StringSliceVar(&watchFlags.viewports, "viewports", nil, "viewports to capture")
	f.StringSliceVar(&watchFlags.states, "states", nil, "UI states to capture")
	f.StringVar(&watchFlags.browser, "browser", "stub", "renderer: stub or chrome")
	f.DurationVar(&watchFlags.settle, "settle", 300*time.Millisecond, "quiet period after a change before re-capturing")

	_ = watchCmd.MarkFlagRequired("html")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	var renderer workflow.Renderer
	switch watchFlags.browser {
	case "stub":
		renderer = &workflow.StubRenderer{}
	case "chrome":
		renderer = &workflow.ChromeRenderer{}
	default:
		return fmt.Errorf("unknown browser %q (valid: stub, chrome)", watchFlags.browser)
	}

	if _, err := os.Stat(watchFlags.htmlPath); err != nil {
		return fmt.Errorf("HTML file not found: %s", watchFlags.htmlPath)
	}

	outputDir := watchFlags.outputDir
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on save,
	// which drops a direct file watch.
	dir := filepath.Dir(watchFlags.htmlPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	log := logging.New("watch")
	log.Info("watching for changes", slog.String("html", watchFlags.htmlPath))

	capture := func() {
		wf := &workflow.Screenshot{
			HTMLPath:  watchFlags.htmlPath,
			OutputDir: outputDir,
			Viewports: watchFlags.viewports,
			States:    watchFlags.states,
			Renderer:  renderer,
		}
		res := wf.Execute(ctx)
		printResult(cmd.OutOrStdout(), res, false)
	}

	// Initial capture so the output is populated before the first edit.
	capture()

	target := filepath.Clean(watchFlags.htmlPath)
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			log.Info("stopping watch")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// Debounce bursts of writes into one capture.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchFlags.settle, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			log.Info("change detected, re-capturing")
			capture()
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", slog.Any("err", watchErr))
		}
	}
}
