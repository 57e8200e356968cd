package workflow

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
)

// stateSelectors maps a UI state to the CSS selector clicked to reach it.
// States without an entry (overview, log_collapsed) are the page's resting
// state and need no transition.
var stateSelectors = map[string]string{
	"task_detail":  ".task-item:first-child",
	"log_expanded": "#log-toggle",
}

// chromeCandidates are probed in order to detect an installed browser
// before any page work starts.
var chromeCandidates = []string{
	"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell",
}

// ChromeRenderer captures real screenshots with a headless Chrome. One
// browser is launched per Render call; one tab is opened per viewport and
// closed before the next, so no handle outlives the run.
type ChromeRenderer struct {
	ExecPath     string        // browser binary; auto-detected if empty
	SettleDelay  time.Duration // wait after a state transition; 500ms if zero
	ClickTimeout time.Duration // per-transition budget; 2s if zero
	NavigateWait time.Duration // extra wait after load for async rendering; 1s if zero
}

func (r *ChromeRenderer) Render(ctx context.Context, job RenderJob, logf func(string, ...any)) ([]string, error) {
	execPath := r.ExecPath
	if execPath == "" {
		var err error
		execPath, err = findChrome()
		if err != nil {
			return nil, err
		}
	}

	abs, err := filepath.Abs(job.HTMLPath)
	if err != nil {
		return nil, fmt.Errorf("resolve html path: %w", err)
	}
	url := "file://" + abs

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(execPath),
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()
	logf("launched browser: %s", execPath)

	settle := r.SettleDelay
	if settle == 0 {
		settle = 500 * time.Millisecond
	}
	clickTimeout := r.ClickTimeout
	if clickTimeout == 0 {
		clickTimeout = 2 * time.Second
	}
	navWait := r.NavigateWait
	if navWait == 0 {
		navWait = time.Second
	}

	var artifacts []string
	for _, vp := range job.Viewports {
		captured, err := r.captureViewport(allocCtx, vp, url, job, settle, clickTimeout, navWait, logf)
		if err != nil {
			return nil, fmt.Errorf("viewport %s: %w", vp.Name, err)
		}
		artifacts = append(artifacts, captured...)
	}
	logf("browser closed")
	return artifacts, nil
}

// captureViewport opens one tab sized to the viewport, walks the states,
// and closes the tab on every exit path.
func (r *ChromeRenderer) captureViewport(allocCtx context.Context, vp Viewport, url string, job RenderJob, settle, clickTimeout, navWait time.Duration, logf func(string, ...any)) ([]string, error) {
	tabCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	logf("setting viewport: %s (%dx%d)", vp.Name, vp.Width, vp.Height)
	err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(vp.Width, vp.Height),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(navWait),
	)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", url, err)
	}
	logf("loaded page: %s", url)

	var artifacts []string
	for _, state := range job.States {
		// Best-effort state transition: a missing selector must not
		// abort the run.
		if selector, ok := stateSelectors[state]; ok {
			clickCtx, clickCancel := context.WithTimeout(tabCtx, clickTimeout)
			err := chromedp.Run(clickCtx,
				chromedp.Click(selector, chromedp.ByQuery),
				chromedp.Sleep(settle),
			)
			clickCancel()
			if err != nil {
				logf("could not navigate to state: %s", state)
			}
		}

		name := ArtifactName(vp.Name, state)
		path := filepath.Join(job.OutputDir, name)

		var buf []byte
		// CaptureScreenshot is viewport-sized, not full-page.
		if err := chromedp.Run(tabCtx, chromedp.CaptureScreenshot(&buf)); err != nil {
			return nil, fmt.Errorf("capture %s: %w", name, err)
		}
		if err := os.WriteFile(path, buf, 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		logf("captured: %s", name)
		artifacts = append(artifacts, path)
	}
	return artifacts, nil
}

// findChrome locates an installed browser binary or reports that real
// rendering is unavailable.
func findChrome() (string, error) {
	for _, candidate := range chromeCandidates {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no Chrome/Chromium binary found in PATH (tried %v); install one or use the stub renderer", chromeCandidates)
}
