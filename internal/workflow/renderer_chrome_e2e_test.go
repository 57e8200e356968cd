//go:build e2e

package workflow

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Requires an installed Chrome/Chromium. Run with: go test -tags e2e ./internal/workflow
func TestChromeRenderer_CapturesRealScreenshots(t *testing.T) {
	if _, err := findChrome(); err != nil {
		t.Skip("no browser installed:", err)
	}

	html := filepath.Join(t.TempDir(), "page.html")
	page := `<html><body>
		<h1>flowcap e2e</h1>
		<ul><li class="task-item">first task</li></ul>
		<button id="log-toggle">logs</button>
	</body></html>`
	if err := os.WriteFile(html, []byte(page), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	outDir := filepath.Join(t.TempDir(), "shots")
	wf := &Screenshot{
		HTMLPath:  html,
		OutputDir: outDir,
		Viewports: []string{"desktop", "mobile"},
		States:    []string{"overview", "task_detail"},
		Renderer:  &ChromeRenderer{},
	}

	res := wf.Execute(ctx)
	if !res.Success {
		t.Fatalf("execute: %s", res.Error)
	}
	if len(res.Artifacts) != 4 {
		t.Fatalf("want 4 artifacts, got %d: %v", len(res.Artifacts), res.Artifacts)
	}
	for _, p := range res.Artifacts {
		info, err := os.Stat(p)
		if err != nil {
			t.Errorf("artifact missing: %s", p)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("artifact empty: %s", p)
		}
	}
}
