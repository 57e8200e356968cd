package workflow

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var (
	_ Workflow = (*Screenshot)(nil)
	_ Workflow = (*Demo)(nil)
	_ Renderer = (*StubRenderer)(nil)
	_ Renderer = (*ChromeRenderer)(nil)
)

func writeHTML(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "viewer.html")
	if err := os.WriteFile(path, []byte("<html><body>viewer</body></html>"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func fastStub() *StubRenderer {
	return &StubRenderer{Delay: time.Millisecond}
}

func TestScreenshot_HTMLNotFound(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "shots")
	wf := &Screenshot{
		HTMLPath:  filepath.Join(t.TempDir(), "absent.html"),
		OutputDir: outDir,
		Renderer:  fastStub(),
	}

	res := wf.Execute(context.Background())
	if res.Success {
		t.Fatal("expected failure for missing HTML")
	}
	if !strings.Contains(res.Error, "not found") {
		t.Errorf("error should contain 'not found', got: %q", res.Error)
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Error("output directory must not be created when validation fails")
	}
}

func TestScreenshot_StubProducesGrid(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "shots")
	wf := &Screenshot{
		HTMLPath:  writeHTML(t),
		OutputDir: outDir,
		Viewports: []string{"desktop", "mobile"},
		States:    []string{"overview"},
		Renderer:  fastStub(),
	}

	res := wf.Execute(context.Background())
	if !res.Success {
		t.Fatalf("unexpected failure: %q", res.Error)
	}

	want := []string{
		filepath.Join(outDir, "desktop_overview.png"),
		filepath.Join(outDir, "mobile_overview.png"),
	}
	if diff := cmp.Diff(want, res.Artifacts); diff != "" {
		t.Errorf("artifacts (-want +got):\n%s", diff)
	}
	for _, p := range res.Artifacts {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("artifact missing on disk: %s", p)
		}
	}
}

func TestScreenshot_DefaultGridSize(t *testing.T) {
	wf := &Screenshot{
		HTMLPath:  writeHTML(t),
		OutputDir: filepath.Join(t.TempDir(), "shots"),
		Renderer:  fastStub(),
	}

	res := wf.Execute(context.Background())
	if !res.Success {
		t.Fatalf("unexpected failure: %q", res.Error)
	}
	want := len(DefaultViewports) * len(DefaultStates)
	if len(res.Artifacts) != want {
		t.Errorf("default grid: want %d artifacts, got %d", want, len(res.Artifacts))
	}
}

func TestScreenshot_UnknownViewport(t *testing.T) {
	wf := &Screenshot{
		HTMLPath:  writeHTML(t),
		OutputDir: filepath.Join(t.TempDir(), "shots"),
		Viewports: []string{"desktop", "cinema"},
		Renderer:  fastStub(),
	}

	res := wf.Execute(context.Background())
	if res.Success {
		t.Fatal("expected failure for unknown viewport")
	}
	if !strings.Contains(res.Error, "cinema") {
		t.Errorf("error should name the bad viewport, got: %q", res.Error)
	}
}

func TestScreenshot_Idempotent(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "shots")
	html := writeHTML(t)

	for i := 0; i < 2; i++ {
		wf := &Screenshot{
			HTMLPath:  html,
			OutputDir: outDir,
			Viewports: []string{"tablet"},
			States:    []string{"overview"},
			Renderer:  fastStub(),
		}
		res := wf.Execute(context.Background())
		if !res.Success {
			t.Fatalf("run #%d failed: %q", i+1, res.Error)
		}
	}
}

func TestScreenshot_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	wf := &Screenshot{
		HTMLPath:  writeHTML(t),
		OutputDir: filepath.Join(t.TempDir(), "shots"),
		Viewports: []string{"desktop"},
		States:    []string{"overview"},
		Renderer:  &StubRenderer{Delay: time.Minute},
	}

	res := wf.Execute(ctx)
	if res.Success {
		t.Fatal("expected failure when context is cancelled")
	}
}

func TestLookupViewports_PreservesOrder(t *testing.T) {
	vps, err := LookupViewports([]string{"mobile", "desktop"})
	if err != nil {
		t.Fatalf("LookupViewports: %v", err)
	}
	if vps[0].Name != "mobile" || vps[1].Name != "desktop" {
		t.Errorf("order not preserved: %+v", vps)
	}
	if vps[0].Width != 375 || vps[0].Height != 667 {
		t.Errorf("mobile preset wrong: %+v", vps[0])
	}
	if vps[1].Width != 1920 || vps[1].Height != 1080 {
		t.Errorf("desktop preset wrong: %+v", vps[1])
	}
}

func TestArtifactName(t *testing.T) {
	if got := ArtifactName("tablet", "log_expanded"); got != "tablet_log_expanded.png" {
		t.Errorf("got %q", got)
	}
}

func TestChromeRenderer_BrowserUnavailable(t *testing.T) {
	// Point PATH at an empty dir so no browser candidate resolves.
	t.Setenv("PATH", t.TempDir())

	wf := &Screenshot{
		HTMLPath:  writeHTML(t),
		OutputDir: filepath.Join(t.TempDir(), "shots"),
		Viewports: []string{"desktop"},
		States:    []string{"overview"},
		Renderer:  &ChromeRenderer{},
	}

	res := wf.Execute(context.Background())
	if res.Success {
		t.Fatal("expected failure without a browser binary")
	}
	if !strings.Contains(res.Error, "Chrome") {
		t.Errorf("error should mention the missing browser, got: %q", res.Error)
	}
}
