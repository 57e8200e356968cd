package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flowcap/internal/recorder"
)

func recordFixture(t *testing.T, root, name string, inputs map[string]string) {
	t.Helper()
	rec, err := recorder.Begin(recorder.Options{
		Name:           name,
		Description:    "fixture",
		RequiredInputs: inputs,
		Root:           root,
	})
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestHandleListWorkflows(t *testing.T) {
	root := t.TempDir()
	recordFixture(t, root, "wf_a", map[string]string{"p": "string"})
	recordFixture(t, root, "wf_b", nil)

	s := NewServer(root, t.TempDir())
	_, out, err := s.handleListWorkflows(context.Background(), nil, listWorkflowsInput{})
	if err != nil {
		t.Fatalf("list_workflows: %v", err)
	}
	if out.Total != 2 || len(out.Workflows) != 2 {
		t.Fatalf("want 2 workflows, got %+v", out)
	}
	if out.Workflows[0].Name != "wf_a" {
		t.Errorf("sorted order expected, got %q first", out.Workflows[0].Name)
	}
	if out.Workflows[0].InputParameters["p"] != "string" {
		t.Errorf("input parameters lost: %+v", out.Workflows[0])
	}
}

func TestHandleRunWorkflow_MissingName(t *testing.T) {
	s := NewServer(t.TempDir(), t.TempDir())
	_, _, err := s.handleRunWorkflow(context.Background(), nil, runWorkflowInput{})
	if err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestHandleRunWorkflow_NotFoundIsResultNotError(t *testing.T) {
	s := NewServer(t.TempDir(), t.TempDir())
	_, out, err := s.handleRunWorkflow(context.Background(), nil, runWorkflowInput{Name: "missing_wf"})
	if err != nil {
		t.Fatalf("executor failures must be results, not tool errors: %v", err)
	}
	if out.Success {
		t.Fatal("expected failed result")
	}
	if !strings.Contains(out.Error, "not found") {
		t.Errorf("got: %q", out.Error)
	}
}

func TestHandleCaptureScreenshots_Stub(t *testing.T) {
	html := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(html, []byte("<html></html>"), 0644); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(t.TempDir(), "shots")

	s := NewServer(t.TempDir(), t.TempDir())
	_, out, err := s.handleCaptureScreenshots(context.Background(), nil, captureScreenshotsInput{
		HTMLPath:  html,
		OutputDir: outDir,
		Viewports: []string{"mobile"},
		States:    []string{"overview"},
	})
	if err != nil {
		t.Fatalf("capture_screenshots: %v", err)
	}
	if !out.Success {
		t.Fatalf("unexpected failure: %q", out.Error)
	}
	if len(out.Artifacts) != 1 || !strings.HasSuffix(out.Artifacts[0], "mobile_overview.png") {
		t.Errorf("artifacts: %v", out.Artifacts)
	}
}

func TestHandleCaptureScreenshots_BadBrowser(t *testing.T) {
	s := NewServer(t.TempDir(), t.TempDir())
	_, _, err := s.handleCaptureScreenshots(context.Background(), nil, captureScreenshotsInput{
		HTMLPath:  "x.html",
		OutputDir: "out",
		Browser:   "firefox",
	})
	if err == nil {
		t.Fatal("expected error for unknown browser")
	}
}
