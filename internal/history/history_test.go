package history

import (
	"path/filepath"
	"testing"

	"flowcap/internal/manifest"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), ".flowcap", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := openStore(t)

	ok := manifest.Result{
		Success:       true,
		WorkflowName:  "screenshot_workflow",
		Artifacts:     []string{"a.png", "b.png"},
		ExecutionTime: 1.5,
	}
	failed := manifest.Failure("demo_generation", nil, "demo script not found: x.sh")

	if _, err := s.RecordRun(ok); err != nil {
		t.Fatalf("RecordRun ok: %v", err)
	}
	if _, err := s.RecordRun(failed); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	runs, err := s.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("want 2 runs, got %d", len(runs))
	}

	// Newest first.
	if runs[0].WorkflowName != "demo_generation" || runs[0].Success {
		t.Errorf("first run: got %+v", runs[0])
	}
	if runs[0].Error == "" {
		t.Error("failed run must keep its error text")
	}
	if runs[1].WorkflowName != "screenshot_workflow" || !runs[1].Success {
		t.Errorf("second run: got %+v", runs[1])
	}
	if runs[1].ArtifactCount != 2 {
		t.Errorf("artifact count: got %d", runs[1].ArtifactCount)
	}
}

func TestListRuns_Limit(t *testing.T) {
	s := openStore(t)
	for i := 0; i < 5; i++ {
		if _, err := s.RecordRun(manifest.Result{Success: true, WorkflowName: "wf"}); err != nil {
			t.Fatal(err)
		}
	}
	runs, err := s.ListRuns(3)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("want 3 runs, got %d", len(runs))
	}
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if _, err := s.ListRuns(1); err != nil {
		t.Errorf("fresh store should be queryable: %v", err)
	}
}
