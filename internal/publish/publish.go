// Package publish commits workflow artifacts to a git branch and pushes it.
// Every git invocation is fire-and-forget: a failure is reported once and
// never retried; callers are expected to log it and move on.
package publish

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"flowcap/internal/logging"
)

// DefaultBranch is used when the caller does not name a branch.
const DefaultBranch = "pr-screenshots"

// Options configures one publish attempt.
type Options struct {
	Branch string // DefaultBranch if empty
	Dir    string // repo working directory; process cwd if empty
}

// CommitAndPush creates (or switches to) the branch, stages the artifacts,
// commits, and pushes. The first failing git command aborts the sequence.
func CommitAndPush(artifacts []string, opts Options) error {
	if len(artifacts) == 0 {
		return fmt.Errorf("no artifacts to publish")
	}
	branch := opts.Branch
	if branch == "" {
		branch = DefaultBranch
	}
	log := logging.New("publish")

	// checkout -b fails if the branch exists; fall back to a plain checkout.
	if err := git(opts.Dir, "checkout", "-b", branch); err != nil {
		if err := git(opts.Dir, "checkout", branch); err != nil {
			return fmt.Errorf("switch to branch %s: %w", branch, err)
		}
	}

	for _, artifact := range artifacts {
		if err := git(opts.Dir, "add", artifact); err != nil {
			return fmt.Errorf("stage %s: %w", artifact, err)
		}
	}

	message := fmt.Sprintf("Add workflow screenshots\n\nGenerated %d screenshots across viewports.", len(artifacts))
	if err := git(opts.Dir, "commit", "-m", message); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	if err := git(opts.Dir, "push", "-u", "origin", branch); err != nil {
		return fmt.Errorf("push: %w", err)
	}

	log.Info("published artifacts",
		slog.String("branch", branch),
		slog.Int("count", len(artifacts)))
	return nil
}

func git(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s: %v: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}
