package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"flowcap/internal/history"
)

const historyDefaultHint = history.DefaultDBPath

var historyFlags struct {
	dbPath string
	limit  int
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent workflow runs",
	RunE:  runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.StringVar(&historyFlags.dbPath, "db", history.DefaultDBPath, "run-history DB path")
	f.IntVarP(&historyFlags.limit, "limit", "n", 20, "number of runs to show")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := history.Open(historyFlags.dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(historyFlags.limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet")
		return nil
	}

	for _, run := range runs {
		status := okColor.Sprint("OK")
		detail := fmt.Sprintf("%d artifact(s)", run.ArtifactCount)
		if !run.Success {
			status = failColor.Sprint("FAILED")
			detail = run.Error
		}
		fmt.Fprintf(out, "#%-4d %s  %-24s %6.2fs  %s  %s\n",
			run.ID, run.RanAt, run.WorkflowName, run.Duration, status, detail)
	}
	return nil
}
