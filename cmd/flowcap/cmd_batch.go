package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"flowcap/internal/executor"
	"flowcap/internal/manifest"
)

var batchFlags struct {
	params      []string
	root        string
	workDir     string
	concurrency int
	dbPath      string
	noHistory   bool
	verbose     bool
}

var batchCmd = &cobra.Command{
	Use:   "batch <workflow>...",
	Short: "Replay several recorded workflows concurrently",
	Long: `Runs each named workflow with its own executor. Workflows with
overlapping output directories can race on file creation; run batches only
over independent recordings.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringArrayVarP(&batchFlags.params, "param", "p", nil, "parameter as key=value, shared by every workflow (repeatable)")
	f.StringVar(&batchFlags.root, "root", "", "recordings root (default from config)")
	f.StringVar(&batchFlags.workDir, "workdir", "", "artifact collection base directory (default cwd)")
	f.IntVar(&batchFlags.concurrency, "concurrency", 4, "max workflows in flight")
	f.StringVar(&batchFlags.dbPath, "db", "", "run-history DB path (default "+historyDefaultHint+")")
	f.BoolVar(&batchFlags.noHistory, "no-history", false, "do not record runs in the history DB")
	f.BoolVarP(&batchFlags.verbose, "verbose", "v", false, "print execution logs")
}

func runBatch(cmd *cobra.Command, args []string) error {
	params, err := parseParams(batchFlags.params)
	if err != nil {
		return err
	}

	root := batchFlags.root
	if root == "" {
		root = cfg.RecordingsRoot
	}

	results := make([]manifest.Result, len(args))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(batchFlags.concurrency)
	for i, name := range args {
		g.Go(func() error {
			e := executor.New(name, params)
			e.Root = root
			e.WorkDir = batchFlags.workDir
			results[i] = e.Execute(ctx)
			return nil
		})
	}
	// Executors never return errors; the group only bounds concurrency.
	_ = g.Wait()

	// History writes happen after the group drains, serialized: SQLite and
	// concurrent writers disagree.
	if !batchFlags.noHistory {
		for _, res := range results {
			recordHistory(batchFlags.dbPath, res)
		}
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, res := range results {
		printResult(out, res, batchFlags.verbose)
		if !res.Success {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d workflows failed", failed, len(args))
	}
	return nil
}
