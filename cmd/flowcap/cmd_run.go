package main

import (
	"errors"

	"github.com/spf13/cobra"

	"flowcap/internal/executor"
)

var runFlags struct {
	params    []string
	root      string
	workDir   string
	dbPath    string
	noHistory bool
	verbose   bool
}

var runCmd = &cobra.Command{
	Use:   "run <workflow>",
	Short: "Replay a recorded workflow with parameter substitution",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringArrayVarP(&runFlags.params, "param", "p", nil, "parameter as key=value (repeatable)")
	f.StringVar(&runFlags.root, "root", "", "recordings root (default from config)")
	f.StringVar(&runFlags.workDir, "workdir", "", "artifact collection base directory (default cwd)")
	f.StringVar(&runFlags.dbPath, "db", "", "run-history DB path (default "+historyDefaultHint+")")
	f.BoolVar(&runFlags.noHistory, "no-history", false, "do not record this run in the history DB")
	f.BoolVarP(&runFlags.verbose, "verbose", "v", false, "print execution logs")
}

func runRun(cmd *cobra.Command, args []string) error {
	params, err := parseParams(runFlags.params)
	if err != nil {
		return err
	}

	root := runFlags.root
	if root == "" {
		root = cfg.RecordingsRoot
	}

	e := executor.New(args[0], params)
	e.Root = root
	e.WorkDir = runFlags.workDir

	res := e.Execute(cmd.Context())

	if !runFlags.noHistory {
		recordHistory(runFlags.dbPath, res)
	}

	printResult(cmd.OutOrStdout(), res, runFlags.verbose)
	if !res.Success {
		return errors.New("workflow failed")
	}
	return nil
}
