package main

import (
	"bufio"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"flowcap/internal/manifest"
	"flowcap/internal/recorder"
)

var recordFlags struct {
	name        string
	description string
	recordedBy  string
	artifacts   []string
	inputs      []string
	root        string
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a workflow: perform it manually while the scope is open",
	Long: `Opens a recording scope, prints the recording directory, and waits.
Perform the workflow manually, then press Enter. The manifest is written to
<root>/<name>/manifest.json on exit, including error exits.`,
	RunE: runRecord,
}

func init() {
	f := recordCmd.Flags()
	f.StringVar(&recordFlags.name, "name", "", "workflow name (required)")
	f.StringVar(&recordFlags.description, "description", "", "what this workflow does")
	f.StringVar(&recordFlags.recordedBy, "by", "", "who recorded it")
	f.StringArrayVar(&recordFlags.artifacts, "artifact", nil, "output artifact pattern (repeatable)")
	f.StringArrayVar(&recordFlags.inputs, "input", nil, "required input as name=type (repeatable)")
	f.StringVar(&recordFlags.root, "root", "", "recordings root (default from config)")

	_ = recordCmd.MarkFlagRequired("name")
}

func runRecord(cmd *cobra.Command, _ []string) (err error) {
	inputs, err := parseParams(recordFlags.inputs)
	if err != nil {
		return err
	}

	root := recordFlags.root
	if root == "" {
		root = cfg.RecordingsRoot
	}

	rec, err := recorder.Begin(recorder.Options{
		Name:            recordFlags.name,
		Description:     recordFlags.description,
		RecordedBy:      recordFlags.recordedBy,
		OutputArtifacts: recordFlags.artifacts,
		RequiredInputs:  inputs,
		Root:            root,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Recording workflow: %s\n", recordFlags.name)
	fmt.Fprintf(out, "Output directory: %s\n", rec.Dir)
	fmt.Fprintln(out, "Perform the workflow now, then press Enter to finish.")

	// The manifest is persisted even when the wait is interrupted.
	defer func() {
		if closeErr := rec.Close(); closeErr != nil && err == nil {
			err = closeErr
		} else if closeErr == nil {
			fmt.Fprintf(out, "Manifest: %s\n", filepath.Join(rec.Dir, manifest.FileName))
		}
	}()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Scan()
	return scanner.Err()
}
