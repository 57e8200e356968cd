package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"flowcap/internal/recorder"
)

var listFlags struct {
	root string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded workflows and their required parameters",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listFlags.root, "root", "", "recordings root (default from config)")
}

func runList(cmd *cobra.Command, _ []string) error {
	root := listFlags.root
	if root == "" {
		root = cfg.RecordingsRoot
	}

	manifests, err := recorder.List(root)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(manifests) == 0 {
		fmt.Fprintf(out, "No recordings under %s\n", root)
		return nil
	}

	for _, m := range manifests {
		fmt.Fprintf(out, "%s (v%s)\n", okColor.Sprint(m.WorkflowName), m.Version)
		if m.Description != "" {
			fmt.Fprintf(out, "  %s\n", m.Description)
		}
		if len(m.InputParameters) > 0 {
			names := make([]string, 0, len(m.InputParameters))
			for name, typeTag := range m.InputParameters {
				names = append(names, name+":"+typeTag)
			}
			sort.Strings(names)
			fmt.Fprintf(out, "  inputs: %s\n", strings.Join(names, ", "))
		}
		if len(m.OutputArtifacts) > 0 {
			fmt.Fprintf(out, "  artifacts: %s\n", strings.Join(m.OutputArtifacts, ", "))
		}
	}
	fmt.Fprintf(out, "\n%d workflow(s)\n", len(manifests))
	return nil
}
